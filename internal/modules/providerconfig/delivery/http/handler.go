/*
|------------------------------------------------------------------------------------
| HTTP HANDLER ARCHITECTURAL STANDARDS & OBSERVABILITY MANIFESTO
|------------------------------------------------------------------------------------
|
| The Handler layer serves as the system's "Front Gate". It is responsible for
| request orchestration, DTO enforcement, and response normalization.
|
| [1. THE SINGLE LOG RULE]
| - Every handler execution MUST emit exactly ONE "Anchor Log" (request received).
|
| [2. ZERO POST-ENTRY LOGGING]
| - Once the request is handed over to the UseCase, the Handler MUST NOT emit
|   any further logs (success or failure).
|
|------------------------------------------------------------------------------------
*/
package http

import (
	"bwh/core-api/internal/infrastructure/config"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/internal/modules/providerconfig/usecase"
	"bwh/core-api/internal/pkg/apperror"
	"bwh/core-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	handlerName = "http:handler.providerconfig"
)

type HandlerUseCases struct {
	ReadProviderConfigUseCase       usecase.ReadProviderConfigUseCase
	ReadProviderConfigDetailUseCase usecase.ReadProviderConfigDetailUseCase
	CreateProviderConfigUseCase     usecase.CreateProviderConfigUseCase
}

type Handler struct {
	Cfg *config.Config
	Log logger.Logger
	Val validator.Validator
	Uc  HandlerUseCases
}

func NewHandler(cfg *config.Config, log logger.Logger, validator validator.Validator, useCases HandlerUseCases) *Handler {
	return &Handler{
		Cfg: cfg,
		Log: log,
		Val: validator,
		Uc:  useCases,
	}
}

func (h *Handler) ReadProviderConfig(c *fiber.Ctx) error {
	ctx := c.UserContext()
	log := h.Log.WithContext(ctx).WithField("method", "ReadProviderConfig")
	log.Info("request received")

	configs, err := h.Uc.ReadProviderConfigUseCase.Execute(ctx)
	if err != nil {
		return err
	}

	return response.NewHttp(c).OK(response.Http{
		Message: "success",
		Data:    configs,
	})
}

func (h *Handler) ReadProviderConfigDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	log := h.Log.WithContext(ctx).WithField("method", "ReadProviderConfigDetail")
	log.Info("request received")

	id := c.Params("id")
	if id == "" {
		return entity.ErrProviderConfigNotFound
	}

	cfg, err := h.Uc.ReadProviderConfigDetailUseCase.Execute(ctx, id)
	if err != nil {
		return err
	}

	return response.NewHttp(c).OK(response.Http{
		Message: "success",
		Data:    cfg,
	})
}

func (h *Handler) CreateProviderConfig(c *fiber.Ctx) error {
	ctx := c.UserContext()
	log := h.Log.WithContext(ctx).WithField("method", "CreateProviderConfig")

	request := new(usecase.ProviderConfigRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.ErrCodeMalformedRequest.WithError(err)
	}

	if err := h.Val.Validate(request); err != nil {
		return apperror.ErrCodeInvalidRequest.WithError(err).AddValidationErrors(h.Val.ToDetails(err))
	}

	log.WithFields(map[string]any{
		"business_key": map[string]any{"name": request.Name},
	}).Info("request received")

	cfg, err := h.Uc.CreateProviderConfigUseCase.Execute(ctx, request)
	if err != nil {
		return err
	}

	return response.NewHttp(c).Created(response.Http{
		Message: "provider config created",
		Data:    cfg,
	})
}
