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
| - This log must be enriched with 'business_key' (if available) to bridge the
|   gap between business domains and technical traces.
|
| [2. ZERO POST-ENTRY LOGGING]
| - Once the request is handed over to the UseCase, the Handler MUST NOT emit
|   any further logs (success or failure).
| - Observability for the rest of the execution is handled by the UseCase
|   and Repository layers via TraceID correlation.
|
| [3. LEAN ORCHESTRATION]
| - Validation: Enforce payload integrity using DTO tags before execution.
| - Parsing: Handle malformed requests and immediately return AppError.
| - Bubbling: All errors returned by the UseCase are bubbled up directly to
|   the Global Error Handler to maintain log hygiene.
|
| [4. RESPONSE NORMALIZATION]
| - Always use the standardized 'response' package to ensure consistent
|   API contracts across all modules.
|
|------------------------------------------------------------------------------------
*/
package http

import (
	"bwh/core-api/internal/infrastructure/config"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/capture/usecase"
	"bwh/core-api/internal/pkg/apperror"
	"bwh/core-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	// handlerName follows the "Layer:Component.Action" pattern.
	// This constant is used as the Span Name in tracing and 'action' field in logs,
	// enabling precise filtering across the entire observability stack.
	handlerName = "http:handler.capture"
)

type HandlerUseCases struct {
	IndexCaptureUseCase usecase.IndexCaptureUseCase
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

// IndexCapture exposes IndexCaptureUseCase over HTTP for out-of-process
// callers. In this binary, captures are actually indexed by
// internal/app.BootstrapApiConfig.indexCapture, which invokes the same
// use case directly from pkg/capture.Store.Subscribe — this route
// exists for external indexers that don't share the in-process store.
func (h *Handler) IndexCapture(c *fiber.Ctx) error {
	// We use c.UserContext() which has been enriched by the Telemetrist middlewares.
	// There's no need to start a new span here unless we have complex logic
	// within the handler itself. The Telemetrist middlewares span will act as the parent
	// for all subsequent UseCase and Repository spans.
	ctx := c.UserContext()

	// 1. INITIALIZE CONTEXTUAL LOGGER
	log := h.Log.WithContext(ctx).WithField("method", "IndexCapture")

	// 2. PARSE REQUEST BODY
	request := new(usecase.IndexCaptureRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.ErrCodeMalformedRequest.WithError(err)
	}

	// 3. VALIDATE REQUEST DTO
	if err := h.Val.Validate(request); err != nil {
		return apperror.ErrCodeInvalidRequest.WithError(err).AddValidationErrors(h.Val.ToDetails(err))
	}

	// 4. THE ANCHOR LOG & BUSINESS CORRELATION
	businessKey := map[string]any{
		"capture_id": request.CaptureID,
		"provider":   request.Provider,
	}
	log.WithFields(map[string]any{
		"business_key": businessKey,
	}).Info("request received")

	// --- HANDOVER TO DOMAIN LAYER (THE ZERO-LOG HANDOVER) ---
	indexed, err := h.Uc.IndexCaptureUseCase.Execute(ctx, request)
	if err != nil {
		return err
	}

	return response.NewHttp(c).Created(response.Http{
		Message: "Capture indexed successfully",
		Data:    indexed,
	})
}
