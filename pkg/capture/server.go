package capture

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/pkg/apperror"
	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/providers"
)

// ServerConfig configures the capture ingestion/management server
// (spec §4.8, §6.3).
type ServerConfig struct {
	MaxBodyBytes int
	Log          logger.Logger
	Dispatcher   *Dispatcher
	// Providers is the hydrated pkg/webhook/providers.Registry
	// (internal/modules/providerconfig), consulted as a fallback
	// detector and as a signature verifier once a provider name is
	// known. Optional: nil disables both.
	Providers *providers.Registry
}

// Server is the Fiber app that both captures arbitrary inbound
// requests (the catch-all route) and exposes the management surface
// (list/get/search/delete/replay), grounded on the teacher's
// server.go + booking/delivery/http/route.go wiring.
type Server struct {
	app        *fiber.App
	store      Store
	detector   *DetectorRegistry
	dispatcher *Dispatcher
	providers  *providers.Registry
	log        logger.Logger
}

func NewServer(store Store, detector *DetectorRegistry, cfg ServerConfig) *Server {
	if cfg.Log == nil {
		cfg.Log = logger.NewNoOpLogger()
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxBodyBytes,
		ErrorHandler:          errorHandler,
	})
	s := &Server{app: app, store: store, detector: detector, dispatcher: cfg.Dispatcher, providers: cfg.Providers, log: cfg.Log}
	s.routes()
	return s
}

// errorHandler renders an *apperror.AppError the same way the admin API's
// own fiber app does (internal/infrastructure/http/server.go), so the
// capture domain's pre-mapped error codes (internal/pkg/apperror) actually
// reach a response instead of sitting unused.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()
	errCode := ""

	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		status = appErr.GetHttpStatus()
		message = appErr.Message
		errCode = appErr.Code
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"message":    message,
		"error_code": errCode,
	})
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

func (s *Server) routes() {
	captures := s.app.Group("/_captures")
	captures.Get("/", s.handleList)
	captures.Get("/search", s.handleSearch)
	captures.Delete("/", s.handleDeleteAll)
	captures.Get("/:id", s.handleGet)
	captures.Delete("/:id", s.handleDelete)
	captures.Post("/:id/replay", s.handleReplay)

	// Catch-all ingestion: registered last so the management routes
	// above take priority over anything landing on the same path.
	s.app.Use(s.handleCapture)
}

// handleCapture records every request that didn't match a management
// route: headers, query, raw body, detected provider, all persisted
// through Store (spec §4.8 steps 1-6).
func (s *Server) handleCapture(c *fiber.Ctx) error {
	body := c.Body()

	headers := make(map[string]string)
	lowerHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(k, v []byte) {
		key, val := string(k), string(v)
		headers[key] = val
		lowerHeaders[strings.ToLower(key)] = val
	})

	rawURL := c.OriginalURL()
	query := map[string][]string{}
	if parsed, err := url.Parse(rawURL); err == nil {
		for k, v := range parsed.Query() {
			query[k] = v
		}
	}

	contentType := c.Get(fiber.HeaderContentType)
	record := NewRecord(c.Method(), rawURL, c.Path(), headers, query, body, contentType)
	record.Body = parseBody(body, contentType)
	record.Provider = s.detector.Detect(DetectorInput{
		Method:  record.Method,
		Path:    record.Path,
		Headers: lowerHeaders,
		Body:    record.Body,
	})
	s.identifyWithRegistry(&record, body, lowerHeaders)

	cf, err := s.store.Save(c.Context(), record)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("capture: failed to persist record")
		return apperror.ErrCodeInternalError.WithError(err)
	}

	c.Set("X-Capture-Id", record.ID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "capture recorded",
		"id":        record.ID,
		"timestamp": record.Timestamp,
		"file":      cf.File,
	})
}

// identifyWithRegistry gives the hydrated provider registry a say over
// a captured request: when the header-based detector can't name a
// provider it tries every registered provider's Verify as a fallback
// identification pass, and whenever a provider name is known (either
// way) it records whether the request's signature actually checks out
// against that provider's configured secret.
func (s *Server) identifyWithRegistry(record *CaptureRecord, body []byte, lowerHeaders map[string]string) {
	if s.providers == nil {
		return
	}
	headers := webhook.Headers(lowerHeaders)

	if record.Provider == "" || record.Provider == "unknown" {
		for _, p := range s.providers.List() {
			if secret := p.Secret(); secret != "" && p.Verify(body, headers, secret) {
				record.Provider = p.Name()
				record.Verified = true
				return
			}
		}
		return
	}

	if p, ok := s.providers.Get(record.Provider); ok {
		if secret := p.Secret(); secret != "" {
			record.Verified = p.Verify(body, headers, secret)
		}
	}
}

func parseBody(raw []byte, contentType string) any {
	if len(raw) == 0 {
		return nil
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/json"):
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
		return string(raw)
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return string(raw)
		}
		m := make(map[string]any, len(values))
		for k, v := range values {
			if len(v) == 1 {
				m[k] = v[0]
			} else {
				m[k] = v
			}
		}
		return m
	default:
		return string(raw)
	}
}

func (s *Server) handleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	files, err := s.store.List(c.Context(), limit)
	if err != nil {
		return apperror.ErrCodeInternalError.WithError(err)
	}
	return c.JSON(fiber.Map{"success": true, "captures": files})
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	files, err := s.store.Search(c.Context(), c.Query("q"))
	if err != nil {
		return apperror.ErrCodeInternalError.WithError(err)
	}
	return c.JSON(fiber.Map{"success": true, "captures": files})
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	cf, err := s.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.notFoundOrError(err)
	}
	return c.JSON(fiber.Map{"success": true, "capture": cf})
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Context(), c.Params("id")); err != nil {
		return s.notFoundOrError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteAll(c *fiber.Ctx) error {
	if err := s.store.DeleteAll(c.Context()); err != nil {
		return apperror.ErrCodeInternalError.WithError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type replayRequest struct {
	TargetURL string            `json:"targetUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

func (s *Server) handleReplay(c *fiber.Ctx) error {
	if s.dispatcher == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"success": false, "message": "replay dispatcher not configured",
		})
	}
	var req replayRequest
	if err := c.BodyParser(&req); err != nil || req.TargetURL == "" {
		return apperror.ErrCodeInvalidRequest.WithError(errors.New("targetUrl is required"))
	}

	result, err := s.dispatcher.Replay(c.Context(), c.Params("id"), ReplayOptions{
		TargetURL: req.TargetURL,
		Method:    req.Method,
		Headers:   req.Headers,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.ErrCodeCaptureNotFound.WithError(err)
		}
		return apperror.ErrCodeCaptureReplayFailed.WithError(err)
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

func (s *Server) notFoundOrError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperror.ErrCodeCaptureNotFound.WithError(err)
	}
	return apperror.ErrCodeInternalError.WithError(err)
}
