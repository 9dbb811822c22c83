/*
|------------------------------------------------------------------------------------
| USECASE ARCHITECTURAL STANDARDS & OBSERVABILITY MANIFESTO
|------------------------------------------------------------------------------------
|
| Every UseCase implementation MUST satisfy these high-level pillars to
| maintain system integrity and observability hygiene.
|
| [1. COMPLIANCE STANDARDS]
| - Interface-First: UseCases MUST be defined as interfaces to enable decoupled
|   communication and seamless unit testing (mocking).
| - Traceability: Maintain a continuous trace chain from entry to exit.
| - Observability: Ensure actions are searchable via business keys.
| - Validation: Enforce strict DTO validation before domain processing.
| - Atomicity: Guarantee data consistency via TransactionManager.
| - Side Effects: Trigger external events ONLY after a successful commit.
|
| [2. LOGGING OPERATIONAL SCOPE]
| - MINIMAL LOGS: Each execution logs "started" and either "completed"
|   (if successful) or "failed" (ONLY for internal UseCase logic errors).
| - ERROR BUBBLING: Downstream errors (Repo/Service) are bubbled up
|   without redundant logging to prevent aggregator pollution.
| - BUSINESS KEY: ONLY attach business_key to the "started" log to serve
|   as an 'Anchor Log'. Correlate subsequent logs via TraceID.
| - FIELD POLLUTION: Metadata enrichment only if it contains actual data.
|
| [3. STANDARD ERROR HANDLING]
| Operational steps when an error originates within this UseCase:
| 1. RECORD: Capture error details into the span (utils.RecordSpanError).
| 2. ENRICH: Wrap/Cast raw error into apperror.AppError (Code & Kind).
| 3. LOG:    Emit structured log ONLY if originating from UseCase logic.
| 4. BUBBLE: If the error originates from an underlying Repository/Service that has
|            already logged/traced the error, pass it directly to the caller to
|            maintain log hygiene and avoid redundancy.
| 5. HALT:   Return the standardized AppError immediately.
|
|------------------------------------------------------------------------------------
*/
package usecase

import (
	"context"
	"errors"

	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/modules/capture/entity"
	"bwh/core-api/internal/modules/capture/repository"
	"bwh/core-api/internal/pkg/apperror"
	baserepo "bwh/core-api/internal/pkg/repository"
	"bwh/core-api/internal/pkg/uid"
	"bwh/core-api/internal/pkg/utils"
)

type IndexCaptureRepositories struct {
	CaptureIndexCmd repository.CaptureIndexCommandRepository
	CaptureIndexQry repository.CaptureIndexQueryRepository
}

// indexCaptureUseCase is the private implementation of IndexCaptureUseCase.
// Use NewIndexCaptureUseCase constructor to instantiate.
type indexCaptureUseCase struct {
	Log    logger.Logger
	Tracer tracer.Tracer
	Runner baserepo.TransactionManager
	Repo   IndexCaptureRepositories
}

const (
	// useCaseName follows the "Layer:Component.Action" pattern.
	// This constant is used as the Span Name in tracing and 'action' field in logs,
	// enabling precise filtering across the entire observability stack.
	useCaseName = "usecase:capture.index"
)

// Compile-time check to ensure indexCaptureUseCase implements the required interface.
// This prevents runtime panics or dependency injection failures if the interface changes.
var _ IndexCaptureUseCase = (*indexCaptureUseCase)(nil)

func NewIndexCaptureUseCase(log logger.Logger, trc tracer.Tracer, runner baserepo.TransactionManager, repo IndexCaptureRepositories) IndexCaptureUseCase {
	return &indexCaptureUseCase{
		// WithField creates a sub-logger that automatically attaches the "action" context.
		Log:    log.WithField("action", useCaseName),
		Tracer: trc,
		Runner: runner,
		Repo:   repo,
	}
}

func (uc *indexCaptureUseCase) Execute(ctx context.Context, req *IndexCaptureRequest) (*IndexCaptureResponse, error) {
	// 1. START TRACING
	// StartSpan initializes a new trace span. The returned 'ctx' carries the span
	// information and must be passed downstream to maintain the trace chain.
	span, ctx := uc.Tracer.StartSpan(ctx, useCaseName)

	// Ensures the span is closed and flushed to the collector (e.g., OpenTelemetry)
	// when the function returns.
	defer span.Finish()

	log := uc.Log.WithContext(ctx).WithField("method", "Exec")

	// businessKey serves as a human-readable domain identifier bridging
	// TraceID-based correlation with real-world support/debugging terms:
	// the capture's own id and the provider it was detected as.
	businessKey := map[string]any{
		"capture_id": req.CaptureID,
		"provider":   req.Provider,
	}

	// [LOGGING OPERATIONAL SCOPE: STARTED]
	log.WithFields(map[string]any{
		"business_key": businessKey,
	}).Info("usecase started")

	// --- PILLAR: BUSINESS RULE VALIDATION ---
	// A capture is only ever indexed once; a second attempt for the same
	// id is a programming error upstream, not a retry-worthy condition.
	exists, err := uc.Repo.CaptureIndexQry.ExistsByCaptureID(ctx, req.CaptureID)
	if err != nil {
		utils.RecordSpanError(span, err)
		return nil, err
	}
	if exists {
		logAndTraceError(span, log, entity.ErrCaptureIndexAlreadyIndexed, "domain logic validation failed", false)
		return nil, entity.ErrCaptureIndexAlreadyIndexed
	}

	e := entity.CaptureIndex{
		ID:           uid.NewUUID(),
		CaptureID:    req.CaptureID,
		Provider:     req.Provider,
		EventType:    req.EventType,
		DeliveryID:   req.DeliveryID,
		Method:       req.Method,
		Path:         req.Path,
		SizeBytes:    req.SizeBytes,
		ReplayStatus: entity.ReplayStatusNone,
		ReceivedAt:   req.ReceivedAt,
	}

	// --- PILLAR: DOMAIN VALIDATION ---
	if err := e.Validate(); err != nil {
		utils.RecordSpanError(span, err)

		var appErr *apperror.AppError
		logFields := map[string]any{"error": err.Error()}
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logFields["internal_detail"] = appErr.Err.Error()
			}
			logFields["retryable"] = appErr.IsRetryable()
		}
		log.WithFields(logFields).Warn("domain logic validation failed")
		return nil, err
	}

	// --- PILLAR: PERSISTENCE (ATOMIC TRANSACTION) ---
	errRunner := uc.Runner.Atomic(ctx, func(txCtx context.Context) error {
		return uc.Repo.CaptureIndexCmd.Create(txCtx, &e)
	})
	if errRunner != nil {
		utils.RecordSpanError(span, errRunner)
		return nil, errRunner
	}

	// [LOGGING OPERATIONAL SCOPE: COMPLETED]
	log.Info("usecase completed")

	return &IndexCaptureResponse{
		ID:           e.ID,
		CaptureID:    e.CaptureID,
		Provider:     e.Provider,
		EventType:    e.EventType,
		DeliveryID:   e.DeliveryID,
		Method:       e.Method,
		Path:         e.Path,
		SizeBytes:    e.SizeBytes,
		ReplayStatus: string(e.ReplayStatus),
		ReceivedAt:   e.ReceivedAt,
	}, nil
}

func logAndTraceError(span tracer.Span, log logger.Logger, err error, msg string, isCritical bool) {
	if err == nil {
		return
	}

	utils.RecordSpanError(span, err)

	var appErr *apperror.AppError
	logFields := map[string]any{"error": err.Error()}
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			logFields["internal_detail"] = appErr.Err.Error()
		}
		logFields["retryable"] = appErr.IsRetryable()
	}
	l := log.WithFields(logFields)
	if isCritical {
		l.Error(msg)
	} else {
		l.Warn(msg)
	}
}
