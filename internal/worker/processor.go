package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/hibiken/asynq"
)

// Processor executes batch tasks against the ledger services.
type Processor struct {
	revaluation portssvc.RevaluationWriterSvc
	assets      portssvc.AssetBatchSvc
	summaries   SummaryStore
	logger      *slog.Logger
	clock       func() time.Time
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorClock overrides the clock used to resolve default periods.
func WithProcessorClock(clock func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.clock = clock
	}
}

// NewProcessor builds a Processor. summaries may be nil, in which case nothing is recorded.
func NewProcessor(revaluation portssvc.RevaluationWriterSvc, assets portssvc.AssetBatchSvc, summaries SummaryStore, logger *slog.Logger, opts ...ProcessorOption) *Processor {
	p := &Processor{
		revaluation: revaluation,
		assets:      assets,
		summaries:   summaries,
		logger:      logger.With(slog.String("component", "worker")),
		clock:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterHandlers wires every batch task type to p.
func RegisterHandlers(mux *asynq.ServeMux, p *Processor) {
	mux.HandleFunc(TypeRevaluationRun, p.HandleRevaluationRun)
	mux.HandleFunc(TypeDepreciationRun, p.HandleDepreciationRun)
	mux.HandleFunc(TypeAllowanceClaim, p.HandleAllowanceClaim)
}

func (p *Processor) HandleRevaluationRun(ctx context.Context, t *asynq.Task) error {
	payload, ctx, err := p.begin(ctx, t, KindRevaluation)
	if err != nil {
		return err
	}
	period, err := payload.ResolvePeriod(p.clock())
	if err != nil {
		return terminal(err)
	}
	batch, err := p.revaluation.RunRevaluation(ctx, payload.TenantID, payload.UserID, period)
	if err != nil {
		return p.fail(ctx, KindRevaluation, err)
	}
	return p.finish(ctx, summarize(KindRevaluation, payload.TenantID, period.String(), batch, p.clock()))
}

func (p *Processor) HandleDepreciationRun(ctx context.Context, t *asynq.Task) error {
	payload, ctx, err := p.begin(ctx, t, KindDepreciation)
	if err != nil {
		return err
	}
	period, err := payload.ResolvePeriod(p.clock())
	if err != nil {
		return terminal(err)
	}
	batch, err := p.assets.RunDepreciation(ctx, payload.TenantID, payload.UserID, period)
	if err != nil {
		return p.fail(ctx, KindDepreciation, err)
	}
	return p.finish(ctx, summarize(KindDepreciation, payload.TenantID, period.String(), batch, p.clock()))
}

func (p *Processor) HandleAllowanceClaim(ctx context.Context, t *asynq.Task) error {
	payload, ctx, err := p.begin(ctx, t, KindAllowances)
	if err != nil {
		return err
	}
	year := payload.ResolveYear(p.clock())
	batch, err := p.assets.ClaimAllowances(ctx, payload.TenantID, payload.UserID, year)
	if err != nil {
		return p.fail(ctx, KindAllowances, err)
	}
	return p.finish(ctx, summarize(KindAllowances, payload.TenantID, strconv.Itoa(year), batch, p.clock()))
}

// begin decodes the payload and scopes the context logger to the task.
func (p *Processor) begin(ctx context.Context, t *asynq.Task, kind Kind) (RunPayload, context.Context, error) {
	taskID, _ := asynq.GetTaskID(ctx)
	logger := p.logger.With(slog.String("task_type", t.Type()), slog.String("task_id", taskID))

	payload, err := decodePayload(t)
	if err != nil {
		logger.Error("Rejecting task with invalid payload", slog.String("error", err.Error()))
		return payload, ctx, terminal(err)
	}
	if payload.UserID == "" {
		payload.UserID = "system"
	}
	logger = logger.With(slog.String("tenant_id", payload.TenantID), slog.String("user_id", payload.UserID))
	logger.Info("Starting batch run", slog.String("kind", string(kind)), slog.String("key", payload.runKey(kind, p.clock())))
	ctx = middleware.WithTenant(ctx, payload.TenantID, payload.UserID)
	return payload, middleware.WithLogger(ctx, logger), nil
}

func (p *Processor) fail(ctx context.Context, kind Kind, err error) error {
	middleware.GetLoggerFromCtx(ctx).Error("Batch run failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrMissingData) {
		return terminal(err)
	}
	return err
}

func (p *Processor) finish(ctx context.Context, summary RunSummary) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	summary.TaskID, _ = asynq.GetTaskID(ctx)
	logger.Info("Batch run finished",
		slog.String("kind", string(summary.Kind)),
		slog.String("key", summary.Key),
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", len(summary.Skipped)))
	if p.summaries == nil {
		return nil
	}
	// The ledger work is committed; a lost summary must not trigger a rerun.
	if err := p.summaries.Save(ctx, summary); err != nil {
		logger.Warn("Failed to store run summary", slog.String("error", err.Error()))
	}
	return nil
}

// terminal marks err so asynq archives the task instead of retrying it.
func terminal(err error) error {
	return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
}
