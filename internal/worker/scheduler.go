package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Schedule is one periodic batch.
type Schedule struct {
	Kind     Kind
	Cronspec string
}

// DefaultSchedules runs month-end work early on the 1st and the allowance claim on 1 January.
var DefaultSchedules = []Schedule{
	{Kind: KindRevaluation, Cronspec: "0 1 1 * *"},
	{Kind: KindDepreciation, Cronspec: "30 1 1 * *"},
	{Kind: KindAllowances, Cronspec: "0 3 1 1 *"},
}

// NewScheduler registers every schedule once per tenant. Payloads leave the period and
// year empty so each firing resolves them against its own run time.
func NewScheduler(opt asynq.RedisConnOpt, tenants []string, userID string, schedules []Schedule, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("Scheduled enqueue failed", slog.String("error", err.Error()))
				return
			}
			logger.Info("Scheduled task enqueued", slog.String("task_type", info.Type), slog.String("task_id", info.ID))
		},
	})
	for _, tenant := range tenants {
		for _, s := range schedules {
			task, err := NewRunTask(s.Kind, RunPayload{TenantID: tenant, UserID: userID})
			if err != nil {
				return nil, err
			}
			entryID, err := scheduler.Register(s.Cronspec, task)
			if err != nil {
				return nil, fmt.Errorf("failed to schedule %s for tenant %s: %w", s.Kind, tenant, err)
			}
			logger.Info("Registered periodic run",
				slog.String("kind", string(s.Kind)), slog.String("tenant_id", tenant),
				slog.String("cron", s.Cronspec), slog.String("entry_id", entryID))
		}
	}
	return scheduler, nil
}
