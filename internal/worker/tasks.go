// Package worker runs the periodic ledger batches (FX revaluation, book depreciation and
// capital-allowance claims) as asynq tasks.
package worker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/hibiken/asynq"
)

// Kind names a batch run.
type Kind string

const (
	KindRevaluation  Kind = "revaluation"
	KindDepreciation Kind = "depreciation"
	KindAllowances   Kind = "allowances"
)

// Task types registered on the asynq mux.
const (
	TypeRevaluationRun  = "ledger:revaluation:run"
	TypeDepreciationRun = "ledger:depreciation:run"
	TypeAllowanceClaim  = "ledger:allowance:claim"
)

const maxRetry = 3

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRevaluation, KindDepreciation, KindAllowances:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown job kind %q", apperrors.ErrValidation, s)
}

// TaskType returns the asynq task type that runs k.
func (k Kind) TaskType() string {
	switch k {
	case KindRevaluation:
		return TypeRevaluationRun
	case KindDepreciation:
		return TypeDepreciationRun
	default:
		return TypeAllowanceClaim
	}
}

// RunPayload is the body of every batch task. An empty Period means the month before the
// task runs and a zero Year the year before, which is what the scheduler relies on.
type RunPayload struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Period   string `json:"period,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// Validate checks the tenant and any explicit period.
func (p RunPayload) Validate() error {
	if strings.TrimSpace(p.TenantID) == "" {
		return fmt.Errorf("%w: tenant is required", apperrors.ErrValidation)
	}
	if p.Period != "" {
		if _, err := domain.ParsePeriod(p.Period); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if p.Year < 0 {
		return fmt.Errorf("%w: year must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// ResolvePeriod returns the explicit period or the month before now.
func (p RunPayload) ResolvePeriod(now time.Time) (domain.Period, error) {
	if p.Period == "" {
		return domain.PeriodOf(now).Previous(), nil
	}
	return domain.ParsePeriod(p.Period)
}

// ResolveYear returns the explicit year or the year before now.
func (p RunPayload) ResolveYear(now time.Time) int {
	if p.Year == 0 {
		return now.Year() - 1
	}
	return p.Year
}

// runKey is the period or year a resolved run covers.
func (p RunPayload) runKey(kind Kind, now time.Time) string {
	if kind == KindAllowances {
		return strconv.Itoa(p.ResolveYear(now))
	}
	period, err := p.ResolvePeriod(now)
	if err != nil {
		return p.Period
	}
	return period.String()
}

// NewRunTask builds the task for kind after validating p.
func NewRunTask(kind Kind, p RunPayload, opts ...asynq.Option) (*asynq.Task, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}
	opts = append([]asynq.Option{asynq.MaxRetry(maxRetry)}, opts...)
	return asynq.NewTask(kind.TaskType(), payload, opts...), nil
}

func decodePayload(t *asynq.Task) (RunPayload, error) {
	var p RunPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("%w: malformed %s payload: %v", apperrors.ErrValidation, t.Type(), err)
	}
	return p, p.Validate()
}
