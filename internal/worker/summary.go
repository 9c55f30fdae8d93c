package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix  = "ledger:jobs"
	defaultSummaryTTL = 30 * 24 * time.Hour
)

// RunSummary is what a finished batch leaves behind for operators.
type RunSummary struct {
	Kind        Kind                 `json:"kind"`
	TenantID    string               `json:"tenantID"`
	Key         string               `json:"key"`
	TaskID      string               `json:"taskID,omitempty"`
	Processed   int                  `json:"processed"`
	Skipped     []domain.SkippedItem `json:"skipped"`
	CompletedAt time.Time            `json:"completedAt"`
}

// SummaryStore keeps the latest summary per tenant and kind.
type SummaryStore interface {
	Save(ctx context.Context, s RunSummary) error
	Latest(ctx context.Context, tenantID string, kind Kind) (*RunSummary, error)
}

func summarize[T any](kind Kind, tenantID, key string, batch domain.BatchSummary[T], now time.Time) RunSummary {
	skipped := batch.Skipped
	if skipped == nil {
		skipped = []domain.SkippedItem{}
	}
	return RunSummary{
		Kind:        kind,
		TenantID:    tenantID,
		Key:         key,
		Processed:   len(batch.Processed),
		Skipped:     skipped,
		CompletedAt: now,
	}
}

// RedisSummaryStore writes summaries as JSON strings. Each run is kept under its own
// period or year key and mirrored under a "latest" key.
type RedisSummaryStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SummaryStore = (*RedisSummaryStore)(nil)

func NewRedisSummaryStore(client *redis.Client, ttl time.Duration) *RedisSummaryStore {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &RedisSummaryStore{client: client, ttl: ttl}
}

func summaryKey(tenantID string, kind Kind, key string) string {
	return fmt.Sprintf("%s:%s:%s:%s", summaryKeyPrefix, tenantID, kind, key)
}

func (s *RedisSummaryStore) Save(ctx context.Context, summary RunSummary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, summaryKey(summary.TenantID, summary.Kind, summary.Key), body, s.ttl)
	pipe.Set(ctx, summaryKey(summary.TenantID, summary.Kind, "latest"), body, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to store run summary", err)
	}
	return nil
}

func (s *RedisSummaryStore) Latest(ctx context.Context, tenantID string, kind Kind) (*RunSummary, error) {
	body, err := s.client.Get(ctx, summaryKey(tenantID, kind, "latest")).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s run summary for tenant %s: %w", kind, tenantID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read run summary", err)
	}
	var summary RunSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode run summary", err)
	}
	return &summary, nil
}
