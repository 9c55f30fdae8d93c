package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/hibiken/asynq"
)

// RedisOpt builds the asynq connection options from cfg.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// uniqueTTL is how long an identical run is rejected after being queued.
const uniqueTTL = time.Hour

// Client enqueues batch runs.
type Client struct {
	client  *asynq.Client
	timeout time.Duration
}

func NewClient(opt asynq.RedisConnOpt, timeout time.Duration) *Client {
	return &Client{client: asynq.NewClient(opt), timeout: timeout}
}

// Enqueue schedules kind for p and returns the task id.
func (c *Client) Enqueue(ctx context.Context, kind Kind, p RunPayload) (string, error) {
	opts := []asynq.Option{asynq.Unique(uniqueTTL)}
	if c.timeout > 0 {
		opts = append(opts, asynq.Timeout(c.timeout))
	}
	task, err := NewRunTask(kind, p, opts...)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			return "", fmt.Errorf("%w: %s run already queued", apperrors.ErrConflict, kind)
		}
		return "", apperrors.NewAppError(500, "failed to enqueue "+string(kind)+" run", err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
