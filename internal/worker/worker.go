// Package worker implements background task handlers for asynchronous backfills.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mycurrency/internal/service"
)

// NewBackfillHandler returns a function to handle date-range backfill tasks.
// The task body is the same backfill engine the synchronous history endpoint
// runs; asynq owns retry on failure.
func NewBackfillHandler(svc service.RateServiceInterface, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload service.BackfillPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Errorw("Invalid task payload", "type", t.Type(), "error", err)
			return nil
		}

		series, err := svc.RatesInRange(ctx, payload.Source, payload.DateFrom, payload.DateTo)
		if err != nil {
			logger.Errorw("Backfill task failed", "source", payload.Source,
				"date_from", payload.DateFrom, "date_to", payload.DateTo, "error", err)
			return err
		}

		points := 0
		for _, targetSeries := range series {
			points += len(targetSeries)
		}
		logger.Infow("Backfill task completed", "source", payload.Source,
			"date_from", payload.DateFrom, "date_to", payload.DateTo,
			"targets", len(series), "points", points)
		return nil
	}
}

// AsynqEnqueuer enqueues backfill tasks with configured retry and timeout limits.
type AsynqEnqueuer struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer.
func NewAsynqEnqueuer(client *asynq.Client, maxRetry int, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

// EnqueueBackfill enqueues a backfill task with the specified payload.
func (e *AsynqEnqueuer) EnqueueBackfill(ctx context.Context, payload service.BackfillPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(service.TaskTypeBackfill, data,
		asynq.MaxRetry(e.maxRetry),
		asynq.Timeout(e.timeout),
	)

	_, err = e.client.EnqueueContext(ctx, task)
	return err
}
