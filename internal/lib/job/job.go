// Package job provides background job processing using Asynq.
//
// The API enqueues a report after each bulk delete; the worker started by
// Start mails it to the registrar.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	client taskEnqueuer
	server *asynq.Server
	logger *zerolog.Logger

	mailer    reportMailer
	registrar string
	now       func() time.Time
}

// NewJobService creates a JobService on the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the task handlers and starts the workers.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskStudentsRemoved, j.handleStudentsRemovedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop shuts the workers down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// NotifyStudentsRemoved enqueues a report for students removed by a bulk
// delete.
func (j *JobService) NotifyStudentsRemoved(ctx context.Context, reason string, students []model.Student) error {
	task, err := NewStudentsRemovedTask(reason, j.now(), students)
	if err != nil {
		return fmt.Errorf("failed to build students removed task: %w", err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue students removed task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued students removed report")

	return nil
}
