// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API process enqueues tasks with Client; the worker server executes
// them and the scheduler enqueues periodic ones such as the daily
// validation summary.
package job

import (
	"fmt"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client, worker server and scheduler.
type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zerolog.Logger

	report           reportDeps
	schedulerStarted bool
}

// NewJobService configures Asynq against cfg.Redis. Nothing connects until
// Start or the first enqueue.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	asynqLog := newAsynqLogger(logger)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: asynqLog,
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		scheduler: asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Logger: asynqLog,
		}),
		logger: logger,
	}
}

// Mux routes task types to handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskValidationReport, j.handleValidationReportTask)
	return mux
}

// Start launches the workers and, when the report is configured, the
// scheduler. Neither call blocks.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("starting job server: %w", err)
	}

	if !j.report.active() {
		j.logger.Info().Msg("Validation report disabled, scheduler not started")
		return nil
	}

	task, err := NewValidationReportTask(DefaultReportWindow)
	if err != nil {
		return err
	}

	entryID, err := j.scheduler.Register(j.report.schedule, task)
	if err != nil {
		return fmt.Errorf("scheduling validation report: %w", err)
	}

	if err := j.scheduler.Start(); err != nil {
		return fmt.Errorf("starting job scheduler: %w", err)
	}
	j.schedulerStarted = true

	j.logger.Info().
		Str("entry_id", entryID).
		Str("schedule", j.report.schedule).
		Msg("Validation report scheduled")

	return nil
}

// Stop shuts down the scheduler and workers and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")

	if j.schedulerStarted {
		j.scheduler.Shutdown()
	}
	j.server.Shutdown()

	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
