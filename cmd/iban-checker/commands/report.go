package commands

import (
	"fmt"
	"time"

	"github.com/deppfellow/iban-checker/internal/lib/job"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var window time.Duration

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Enqueue a validation summary email now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			task, err := job.NewValidationReportTask(window)
			if err != nil {
				return err
			}

			jobs := job.NewJobService(log, cfg)
			defer jobs.Stop()

			info, err := jobs.Client.EnqueueContext(cmd.Context(), task)
			if err != nil {
				return fmt.Errorf("enqueueing validation report: %w", err)
			}

			log.Info().
				Str("task_id", info.ID).
				Str("queue", info.Queue).
				Dur("window", window).
				Msg("validation report enqueued")
			return nil
		},
	}

	cmd.Flags().DurationVar(&window, "window", job.DefaultReportWindow, "period covered by the report")
	return cmd
}
