package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/deppfellow/iban-checker/internal/metrics"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/hibiken/asynq"
)

// Summarizer counts stored checks over a time window.
type Summarizer interface {
	Summarize(ctx context.Context, from, to time.Time) (*model.IbanCheckSummary, error)
}

// ReportMailer delivers a summary to recipients.
type ReportMailer interface {
	SendValidationReport(ctx context.Context, to []string, summary *model.IbanCheckSummary) error
}

type reportDeps struct {
	summarizer Summarizer
	mailer     ReportMailer
	metrics    *metrics.Metrics
	recipients []string
	schedule   string
	enabled    bool
	now        func() time.Time
}

func (r reportDeps) active() bool {
	return r.enabled && r.summarizer != nil && r.mailer != nil && len(r.recipients) > 0
}

// InitHandlers wires the dependencies used by task handlers. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, summarizer Summarizer, mailer ReportMailer, m *metrics.Metrics) {
	j.report = reportDeps{
		summarizer: summarizer,
		mailer:     mailer,
		metrics:    m,
		recipients: cfg.Report.Recipients,
		schedule:   cfg.Report.Schedule,
		enabled:    cfg.Report.Active(),
		now:        time.Now,
	}
}

func (j *JobService) handleValidationReportTask(ctx context.Context, t *asynq.Task) error {
	var p ValidationReportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal validation report payload: %w: %w", err, asynq.SkipRetry)
	}
	if p.Window() <= 0 {
		return fmt.Errorf("validation report window must be positive, got %ds: %w", p.WindowSeconds, asynq.SkipRetry)
	}

	if !j.report.active() {
		j.logger.Warn().Msg("Validation report task received but reporting is not configured")
		j.report.metrics.IncReport("skipped")
		return nil
	}

	to := j.report.now().UTC()
	from := to.Add(-p.Window())

	logger := j.logger.With().
		Str("type", TaskValidationReport).
		Time("from", from).
		Time("to", to).
		Logger()

	logger.Info().Msg("Processing validation report task")

	summary, err := j.report.summarizer.Summarize(ctx, from, to)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to summarize iban checks")
		j.report.metrics.IncReport("failed")
		return err
	}

	if err := j.report.mailer.SendValidationReport(ctx, j.report.recipients, summary); err != nil {
		logger.Error().Err(err).Msg("Failed to send validation report")
		j.report.metrics.IncReport("failed")
		return err
	}

	j.report.metrics.IncReport("sent")
	logger.Info().
		Int64("valid", summary.Valid).
		Int64("not_valid", summary.NotValid).
		Msg("Successfully sent validation report")

	return nil
}
