package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/deppfellow/iban-checker/internal/metrics"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	from, to time.Time
	summary  *model.IbanCheckSummary
	err      error
}

func (f *fakeSummarizer) Summarize(_ context.Context, from, to time.Time) (*model.IbanCheckSummary, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeMailer struct {
	to      []string
	summary *model.IbanCheckSummary
	err     error
}

func (f *fakeMailer) SendValidationReport(_ context.Context, to []string, summary *model.IbanCheckSummary) error {
	f.to, f.summary = to, summary
	return f.err
}

func reportConfig() *config.Config {
	return &config.Config{Report: config.ReportConfig{
		Enabled:    true,
		Schedule:   "@daily",
		Recipients: []string{"ops@example.com"},
	}}
}

func newTestService(t *testing.T, s Summarizer, m ReportMailer, met *metrics.Metrics) *JobService {
	t.Helper()
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(reportConfig(), s, m, met)
	return j
}

func TestNewValidationReportTask(t *testing.T) {
	task, err := NewValidationReportTask(DefaultReportWindow)
	require.NoError(t, err)
	assert.Equal(t, TaskValidationReport, task.Type())

	var p ValidationReportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, DefaultReportWindow, p.Window())

	_, err = NewValidationReportTask(time.Second)
	assert.Error(t, err)
}

func TestHandleValidationReportTask_Sends(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	summarizer := &fakeSummarizer{summary: &model.IbanCheckSummary{Valid: 5, NotValid: 2}}
	mailer := &fakeMailer{}
	met := metrics.New()

	j := newTestService(t, summarizer, mailer, met)
	j.report.now = func() time.Time { return now }

	task, err := NewValidationReportTask(DefaultReportWindow)
	require.NoError(t, err)

	require.NoError(t, j.handleValidationReportTask(context.Background(), task))

	assert.Equal(t, now.Add(-24*time.Hour), summarizer.from)
	assert.Equal(t, now, summarizer.to)
	assert.Equal(t, []string{"ops@example.com"}, mailer.to)
	assert.Same(t, summarizer.summary, mailer.summary)
	assert.Equal(t, 1.0, testutil.ToFloat64(met.ReportsSent.WithLabelValues("sent")))
}

func TestHandleValidationReportTask_Failures(t *testing.T) {
	task, err := NewValidationReportTask(DefaultReportWindow)
	require.NoError(t, err)

	storeErr := errors.New("db down")
	j := newTestService(t, &fakeSummarizer{err: storeErr}, &fakeMailer{}, nil)
	assert.ErrorIs(t, j.handleValidationReportTask(context.Background(), task), storeErr)

	mailErr := errors.New("rejected")
	j = newTestService(t, &fakeSummarizer{summary: &model.IbanCheckSummary{}}, &fakeMailer{err: mailErr}, nil)
	assert.ErrorIs(t, j.handleValidationReportTask(context.Background(), task), mailErr)
}

func TestHandleValidationReportTask_BadPayload(t *testing.T) {
	j := newTestService(t, &fakeSummarizer{}, &fakeMailer{}, nil)

	err := j.handleValidationReportTask(context.Background(), asynq.NewTask(TaskValidationReport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleValidationReportTask_NonPositiveWindow(t *testing.T) {
	summarizer := &fakeSummarizer{summary: &model.IbanCheckSummary{}}
	mailer := &fakeMailer{}
	j := newTestService(t, summarizer, mailer, nil)

	for _, payload := range []string{`{"window_seconds":0}`, `{"window_seconds":-3600}`, `{}`} {
		err := j.handleValidationReportTask(context.Background(), asynq.NewTask(TaskValidationReport, []byte(payload)))
		assert.ErrorIs(t, err, asynq.SkipRetry, payload)
	}

	assert.Nil(t, mailer.to)
	assert.True(t, summarizer.from.IsZero())
}

func TestHandleValidationReportTask_NotConfigured(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(&config.Config{}, nil, nil, nil)

	task, err := NewValidationReportTask(DefaultReportWindow)
	require.NoError(t, err)
	assert.NoError(t, j.handleValidationReportTask(context.Background(), task))
}

func TestMux_RoutesReportTask(t *testing.T) {
	summarizer := &fakeSummarizer{summary: &model.IbanCheckSummary{}}
	j := newTestService(t, summarizer, &fakeMailer{}, nil)

	task, err := NewValidationReportTask(time.Hour)
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.False(t, summarizer.to.IsZero())
}
