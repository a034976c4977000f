package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskValidationReport summarizes recent checks and mails the result.
const TaskValidationReport = "report:validation_summary"

// DefaultReportWindow is the period covered by the scheduled report.
const DefaultReportWindow = 24 * time.Hour

// ValidationReportPayload covers the WindowSeconds before the task runs.
type ValidationReportPayload struct {
	WindowSeconds int64 `json:"window_seconds"`
}

func (p ValidationReportPayload) Window() time.Duration {
	return time.Duration(p.WindowSeconds) * time.Second
}

func NewValidationReportTask(window time.Duration) (*asynq.Task, error) {
	if window < time.Minute {
		return nil, fmt.Errorf("report window %s is shorter than a minute", window)
	}

	payload, err := json.Marshal(ValidationReportPayload{WindowSeconds: int64(window / time.Second)})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskValidationReport,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(time.Minute),
		asynq.Unique(window/2),
	), nil
}
