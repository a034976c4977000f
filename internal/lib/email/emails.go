package email

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/deppfellow/iban-checker/internal/model"
)

const reportTimeFormat = "2006-01-02 15:04 MST"

// ValidationReportData is the data passed to the validation_report template.
type ValidationReportData struct {
	From     string
	To       string
	Valid    int64
	NotValid int64
	Total    int64
	Service  string
}

func NewValidationReportData(summary *model.IbanCheckSummary) ValidationReportData {
	return ValidationReportData{
		From:     summary.From.UTC().Format(reportTimeFormat),
		To:       summary.To.UTC().Format(reportTimeFormat),
		Valid:    summary.Valid,
		NotValid: summary.NotValid,
		Total:    summary.Total(),
		Service:  config.ServiceName,
	}
}

// SendValidationReport mails the summary of checks over its window.
func (c *Client) SendValidationReport(ctx context.Context, to []string, summary *model.IbanCheckSummary) error {
	subject := fmt.Sprintf("IBAN validation summary for %s", summary.From.UTC().Format(time.DateOnly))

	return c.SendEmail(ctx, to, subject, TemplateValidationReport, NewValidationReportData(summary))
}
