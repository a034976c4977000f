package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/jackc/pgx/v5"
)

// ibanChecksTable prefixes not-found errors so sqlerr can name the entity.
const ibanChecksTable = "table:iban_checks:"

const ibanCheckColumns = `id, iban, status::text AS status, created_at`

// IbanRepository persists full-validation attempts in iban_checks.
type IbanRepository struct {
	db DBTX
}

func NewIbanRepository(db DBTX) *IbanRepository {
	return &IbanRepository{db: db}
}

// Create stores one attempt and returns it with its generated id and
// creation time.
func (r *IbanRepository) Create(ctx context.Context, iban string, status model.ValidationStatus) (*model.IbanCheck, error) {
	stmt := `
		INSERT INTO iban_checks (iban, status)
		VALUES ($1, $2::validation_status)
		RETURNING ` + ibanCheckColumns

	rows, err := r.db.Query(ctx, stmt, iban, string(status))
	if err != nil {
		return nil, fmt.Errorf("insert iban check: %w", err)
	}

	check, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.IbanCheck])
	if err != nil {
		return nil, fmt.Errorf("insert iban check: %w", err)
	}

	return check, nil
}

func (r *IbanRepository) GetByID(ctx context.Context, id int64) (*model.IbanCheck, error) {
	stmt := `SELECT ` + ibanCheckColumns + ` FROM iban_checks WHERE id = $1`

	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("get iban check %d: %w", id, err)
	}

	check, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.IbanCheck])
	if err != nil {
		return nil, fmt.Errorf("%s get iban check %d: %w", ibanChecksTable, id, err)
	}

	return check, nil
}

// ListIbanChecksFilter selects one page of checks, newest first.
// A nil Status matches every status.
type ListIbanChecksFilter struct {
	Page   int
	Limit  int
	Status *model.ValidationStatus
}

func (f ListIbanChecksFilter) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

func (f ListIbanChecksFilter) statusArg() *string {
	if f.Status == nil {
		return nil
	}
	s := string(*f.Status)
	return &s
}

// List returns the requested page and the total number of matching checks.
func (r *IbanRepository) List(ctx context.Context, filter ListIbanChecksFilter) ([]model.IbanCheck, int64, error) {
	status := filter.statusArg()

	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM iban_checks
		WHERE $1::validation_status IS NULL OR status = $1::validation_status`,
		status,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count iban checks: %w", err)
	}

	if total == 0 {
		return []model.IbanCheck{}, 0, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+ibanCheckColumns+`
		FROM iban_checks
		WHERE $1::validation_status IS NULL OR status = $1::validation_status
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		status, filter.Limit, filter.offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list iban checks: %w", err)
	}

	checks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.IbanCheck])
	if err != nil {
		return nil, 0, fmt.Errorf("list iban checks: %w", err)
	}

	return checks, total, nil
}

// Summarize counts checks created in [from, to) by status.
func (r *IbanRepository) Summarize(ctx context.Context, from, to time.Time) (*model.IbanCheckSummary, error) {
	summary := &model.IbanCheckSummary{From: from, To: to}

	err := r.db.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'Valid'),
			count(*) FILTER (WHERE status = 'Not valid')
		FROM iban_checks
		WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&summary.Valid, &summary.NotValid)
	if err != nil {
		return nil, fmt.Errorf("summarize iban checks: %w", err)
	}

	return summary, nil
}
