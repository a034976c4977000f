package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/iban-checker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_PgErrors(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not null",
			pgErr:      &pgconn.PgError{Code: "23502", TableName: "iban_checks", ColumnName: "iban"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "IBAN_CHECK_REQUIRED",
			wantMsg:    "The Iban is required",
		},
		{
			name:       "invalid enum value",
			pgErr:      &pgconn.PgError{Code: "22P02", TableName: "iban_checks"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "IBAN_CHECK_INVALID",
			wantMsg:    "One or more values have an invalid format",
		},
		{
			name:       "unique",
			pgErr:      &pgconn.PgError{Code: "23505", TableName: "iban_checks", ConstraintName: "iban_checks_iban_key"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "IBAN_CHECK_ALREADY_EXISTS",
			wantMsg:    "A Iban Check with this Iban already exists",
		},
		{
			name:       "connection failure",
			pgErr:      &pgconn.PgError{Code: "08006"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
		},
		{
			name:       "other",
			pgErr:      &pgconn.PgError{Code: "XX000"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTP(t, HandleError(fmt.Errorf("insert: %w", tt.pgErr)))

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, httpErr.Message)
			}
		})
	}
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTP(t, HandleError(fmt.Errorf("table:iban_checks: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Iban Check not found", httpErr.Message)

	httpErr = asHTTP(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_Passthrough(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	original := errs.NewUnauthorizedError("nope", false)
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTP(t, HandleError(context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)

	httpErr = asHTTP(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, ConnectionException, MapCode("08001"))
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, Other, MapCode("P0001"))

	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("unknown"))
}

func TestConvertPgError_Unwrap(t *testing.T) {
	src := &pgconn.PgError{Code: "23502", Severity: "ERROR", Message: "null value"}
	converted := ConvertPgError(src)

	assert.Equal(t, NotNullViolation, ErrCode(converted))
	assert.Equal(t, Other, ErrCode(errors.New("x")))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr))
	assert.Contains(t, converted.Error(), "SQLSTATE 23502")
}
