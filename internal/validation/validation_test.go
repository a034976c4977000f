package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/iban-checker/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Iban    *string `json:"iban" validate:"required"`
	Country string  `json:"country" validate:"omitempty,len=2,alpha"`
	Limit   int     `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r *sampleRequest) Validate() error {
	return Validator().Struct(r)
}

type customRequest struct {
	Value string `json:"value"`
}

func (r *customRequest) Validate() error {
	if r.Value != "ok" {
		return CustomValidationErrors{{Field: "value", Message: "must be ok"}}
	}
	return nil
}

func newContext(method, target, body string) echo.Context {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	req := &sampleRequest{}
	err := BindAndValidate(newContext(http.MethodPost, "/", `{"iban":"","country":"ME"}`), req)

	require.NoError(t, err)
	require.NotNil(t, req.Iban)
	assert.Equal(t, "", *req.Iban)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	req := &sampleRequest{}
	err := BindAndValidate(newContext(http.MethodPost, "/", `{"country":"MNE"}`), req)

	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "iban", Error: "is required"},
		{Field: "country", Error: "must be exactly 2 characters"},
	}, httpErr.Errors)
}

func TestBindAndValidate_QueryParams(t *testing.T) {
	iban := "ME25"
	req := &sampleRequest{Iban: &iban}
	err := BindAndValidate(newContext(http.MethodGet, "/?limit=500", ""), req)

	httpErr := asHTTP(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "limit", Error: "must not exceed 100"}}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, "/", `{"iban": 12`), &sampleRequest{})

	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, "/", `{"value":"nope"}`), &customRequest{})

	httpErr := asHTTP(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "value", Error: "must be ok"}}, httpErr.Errors)
}
