package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/deppfellow/iban-checker/internal/errs"
	"github.com/deppfellow/iban-checker/internal/iban"
	"github.com/deppfellow/iban-checker/internal/metrics"
	"github.com/deppfellow/iban-checker/internal/middleware"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/deppfellow/iban-checker/internal/repository"
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/deppfellow/iban-checker/internal/service"
	"github.com/deppfellow/iban-checker/internal/service/mocks"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var createdAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

type testEnv struct {
	echo  *echo.Echo
	store *mocks.MockIbanCheckStore
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockIbanCheckStore(ctrl)
	s := newTestServer()

	ibanService, err := service.NewIbanService(store, iban.DefaultRegistry(), s.Metrics)
	require.NoError(t, err)

	h := NewIbanHandler(s, ibanService)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/validate", Handle(h.Handler, h.ValidateIban, http.StatusOK, func() *ValidateIbanRequest { return &ValidateIbanRequest{} }))
	e.POST("/validate_partial", Handle(h.Handler, h.ValidatePartial, http.StatusOK, func() *ValidateIbanRequest { return &ValidateIbanRequest{} }))
	e.GET("/checks", Handle(h.Handler, h.ListChecks, http.StatusOK, func() *ListChecksRequest { return &ListChecksRequest{} }))
	e.GET("/checks/:id", Handle(h.Handler, h.GetCheck, http.StatusOK, func() *GetCheckRequest { return &GetCheckRequest{} }))

	return &testEnv{echo: e, store: store}
}

func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestValidateIban(t *testing.T) {
	t.Run("valid iban", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			Create(gomock.Any(), "ME25505000012345678951", model.ValidationStatusValid).
			Return(&model.IbanCheck{ID: 1, Iban: "ME25505000012345678951", Status: model.ValidationStatusValid, CreatedAt: createdAt}, nil)

		rec := env.do(http.MethodPost, "/validate", `{"iban":"ME25505000012345678951"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, float64(1), body["id"])
		assert.Equal(t, "Valid", body["status"])
		assert.Equal(t, "ME25505000012345678951", body["iban"])
		assert.Contains(t, body, "suggested_iban")
		assert.Nil(t, body["suggested_iban"])
	})

	t.Run("invalid iban gets a suggestion", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			Create(gomock.Any(), "ME99505000012345678951", model.ValidationStatusNotValid).
			Return(&model.IbanCheck{ID: 2, Iban: "ME99505000012345678951", Status: model.ValidationStatusNotValid, CreatedAt: createdAt}, nil)

		rec := env.do(http.MethodPost, "/validate", `{"iban":"ME99505000012345678951","country":"ME"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[model.IbanValidation](t, rec)
		assert.Equal(t, model.ValidationStatusNotValid, body.Status)
		require.NotNil(t, body.SuggestedIban)
		assert.Equal(t, "ME25505000012345678951", *body.SuggestedIban)
	})

	t.Run("empty iban is stored as not valid", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			Create(gomock.Any(), "", model.ValidationStatusNotValid).
			Return(&model.IbanCheck{ID: 3, Status: model.ValidationStatusNotValid, CreatedAt: createdAt}, nil)

		rec := env.do(http.MethodPost, "/validate", `{"iban":""}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing iban field", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/validate", `{}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errs.HTTPError](t, rec)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "iban", body.Errors[0].Field)
	})

	t.Run("any country text falls back to the default rule", func(t *testing.T) {
		for _, country := range []string{"Montenegro", "MNE", "me-ME", "12"} {
			env := newTestEnv(t)
			env.store.EXPECT().
				Create(gomock.Any(), "ME25505000012345678951", model.ValidationStatusValid).
				Return(&model.IbanCheck{ID: 4, Iban: "ME25505000012345678951", Status: model.ValidationStatusValid, CreatedAt: createdAt}, nil).
				Times(1)

			rec := env.do(http.MethodPost, "/validate", `{"iban":"ME25505000012345678951","country":"`+country+`"}`)

			require.Equal(t, http.StatusOK, rec.Code, country)
			assert.Equal(t, model.ValidationStatusValid, decode[model.IbanValidation](t, rec).Status)

			rec = env.do(http.MethodPost, "/validate_partial", `{"iban":"ME2550","country":"`+country+`"}`)
			require.Equal(t, http.StatusOK, rec.Code, country)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/validate", `{"iban":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure is a 500 without details", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("dial tcp 10.0.0.1:5432: refused"))

		rec := env.do(http.MethodPost, "/validate", `{"iban":"ME25505000012345678951"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "10.0.0.1")
	})

	t.Run("store timeout is a 503", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("insert iban check: %w", context.DeadlineExceeded))

		rec := env.do(http.MethodPost, "/validate", `{"iban":"ME25505000012345678951"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestValidatePartial(t *testing.T) {
	tests := []struct {
		body string
		want model.ValidationStatus
	}{
		{`{"iban":"ME2550"}`, model.ValidationStatusValid},
		{`{"iban":"me25 5050"}`, model.ValidationStatusValid},
		{`{"iban":"ME25505000012345678951"}`, model.ValidationStatusValid},
		{`{"iban":"ME255050000123456789510"}`, model.ValidationStatusNotValid},
		{`{"iban":"DE25"}`, model.ValidationStatusNotValid},
		{`{"iban":"ME25AB"}`, model.ValidationStatusNotValid},
		{`{"iban":""}`, model.ValidationStatusNotValid},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			// no store expectations: partial validation never persists
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/validate_partial", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			body := decode[map[string]any](t, rec)
			assert.Equal(t, map[string]any{"status": string(tt.want)}, body)
		})
	}
}

func TestGetCheck(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			GetByID(gomock.Any(), int64(42)).
			Return(&model.IbanCheck{ID: 42, Iban: "x", Status: model.ValidationStatusNotValid, CreatedAt: createdAt}, nil)

		rec := env.do(http.MethodGet, "/checks/42", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[model.IbanCheck](t, rec)
		assert.Equal(t, int64(42), body.ID)
		assert.True(t, createdAt.Equal(body.CreatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			GetByID(gomock.Any(), int64(9)).
			Return(nil, fmt.Errorf("table:iban_checks: get iban check 9: %w", pgx.ErrNoRows))

		rec := env.do(http.MethodGet, "/checks/9", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Iban Check not found", decode[errs.HTTPError](t, rec).Message)
	})

	t.Run("non numeric id", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/checks/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListChecks(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.EXPECT().
			List(gomock.Any(), repository.ListIbanChecksFilter{Page: 1, Limit: defaultPageLimit}).
			Return([]model.IbanCheck{{ID: 2}, {ID: 1}}, int64(2), nil)

		rec := env.do(http.MethodGet, "/checks", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[model.PaginatedResponse[model.IbanCheck]](t, rec)
		assert.Len(t, body.Data, 2)
		assert.Equal(t, 1, body.TotalPages)
	})

	t.Run("filters by status", func(t *testing.T) {
		env := newTestEnv(t)
		notValid := model.ValidationStatusNotValid
		env.store.EXPECT().
			List(gomock.Any(), repository.ListIbanChecksFilter{Page: 2, Limit: 5, Status: &notValid}).
			Return([]model.IbanCheck{}, int64(6), nil)

		rec := env.do(http.MethodGet, "/checks?page=2&limit=5&status=Not+valid", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[model.PaginatedResponse[model.IbanCheck]](t, rec)
		assert.Equal(t, 2, body.TotalPages)
		assert.Empty(t, body.Data)
	})

	t.Run("rejects unknown status and oversized limit", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/checks?status=maybe", "").Code)
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/checks?limit=500", "").Code)
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/checks?page=0", "").Code)
	})
}

func TestHealth(t *testing.T) {
	newHealthEcho := func(probes ...healthProbe) *echo.Echo {
		h := &HealthHandler{Handler: NewHandler(newTestServer()), probes: probes, timeout: time.Second}
		e := echo.New()
		e.GET("/", h.Info)
		e.GET("/status", h.CheckHealth)
		return e
	}
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("down") }

	t.Run("info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHealthEcho().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"name":"Iban checker","version":"1.0.0"}`, rec.Body.String())
	})

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHealthEcho(
			healthProbe{name: "database", required: true, ping: ok},
			healthProbe{name: "redis", ping: down},
		).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "healthy", body["status"])
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "unhealthy", checks["redis"].(map[string]any)["status"])
	})

	t.Run("required probe down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHealthEcho(
			healthProbe{name: "database", required: true, ping: down},
		).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "unhealthy", decode[map[string]any](t, rec)["status"])
	})
}
