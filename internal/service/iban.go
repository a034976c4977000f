package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/iban-checker/internal/iban"
	"github.com/deppfellow/iban-checker/internal/metrics"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/deppfellow/iban-checker/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// IbanCheckStore persists and reads validation records.
type IbanCheckStore interface {
	Create(ctx context.Context, iban string, status model.ValidationStatus) (*model.IbanCheck, error)
	GetByID(ctx context.Context, id int64) (*model.IbanCheck, error)
	List(ctx context.Context, filter repository.ListIbanChecksFilter) ([]model.IbanCheck, int64, error)
}

// IbanService validates IBANs against country rules and records every full
// validation.
type IbanService struct {
	store    IbanCheckStore
	registry *iban.Registry
	metrics  *metrics.Metrics
}

// NewIbanService requires a store and a registry; m may be nil.
func NewIbanService(store IbanCheckStore, registry *iban.Registry, m *metrics.Metrics) (*IbanService, error) {
	if store == nil {
		return nil, errors.New("iban check store is required")
	}
	if registry == nil {
		return nil, errors.New("country rule registry is required")
	}

	return &IbanService{store: store, registry: registry, metrics: m}, nil
}

// Validate checks candidate in full, stores one record with the original
// input and its status, and suggests a correction for invalid input.
//
// Malformed input is never an error. A store failure is returned as-is
// and no result is produced.
func (s *IbanService) Validate(ctx context.Context, candidate, country string) (*model.IbanValidation, error) {
	rule := s.registry.Rule(country)
	status := model.StatusFromBool(rule.IsValid(candidate))

	check, err := s.store.Create(ctx, candidate, status)
	if err != nil {
		s.metrics.IncStoreError("create")
		return nil, fmt.Errorf("record iban check: %w", err)
	}

	result := &model.IbanValidation{
		ID:        check.ID,
		Status:    check.Status,
		Iban:      check.Iban,
		CreatedAt: check.CreatedAt,
	}

	if status == model.ValidationStatusNotValid {
		suggestion, ok := rule.SuggestCorrection(candidate)
		if ok {
			result.SuggestedIban = &suggestion
		}
		s.metrics.IncSuggestion(ok)
	}

	s.metrics.IncValidation(metrics.KindFull, string(status))

	zerolog.Ctx(ctx).Debug().
		Int64("check_id", check.ID).
		Str("country", rule.Country()).
		Str("status", string(status)).
		Bool("suggested", result.SuggestedIban != nil).
		Msg("iban validated")

	return result, nil
}

// ValidatePartial checks whether candidate could still become a valid IBAN.
// Nothing is stored.
func (s *IbanService) ValidatePartial(ctx context.Context, candidate, country string) *model.IbanPartialValidation {
	rule := s.registry.Rule(country)
	status := model.StatusFromBool(rule.IsValidPartial(candidate))

	s.metrics.IncValidation(metrics.KindPartial, string(status))

	return &model.IbanPartialValidation{Status: status}
}

// GetCheck returns one stored record. A missing id surfaces as the store's
// not-found error.
func (s *IbanService) GetCheck(ctx context.Context, id int64) (*model.IbanCheck, error) {
	check, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.metrics.IncStoreError("get")
		}
		return nil, err
	}
	return check, nil
}

// ListChecksQuery selects a page of stored records.
type ListChecksQuery struct {
	Page   int
	Limit  int
	Status *model.ValidationStatus
}

// ListChecks returns stored records, newest first.
func (s *IbanService) ListChecks(ctx context.Context, q ListChecksQuery) (*model.PaginatedResponse[model.IbanCheck], error) {
	checks, total, err := s.store.List(ctx, repository.ListIbanChecksFilter{
		Page:   q.Page,
		Limit:  q.Limit,
		Status: q.Status,
	})
	if err != nil {
		s.metrics.IncStoreError("list")
		return nil, fmt.Errorf("list iban checks: %w", err)
	}

	return model.NewPaginatedResponse(checks, q.Page, q.Limit, total), nil
}
