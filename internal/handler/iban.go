package handler

import (
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/deppfellow/iban-checker/internal/service"
	"github.com/deppfellow/iban-checker/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ValidateIbanRequest is the body of both validation endpoints. An empty
// Iban is accepted and reported as not valid. Country is free text; codes
// without a rule fall back to the default country.
type ValidateIbanRequest struct {
	Iban    *string `json:"iban" validate:"required"`
	Country *string `json:"country"`
}

func (r *ValidateIbanRequest) Validate() error {
	return validation.Validator().Struct(r)
}

func (r *ValidateIbanRequest) country() string {
	if r.Country == nil {
		return ""
	}
	return *r.Country
}

type GetCheckRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *GetCheckRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type ListChecksRequest struct {
	Page   *int    `query:"page" validate:"omitempty,min=1"`
	Limit  *int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Status *string `query:"status" validate:"omitempty,oneof='Valid' 'Not valid'"`
}

func (r *ListChecksRequest) Validate() error {
	return validation.Validator().Struct(r)
}

func (r *ListChecksRequest) query() service.ListChecksQuery {
	q := service.ListChecksQuery{Page: 1, Limit: defaultPageLimit}
	if r.Page != nil {
		q.Page = *r.Page
	}
	if r.Limit != nil {
		q.Limit = min(*r.Limit, maxPageLimit)
	}
	if r.Status != nil {
		status := model.ValidationStatus(*r.Status)
		q.Status = &status
	}
	return q
}

// IbanHandler serves validation and the validation history.
type IbanHandler struct {
	Handler
	ibanService *service.IbanService
}

func NewIbanHandler(s *server.Server, ibanService *service.IbanService) *IbanHandler {
	return &IbanHandler{
		Handler:     NewHandler(s),
		ibanService: ibanService,
	}
}

func (h *IbanHandler) ValidateIban(c echo.Context, req *ValidateIbanRequest) (*model.IbanValidation, error) {
	return h.ibanService.Validate(c.Request().Context(), *req.Iban, req.country())
}

func (h *IbanHandler) ValidatePartial(c echo.Context, req *ValidateIbanRequest) (*model.IbanPartialValidation, error) {
	return h.ibanService.ValidatePartial(c.Request().Context(), *req.Iban, req.country()), nil
}

func (h *IbanHandler) GetCheck(c echo.Context, req *GetCheckRequest) (*model.IbanCheck, error) {
	return h.ibanService.GetCheck(c.Request().Context(), req.ID)
}

func (h *IbanHandler) ListChecks(c echo.Context, req *ListChecksRequest) (*model.PaginatedResponse[model.IbanCheck], error) {
	return h.ibanService.ListChecks(c.Request().Context(), req.query())
}
