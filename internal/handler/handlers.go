package handler

import (
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/deppfellow/iban-checker/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Iban    *IbanHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Iban:    NewIbanHandler(s, services.Iban),
	}
}
