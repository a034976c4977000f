package service

import (
	"fmt"

	"github.com/deppfellow/iban-checker/internal/iban"
	"github.com/deppfellow/iban-checker/internal/lib/job"
	"github.com/deppfellow/iban-checker/internal/repository"
	"github.com/deppfellow/iban-checker/internal/server"
)

type Services struct {
	Auth *AuthService
	Iban *IbanService
	Job  *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	registry, err := iban.NewRegistry(s.Config.Iban.DefaultCountry, iban.Montenegro())
	if err != nil {
		return nil, fmt.Errorf("building country rules: %w", err)
	}

	ibanService, err := NewIbanService(repos.Iban, registry, s.Metrics)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth: NewAuthService(s),
		Iban: ibanService,
		Job:  s.Job,
	}, nil
}
