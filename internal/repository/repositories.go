package repository

import (
	"github.com/deppfellow/iban-checker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Iban *IbanRepository
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Iban: NewIbanRepository(s.DB.Pool),
	}
}
