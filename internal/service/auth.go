package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/iban-checker/internal/server"
)

// AuthService configures the Clerk SDK used to verify sessions on the
// validation history endpoints.
type AuthService struct {
	server  *server.Server
	enabled bool
}

func NewAuthService(s *server.Server) *AuthService {
	key := s.Config.Auth.SecretKey
	if key == "" {
		s.Logger.Warn().Msg("Clerk secret key not configured, history endpoints will reject every request")
	}
	clerk.SetKey(key)

	return &AuthService{server: s, enabled: key != ""}
}

// Enabled reports whether a Clerk secret key is configured.
func (a *AuthService) Enabled() bool {
	return a.enabled
}
