package auth

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid operator token")
	ErrNotEnabled   = errors.New("operator access not configured")
)

// Service verifies the operator token gating administrative endpoints.
// Only the bcrypt hash of the token is ever held in memory or configuration;
// a request presenting the matching token is treated as privileged.
type Service struct {
	tokenHash []byte
	logger    *slog.Logger
}

// New creates an auth service from the configured bcrypt hash. An empty hash
// disables operator access entirely.
func New(tokenHash string, logger *slog.Logger) *Service {
	return &Service{
		tokenHash: []byte(tokenHash),
		logger:    logger.With(slog.String("component", "auth")),
	}
}

// Enabled reports whether an operator token is configured
func (s *Service) Enabled() bool {
	return len(s.tokenHash) > 0
}

// VerifyOperatorToken checks a presented token against the configured hash
func (s *Service) VerifyOperatorToken(token string) error {
	if !s.Enabled() {
		return ErrNotEnabled
	}
	if err := bcrypt.CompareHashAndPassword(s.tokenHash, []byte(token)); err != nil {
		s.logger.Warn("operator token rejected")
		return ErrInvalidToken
	}
	return nil
}

// HashToken produces the bcrypt hash to place in configuration
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
