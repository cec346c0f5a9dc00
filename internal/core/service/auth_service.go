package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
	"github.com/simplexhr/hr-console/internal/metrics"
)

// AuthService gates the console behind one configured credential pair and a
// durable boolean session flag. There is no token and no expiry: the flag
// holds exactly "true" until logout removes it.
type AuthService struct {
	sessions ports.SessionStore
	login    string
	password string
	log      zerolog.Logger
}

func NewAuthService(sessions ports.SessionStore, login, password string, log zerolog.Logger) *AuthService {
	return &AuthService{sessions: sessions, login: login, password: password, log: log}
}

// Login checks the candidate pair by exact string equality. On match the
// session flag is set and the one-shot welcome signal armed; on mismatch
// both keys stay untouched.
func (s *AuthService) Login(ctx context.Context, login, password string) error {
	if !s.match(login, password) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		s.log.Warn().Msg("login rejected")
		return domain.ErrInvalidCredentials
	}

	if err := s.sessions.Set(ctx, ports.SessionKeyAuth, "true"); err != nil {
		return fmt.Errorf("persist session flag: %w", err)
	}
	if err := s.sessions.Set(ctx, ports.SessionKeyWelcome, "true"); err != nil {
		// The session itself is valid; losing the welcome signal only costs
		// the one-time greeting.
		s.log.Warn().Err(err).Msg("failed to arm welcome signal")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Msg("operator logged in")
	return nil
}

// Logout clears the session flags unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Delete(ctx, ports.SessionKeyAuth); err != nil {
		return fmt.Errorf("clear session flag: %w", err)
	}
	if err := s.sessions.Delete(ctx, ports.SessionKeyWelcome); err != nil {
		return fmt.Errorf("clear welcome signal: %w", err)
	}
	s.log.Info().Msg("operator logged out")
	return nil
}

// Authorized reports whether the session flag holds exactly "true". A
// present-but-garbage value and a store error both read as unauthenticated.
func (s *AuthService) Authorized(ctx context.Context) bool {
	val, err := s.sessions.Get(ctx, ports.SessionKeyAuth)
	if err != nil {
		s.log.Warn().Err(err).Msg("session store unreachable, treating as unauthenticated")
		return false
	}
	return val == "true"
}

// ConsumeWelcome reads and clears the just-logged-in signal. True exactly
// once per successful login.
func (s *AuthService) ConsumeWelcome(ctx context.Context) bool {
	val, err := s.sessions.GetDelete(ctx, ports.SessionKeyWelcome)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to consume welcome signal")
		return false
	}
	return val == "true"
}

// match compares both fields without short-circuiting. Unset reference
// credentials reject everything rather than matching an empty submission.
func (s *AuthService) match(login, password string) bool {
	if s.login == "" || s.password == "" {
		return false
	}
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(s.login)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return loginOK && passwordOK
}
