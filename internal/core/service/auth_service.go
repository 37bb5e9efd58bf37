package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/erpdash/user-directory/internal/api/metrics"
	"github.com/erpdash/user-directory/internal/core/domain"
	"github.com/erpdash/user-directory/internal/core/ports"
)

// AuthService is the session authority: it verifies credentials against the
// stored bcrypt hashes and manages the session lifecycle.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Authenticate verifies the credentials and issues a new session.
//
// Unknown email and wrong password both surface as ErrInvalidCredentials so
// callers cannot enumerate accounts. Inactive accounts are rejected with
// ErrAccountInactive after the password check passes.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.StatusActive {
		metrics.AuthAttemptsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrAccountInactive
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        newSessionID(),
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("session issued")

	return &ports.AuthResult{Token: token, Session: session, User: user}, nil
}

// EndSession revokes the given session. Idempotent: revoking an unknown or
// already-ended session succeeds silently.
func (s *AuthService) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if _, err := s.sessions.Find(ctx, sessionID); err == nil {
		metrics.SessionsActive.Dec()
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Debug().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// ResolveSession loads the stored session and refreshes its role from the live
// user record, so role edits apply to in-flight sessions immediately. Sessions
// whose user has been deleted or deactivated resolve as not found.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil || user.Status != domain.StatusActive {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	session.Role = user.Role
	return session, nil
}

// CurrentRole returns the effective role of the session's user.
func (s *AuthService) CurrentRole(ctx context.Context, sessionID string) (domain.Role, error) {
	session, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return session.Role, nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"sub": session.UserID,
		"iat": session.IssuedAt.Unix(),
		"exp": session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a 128-bit random hex identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
