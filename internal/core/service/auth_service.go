package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/validation"
)

const defaultLoginRejection = "Invalid credentials, please try again!"

// AuthService signs operators in against the remote API and keeps their
// session server-side. The browser only holds a signed token naming the
// session.
type AuthService struct {
	api       ports.RemoteAPI
	sessions  ports.SessionRepository
	validator *validation.Validator
	secret    []byte
	ttl       time.Duration
	log       zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	api ports.RemoteAPI,
	sessions ports.SessionRepository,
	v *validation.Validator,
	secret string,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{api: api, sessions: sessions, validator: v, secret: []byte(secret), ttl: ttl, log: log}
}

// Login returns a signed session token and the new session.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (string, *domain.Session, error) {
	if err := s.validator.Validate(creds); err != nil {
		return "", nil, err
	}

	res, err := s.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = defaultLoginRejection
		}
		return "", nil, &domain.RejectedError{Kind: domain.ErrLoginRejected, Message: msg}
	}

	session := &domain.Session{
		ID:   uuid.NewString(),
		User: res.User,
		Name: displayName(res.User, creds.Username),
	}
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.sign(session)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("session_id", session.ID).Str("operator", session.Name).Msg("operator signed in")
	return token, session, nil
}

// Authenticate resolves a token back to its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	sid, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Find(ctx, sid)
}

// Logout deletes the session named by token. Unknown or expired tokens are
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

func (s *AuthService) sign(session *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"name": session.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parse(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

// displayName picks something human from the user object the service sent.
func displayName(raw json.RawMessage, fallback string) string {
	var u struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &u) != nil {
		return fallback
	}
	for _, v := range []string{u.Name, u.Username, u.Email} {
		if v != "" {
			return v
		}
	}
	return fallback
}
