package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
)

const sessionTokenType = "session"

// SessionService issues and validates anonymous session tokens. A token
// only names a progress namespace; it is not a login.
type SessionService struct {
	config *infrastructure.SessionConfig
	clock  domain.Clock
	tracer trace.Tracer
	logger *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	config *infrastructure.SessionConfig,
	clock domain.Clock,
	tracer trace.Tracer,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		config: config,
		clock:  clock,
		tracer: tracer,
		logger: logger,
	}
}

// Open starts a new session and returns its signed token
func (s *SessionService) Open(ctx context.Context) (*domain.SessionToken, error) {
	_, span := s.tracer.Start(ctx, "SessionService.Open")
	defer span.End()

	now := domain.NowFrom(s.clock)
	session := domain.Session{
		ID:        uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenExpiry),
	}

	claims := jwt.MapClaims{
		"sub":  session.ID.String(),
		"type": sessionTokenType,
		"iat":  session.IssuedAt.Unix(),
		"exp":  session.ExpiresAt.Unix(),
		"iss":  s.config.Issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, domain.ErrInternalServer
	}

	span.SetAttributes(attribute.String("session.id", session.ID.String()))
	s.logger.Info("Session opened", zap.String("session_id", session.ID.String()))

	return &domain.SessionToken{
		SessionID: session.ID,
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ValidateToken validates a session token and returns the session id
func (s *SessionService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domain.ErrInvalidSession
			}
			return []byte(s.config.SecretKey), nil
		},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(func() time.Time { return domain.NowFrom(s.clock) }),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidSession
	}

	if tokenType, _ := claims["type"].(string); tokenType != sessionTokenType {
		return uuid.Nil, domain.ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidSession
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidSession
	}
	return id, nil
}
