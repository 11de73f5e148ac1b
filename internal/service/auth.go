package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/openmuseum/collections/internal/domain"
)

var tracer = otel.Tracer("auth")

const bcryptCost = 12

// AuthService issues and validates session tokens. Tokens are HS256 JWTs
// whose jti is recorded in redis so logout can revoke them before expiry.
type AuthService struct {
	secret     []byte
	sessionTTL time.Duration
	sessions   *redis.Client
}

func NewAuthService(secret string, sessionTTL time.Duration, sessions *redis.Client) *AuthService {
	return &AuthService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		sessions:   sessions,
	}
}

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID  int64
	Email   string
	TokenID string
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}

// HashPassword produces a bcrypt digest for storage.
func (s *AuthService) HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

// VerifyPassword reports whether password matches the stored digest.
func (s *AuthService) VerifyPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// IssueToken creates a signed token for the user and records its session.
func (s *AuthService) IssueToken(ctx context.Context, user domain.User) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.IssueToken")
	defer span.End()

	tokenID := uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"jti":   tokenID,
		"iat":   now.Unix(),
		"exp":   now.Add(s.sessionTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "AuthService.IssueToken: signing failed")
	}

	err = s.sessions.Set(ctx, sessionKey(tokenID), user.ID, s.sessionTTL).Err()
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "AuthService.IssueToken: recording session failed")
	}

	return token, nil
}

// ValidateToken checks signature, expiry and session liveness, returning
// the authenticated session.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.ValidateToken")
	defer span.End()

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "AuthService.ValidateToken: jwt validation failed")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject")
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, fmt.Errorf("missing token id")
	}

	err = s.sessions.Get(ctx, sessionKey(tokenID)).Err()
	if err == redis.Nil {
		return nil, fmt.Errorf("session revoked")
	}
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "AuthService.ValidateToken: session lookup failed")
	}

	email, _ := claims["email"].(string)

	return &Session{
		UserID:  userID,
		Email:   email,
		TokenID: tokenID,
	}, nil
}

// Revoke ends a session so the token stops validating.
func (s *AuthService) Revoke(ctx context.Context, tokenID string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Revoke")
	defer span.End()

	err := s.sessions.Del(ctx, sessionKey(tokenID)).Err()
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "AuthService.Revoke: deleting session failed")
	}
	return nil
}
