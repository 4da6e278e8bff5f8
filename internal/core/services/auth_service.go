package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID   domain.UserID `json:"user_id"`
	Username string        `json:"username"`
	jwt.RegisteredClaims
}

type userCtxKey struct{}

// ContextWithUser attaches the authenticated user to a request context.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

type authService struct {
	userRepo ports.UserRepository
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	sessions map[string]domain.UserID

	logger *zap.SugaredLogger
}

// NewAuthService builds the identity capability. Sessions live in memory:
// a token is valid while it verifies as a JWT and has not been logged out.
func NewAuthService(userRepo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.SugaredLogger) ports.AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		sessions: make(map[string]domain.UserID),
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. Callers only learn the
// boolean outcome; wrong email and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, in domain.LoginInput) (string, bool) {
	if err := in.Validate(); err != nil {
		return "", false
	}

	user, ok := s.userRepo.VerifyPassword(ctx, strings.TrimSpace(in.Email), in.Password)
	if !ok {
		s.logger.Debugw("login rejected", "email", in.Email)
		return "", false
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Errorw("failed to issue token", "error", err)
		return "", false
	}
	return token, true
}

// Signup creates an account and opens a session. Duplicate accounts and
// validation failures both come back as a plain false.
func (s *authService) Signup(ctx context.Context, in domain.SignupInput) (string, bool) {
	if err := in.Validate(); err != nil {
		return "", false
	}

	username := strings.TrimSpace(in.Username)
	user := &domain.User{
		ID:        domain.UserID(uuid.NewString()),
		Username:  username,
		Email:     strings.TrimSpace(in.Email),
		Avatar:    fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username),
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user, in.Password); err != nil {
		s.logger.Debugw("signup rejected", "email", in.Email, "error", err)
		return "", false
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Errorw("failed to issue token", "error", err)
		return "", false
	}
	return token, true
}

// Logout tears the session down. Unknown tokens are ignored.
func (s *authService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// ValidateToken checks the JWT signature and that the session is still
// open, then loads the account behind it.
func (s *authService) ValidateToken(token string) (*domain.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	userID, open := s.sessions[token]
	s.mu.Unlock()
	if !open || userID != claims.UserID {
		return nil, ErrInvalidToken
	}

	return &domain.User{ID: claims.UserID, Username: claims.Username}, nil
}

// CurrentUser reads the authenticated user off the request context, where
// the auth middleware put it.
func (s *authService) CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*domain.User)
	return user, ok
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[token] = user.ID
	s.mu.Unlock()
	return token, nil
}

func (s *authService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
