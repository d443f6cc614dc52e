package service

import (
	"context"
	"errors"
	"fmt"
	"snapgram/internal/config"
	"snapgram/internal/models"
	"snapgram/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthorized covers missing credentials and credentials that
	// reference no stored user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken covers bad signatures and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	IssueAccessToken(user *models.User) (string, error)
	IssueRefreshToken(user *models.User) (string, error)
	VerifyAccessToken(tokenString string) (*Claims, error)
	VerifyRefreshToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login maps unknown users and wrong passwords to ErrUnauthorized;
// store failures pass through so they surface as 500, not 401.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, "", "", fmt.Errorf("%w: %s", ErrUnauthorized, username)
		}
		return nil, "", "", fmt.Errorf("failed to verify credentials: %w", err)
	}

	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// Refresh mints a new access token against a still-valid refresh token.
// The refresh token itself is not rotated; it stays good until its own
// expiry or logout.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("%w: user %s no longer exists", ErrUnauthorized, claims.UserID)
	}

	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, nil
}

func (s *authService) IssueAccessToken(user *models.User) (string, error) {
	return s.issueToken(user, s.cfg.AccessTokenSecret, s.cfg.AccessTokenDuration)
}

func (s *authService) IssueRefreshToken(user *models.User) (string, error) {
	return s.issueToken(user, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenDuration)
}

func (s *authService) issueToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   user.UserID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, s.cfg.AccessTokenSecret)
}

func (s *authService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, s.cfg.RefreshTokenSecret)
}

func verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

type claimsContextKey struct{}

// ContextWithClaims stores the verified identity for downstream handlers.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the identity placed by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}
