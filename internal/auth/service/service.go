package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"later_backend/internal/auth/password"
	"later_backend/internal/auth/repository"
	"later_backend/internal/auth/token"
	"later_backend/internal/auth/transport"
	domainevents "later_backend/internal/events"
	"later_backend/platform/apperr"
	"later_backend/platform/config"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

const refreshTokenBytes = 48

// Service provides signup, signin, and token lifecycle logic.
type Service struct {
	repo repository.Repository
	cfg  config.JWTConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.JWTConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignUp registers a new account and signs it in.
func (s *Service) SignUp(ctx context.Context, req transport.SignUpRequest) (transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		s.log.AuthEvent("signup", email, false, "create failed")
		return transport.AuthResponse{}, err
	}

	s.bus.Publish(ctx, domainevents.UserSignedUp{
		BaseEvent: domainevents.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})

	s.log.AuthEvent("signup", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

// SignIn authenticates credentials and issues tokens. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, req transport.SignInRequest) (transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("signin", email, false, "unknown user")
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("signin", email, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("signin", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates a refresh token into a new token pair.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (transport.AuthResponse, error) {
	hash := token.HashSHA256(req.RefreshToken)

	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	// Single-use rotation: the presented token is revoked either way.
	_ = s.repo.RevokeRefreshToken(ctx, hash)

	if time.Now().After(expiresAt) {
		return transport.AuthResponse{}, apperr.Unauthorized("refresh token expired")
	}

	return s.issueTokens(ctx, userID)
}

// SignOut revokes the presented refresh token.
func (s *Service) SignOut(ctx context.Context, req transport.SignOutRequest) error {
	hash := token.HashSHA256(req.RefreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// Me returns the account behind the authenticated user ID.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.MeResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.MeResponse{}, err
	}
	return transport.MeResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (transport.AuthResponse, error) {
	accessToken, err := s.signJWT(userID)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "sign access token", err)
	}

	refreshToken, err := token.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "generate refresh token", err)
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return transport.AuthResponse{}, err
	}

	return transport.AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) signJWT(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat": now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}
