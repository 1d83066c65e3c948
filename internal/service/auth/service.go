package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kita-hr/leave-backend-go/internal/domain/auth"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/jwt"
)

type Service interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string)
}

type ServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service) Service {
	return &ServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access/refresh token pair. A
// missing user and a wrong password produce the same error so the endpoint
// never confirms which emails exist.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("get user: %w", err)
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("generate refresh token: %w", err)
	}

	slog.Info("user logged in", "user_id", u.ID)
	return auth.LoginResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             expiresAt,
		RefreshTokenExpiresIn: refreshExpiresAt,
		User:                  user.ToResponse(u),
	}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresAt,
	}, nil
}

// Logout revokes the refresh token. Revocation is in-memory; a restart
// clears it, which is acceptable given refresh token lifetimes.
func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	s.jwtService.RevokeToken(refreshToken)
}
