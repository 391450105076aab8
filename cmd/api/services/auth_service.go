package services

import (
	"context"
	"errors"
	"fmt"

	"what2watch/cmd/api/auth"
	"what2watch/models"
	"what2watch/repositories"
)

var ErrUserNotFound = errors.New("user not found")

type AuthService struct {
	jwtManager *auth.JWTManager
	users      *repositories.UserRepository
}

func NewAuthService(jwtManager *auth.JWTManager, users *repositories.UserRepository) *AuthService {
	return &AuthService{
		jwtManager: jwtManager,
		users:      users,
	}
}

func NewAuthServiceFromEnv(users *repositories.UserRepository) (*AuthService, error) {
	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}
	return NewAuthService(jwtManager, users), nil
}

// ParseAccessToken 은 Bearer 토큰에서 (userCode, role)을 추출한다.
func (s *AuthService) ParseAccessToken(token string) (string, string, error) {
	return s.jwtManager.Parse(token)
}

// ResolveUser 는 JWT sub(user_code)에 대응하는 애플리케이션 유저를 조회한다.
// 토큰은 유효하지만 유저 레코드가 없는 경우 ErrUserNotFound 를 반환한다.
func (s *AuthService) ResolveUser(ctx context.Context, userCode string) (*models.User, error) {
	user, err := s.users.FindByUserCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
