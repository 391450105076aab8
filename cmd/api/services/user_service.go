package services

import (
	"context"
	"errors"

	"what2watch/cmd/api/dto"
	"what2watch/models"
	"what2watch/repositories"
)

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile 은 유저 프로필을 조회한다.
func (s *UserService) GetProfile(ctx context.Context, userCode string) (dto.UserProfileDTO, error) {
	user, err := s.users.FindByUserCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return dto.UserProfileDTO{}, ErrUserNotFound
		}
		return dto.UserProfileDTO{}, err
	}
	return toProfileDTO(user), nil
}

// UpdateProfile 은 본인 프로필(이름, 프로필 이미지)을 갱신한다.
// 비어 있는 필드는 기존 값을 유지하고, 갱신 후 프로필을 다시 조회해 돌려준다.
func (s *UserService) UpdateProfile(ctx context.Context, userCode string, req dto.UpdateProfileRequestDTO) (dto.UserProfileDTO, error) {
	user, err := s.users.FindByUserCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return dto.UserProfileDTO{}, ErrUserNotFound
		}
		return dto.UserProfileDTO{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}

	if err := s.users.UpsertByUserCode(ctx, user); err != nil {
		return dto.UserProfileDTO{}, err
	}
	return toProfileDTO(user), nil
}

func toProfileDTO(user *models.User) dto.UserProfileDTO {
	return dto.UserProfileDTO{
		UserCode:     user.UserCode,
		Email:        user.Email,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
}
