package dto

import "time"

type UserProfileDTO struct {
	UserCode     string    `json:"user_code"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateProfileRequestDTO 는 본인 프로필 갱신 요청이다. 비어 있는 필드는 기존 값을 유지한다.
type UpdateProfileRequestDTO struct {
	Name         string `json:"name,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}
