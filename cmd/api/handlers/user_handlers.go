package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"what2watch/cmd/api/dto"
	"what2watch/cmd/api/services"
)

// GetMeHandler godoc
// @Summary      내 프로필 조회
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /users/me [get]
func GetMeHandler(
	userSvc *services.UserService,
	authSvc *services.AuthService,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, authSvc)
		if !ok {
			return
		}

		profile, err := userSvc.GetProfile(c.Request.Context(), userCode)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "user_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "profile_lookup_failed"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

// UpdateMeHandler godoc
// @Summary      내 프로필 갱신
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateProfileRequestDTO  true  "profile update"
// @Success      200   {object}  dto.UserProfileDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /users/me [put]
func UpdateMeHandler(
	userSvc *services.UserService,
	authSvc *services.AuthService,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.UpdateProfileRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		profile, err := userSvc.UpdateProfile(c.Request.Context(), userCode, req)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "user_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "profile_update_failed"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}
