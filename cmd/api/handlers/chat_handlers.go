package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"what2watch/cmd/api/dto"
	"what2watch/cmd/api/services"
)

// ChatHandler godoc
// @Summary      AI 채팅 턴
// @Description  로그인된 사용자의 채팅 메시지 하나를 처리한다. 추천 모드면 콘텐츠 목록을, information 모드면 답변 텍스트를 돌려준다.
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO  "유저 레코드 없음"
// @Failure      429   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /ai/chat [post]
func ChatHandler(
	chatSvc *services.ChatService,
	authSvc *services.AuthService,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		resp, chatErr := chatSvc.Chat(c.Request.Context(), userCode, req)
		if chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
