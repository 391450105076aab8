package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"what2watch/cmd/api/services"
)

// requireUserCodeFromHeader는 Authorization 헤더가 필수인 엔드포인트에서
// JWT를 파싱하여 user_code를 추출한다. 실패 시 적절한 401 에러 응답을 내려주고 false를 반환한다.
func requireUserCodeFromHeader(c *gin.Context, authSvc *services.AuthService) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "empty_token"})
		return "", false
	}

	userCode, _, err := authSvc.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return "", false
	}

	return userCode, true
}
