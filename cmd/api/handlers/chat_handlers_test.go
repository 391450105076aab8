package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"what2watch/cmd/api/auth"
	"what2watch/cmd/api/services"
)

func newChatRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "test-issuer")

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	authSvc := services.NewAuthService(jwtManager, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// chatSvc 는 인증/입력 검증을 통과해야만 호출되므로 여기서는 nil 로 둔다.
	r.POST("/api/v1/ai/chat", ChatHandler(nil, authSvc))
	return r, jwtManager
}

func TestChatHandlerUnauthenticated(t *testing.T) {
	r, _ := newChatRouter(t)

	// 헤더 없음
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/chat", strings.NewReader(`{"message":"hi"}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 잘못된 토큰
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ai/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	r, jwtManager := newChatRouter(t)

	token, err := jwtManager.Sign("user-001", auth.RoleUser)
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/chat", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}
