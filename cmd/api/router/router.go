package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"what2watch/cmd/api/clients/tmdbclient"
	"what2watch/cmd/api/handlers"
	"what2watch/cmd/api/middleware"
	"what2watch/cmd/api/quota"
	"what2watch/cmd/api/services"
	"what2watch/config"
	"what2watch/db"
	_ "what2watch/docs"
	"what2watch/eventbus"
	"what2watch/repositories"
)

// New 는 전체 HTTP 라우터를 조립한다. bus 는 nil 일 수 있으며,
// 그 경우 채팅 완료 이벤트 발행만 생략된다.
func New(bus eventbus.EventBus) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	tmdb := tmdbclient.New()

	// Health check
	r.GET("/health", handlers.HealthHandler(tmdb))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	database := db.Database()
	userRepo := repositories.NewUserRepository(database)
	chatLogRepo := repositories.NewChatLogRepository(database)

	authSvc, err := services.NewAuthServiceFromEnv(userRepo)
	if err != nil {
		return nil, err
	}

	limiter := quota.NewChatQuotaLimiterFromConfig(config.GetConfig())
	recommendSvc := services.NewRecommendService(tmdb)
	chatSvc := services.NewChatService(recommendSvc, authSvc, chatLogRepo, limiter, bus)

	userSvc := services.NewUserService(userRepo)

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/ai/chat", handlers.ChatHandler(chatSvc, authSvc))
		api.GET("/users/me", handlers.GetMeHandler(userSvc, authSvc))
		api.PUT("/users/me", handlers.UpdateMeHandler(userSvc, authSvc))
	}

	return r, nil
}
