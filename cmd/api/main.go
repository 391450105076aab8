package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	"what2watch/cmd/api/router"
	"what2watch/config"
	"what2watch/db"
	_ "what2watch/docs" // swag will generate this package
	"what2watch/eventbus"
)

// @title           What2Watch API
// @version         1.0
// @description     AI chat based movie and TV recommendation API
// @BasePath        /api/v1
func main() {
	config.InitApp()
	if err := db.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Kafka 는 선택 의존성이다. 브로커 설정이 없으면 이벤트 발행 없이 기동한다.
	var bus eventbus.EventBus
	if os.Getenv("KAFKA_BOOTSTRAP_SERVERS") != "" {
		brokers := eventbus.GetBrokers()
		for _, t := range eventbus.AllTopics {
			if err := eventbus.EnsureTopics(brokers, t, 3); err != nil {
				log.Printf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
			}
		}
		kafkaBus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			log.Fatal(err)
		}
		defer kafkaBus.Close()
		bus = kafkaBus
	}

	r, err := router.New(bus)
	if err != nil {
		log.Fatal(err)
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:    ":8080",
		Handler: corsMiddleware.Handler(r),
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
