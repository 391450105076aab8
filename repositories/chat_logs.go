package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"what2watch/models"
)

type ChatLogRepository struct {
	col *mongo.Collection
}

func NewChatLogRepository(db *mongo.Database) *ChatLogRepository {
	return &ChatLogRepository{col: db.Collection("chat_logs")}
}

func (r *ChatLogRepository) Insert(ctx context.Context, log models.ChatLog) (*mongo.InsertOneResult, error) {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	return r.col.InsertOne(ctx, log)
}
