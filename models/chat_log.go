package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatLog stores one analytics record per chat turn (system monitoring purpose).
// Collection: chat_logs
type ChatLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserCode     string             `bson:"user_code" json:"user_code"`
	SessionID    string             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Mode         string             `bson:"mode" json:"mode"`     // recommendation | information
	Intent       string             `bson:"intent" json:"intent"` // RECOMMENDATION | INFORMATION
	Message      string             `bson:"message" json:"message"`
	ModelName    string             `bson:"model_name" json:"model_name"`
	ModelVersion string             `bson:"model_version" json:"model_version"`
	InputTokens  int64              `bson:"input_tokens" json:"input_tokens"`
	OutputTokens int64              `bson:"output_tokens" json:"output_tokens"`
	TotalTokens  int64              `bson:"total_tokens" json:"total_tokens"`
	DurationMs   int64              `bson:"duration_ms" json:"duration_ms"`
	ResultCount  int                `bson:"result_count" json:"result_count"`
	ResultIDs    []int              `bson:"result_ids,omitempty" json:"result_ids,omitempty"`
	ResultTypes  []string           `bson:"result_types,omitempty" json:"result_types,omitempty"`
	ErrorMessage *string            `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RequestedAt  time.Time          `bson:"requested_at" json:"requested_at"`
	CompletedAt  time.Time          `bson:"completed_at" json:"completed_at"`
}
