package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyUsage 는 분석 워커가 chat 이벤트를 집계한 일 단위 사용량 문서다.
// (date, mode) 당 한 문서, $inc 업서트로만 갱신한다.
// Collection: chat_daily_usage
type DailyUsage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD (UTC)
	Mode        string             `bson:"mode" json:"mode"`
	Turns       int64              `bson:"turns" json:"turns"`
	TotalTokens int64              `bson:"total_tokens" json:"total_tokens"`
	ZeroResults int64              `bson:"zero_results" json:"zero_results"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
