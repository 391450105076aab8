package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DailyUsageRepository struct {
	col *mongo.Collection
}

func NewDailyUsageRepository(db *mongo.Database) *DailyUsageRepository {
	return &DailyUsageRepository{col: db.Collection("chat_daily_usage")}
}

// IncrementTurn 은 (date, mode) 문서에 턴 수/토큰 수/빈 결과 수를 누적한다.
// 단순 $inc 업서트라 읽기-수정-쓰기 경합이 없다.
func (r *DailyUsageRepository) IncrementTurn(ctx context.Context, date, mode string, totalTokens int64, zeroResult bool) error {
	inc := bson.M{
		"turns":        int64(1),
		"total_tokens": totalTokens,
	}
	if zeroResult {
		inc["zero_results"] = int64(1)
	}

	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"date": date, "mode": mode}, update, options.Update().SetUpsert(true))
	return err
}
