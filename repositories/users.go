package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"what2watch/models"
)

var ErrNotFound = errors.New("resource not found")

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByUserCode 는 JWT sub(user_code)로 애플리케이션 유저를 조회한다.
func (r *UserRepository) FindByUserCode(ctx context.Context, userCode string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"user_code": userCode}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpsertByUserCode 는 외부 인증 제공자 기준 유저 레코드를 갱신하거나 생성한다.
func (r *UserRepository) UpsertByUserCode(ctx context.Context, user *models.User) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"email":         user.Email,
			"name":          user.Name,
			"profile_image": user.ProfileImage,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"user_code":  user.UserCode,
			"role":       user.Role,
			"created_at": now,
		},
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"user_code": user.UserCode}, update, options.Update().SetUpsert(true))
	return err
}
