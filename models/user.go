package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the minimal application user record.
// Identity is issued by an external auth provider; this service only
// keeps the mapping from user_code (JWT sub) to an application user.
// Collection: users
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserCode     string             `bson:"user_code" json:"user_code"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
