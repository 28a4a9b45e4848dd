package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for user authorization.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultProfilePicture is used when registration supplies none.
const DefaultProfilePicture = "https://freesvg.org/img/abstract-user-flat-4.png"

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"` // bcrypt hash
	ProfilePicture string             `bson:"profile_picture" json:"profile_picture"`
	Role           string             `bson:"role" json:"role"` // admin or user
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
