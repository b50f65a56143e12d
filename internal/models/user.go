package models

import (
	"time"
)

type User struct {
	UserID    string    `json:"userId"`
	AuthSub   string    `json:"authSub"` // stable subject from the identity provider
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
