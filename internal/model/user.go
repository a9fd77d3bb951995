package model

import "time"

// User is a planner account. Every other record is owned by exactly one user.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the public listing shape of a user.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
