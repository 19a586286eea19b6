package models

import "time"

// User represents an application user. Each user owns exactly one Balance
// and any number of Transactions and Categories.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:64"`
}
