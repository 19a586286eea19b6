package models

import "time"

// Balance is the running total of a user's ledger, one row per user.
// Amount must equal the signed sum of the user's transactions (income
// positive, expense negative); only the ledger service writes it.
type Balance struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"uniqueIndex;not null"`
	Amount    float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
