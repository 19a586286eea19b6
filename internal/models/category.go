package models

import "time"

// Category is a per-user registry of distinct category names, created
// lazily the first time a transaction uses a name. Transactions keep a
// denormalized copy of the name, so rows here are never joined against,
// only listed for UI population.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_user_category;not null"`
	Name      string `gorm:"size:64;uniqueIndex:idx_user_category;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
