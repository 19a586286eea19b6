package models

import "time"

// Transaction types. Anything else is rejected before it can touch a
// balance.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DefaultCategory is the schema-level sentinel used when a transaction is
// recorded without a category.
const DefaultCategory = "Uncategorized"

// Transaction is an immutable income/expense record. There is no update
// path: rows are appended and only removed by clear-history.
type Transaction struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	BalanceID uint      `gorm:"not null"`
	Amount    float64   `gorm:"not null"`
	Category  string    `gorm:"size:64;not null;default:Uncategorized"`
	Type      string    `gorm:"column:transaction_type;size:10;not null"`
	Date      time.Time `gorm:"index;not null"`
	CreatedAt time.Time

	User    User    `gorm:"constraint:OnDelete:CASCADE"`
	Balance Balance `gorm:"constraint:OnDelete:CASCADE"`
}
