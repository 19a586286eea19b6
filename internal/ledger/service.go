// Package ledger implements the transaction-to-balance consistency core:
// every insert adjusts the owner's denormalized balance inside the same
// storage transaction, and every read is scoped to the owning user.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// Service owns all ledger mutations and queries.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Add records a transaction and applies its signed effect to the owner's
// balance. Insert and balance update commit or roll back as one unit, so a
// failure can never leave a transaction without its balance delta or the
// other way round.
func (s *Service) Add(userID uint, amount float64, category, txType string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	var delta float64
	switch txType {
	case models.TypeIncome:
		delta = amount
	case models.TypeExpense:
		delta = -amount
	default:
		return nil, ErrInvalidType
	}

	name := strings.TrimSpace(category)
	if name == "" {
		name = models.DefaultCategory
	}

	var created models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var balance models.Balance
		if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoBalance
			}
			return fmt.Errorf("load balance: %w", err)
		}

		// read-modify-write expressed in SQL so concurrent adds for the
		// same user cannot lose updates
		if err := tx.Model(&models.Balance{}).
			Where("user_id = ?", userID).
			Update("amount", gorm.Expr("amount + ?", delta)).Error; err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		if err := resolveCategory(tx, userID, name); err != nil {
			return err
		}

		created = models.Transaction{
			UserID:    userID,
			BalanceID: balance.ID,
			Amount:    amount,
			Category:  name,
			Type:      txType,
			Date:      time.Now().UTC(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// resolveCategory registers name for the user if it is not known yet.
// Lookup is a case-sensitive exact match on (user, name). The transaction
// row keeps its own copy of the name; later category management would not
// rewrite past transactions.
func resolveCategory(tx *gorm.DB, userID uint, name string) error {
	var cat models.Category
	if err := tx.Where(models.Category{UserID: userID, Name: name}).
		FirstOrCreate(&cat).Error; err != nil {
		return fmt.Errorf("resolve category: %w", err)
	}
	return nil
}

// BalanceOf returns the user's balance row.
func (s *Service) BalanceOf(userID uint) (*models.Balance, error) {
	var balance models.Balance
	if err := s.db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoBalance
		}
		return nil, fmt.Errorf("load balance: %w", err)
	}
	return &balance, nil
}

// Categories returns the user's registered category names, ascending.
func (s *Service) Categories(userID uint) ([]string, error) {
	var names []string
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ?", userID).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// ClearHistory permanently deletes every transaction of the user. The
// balance is deliberately left at its pre-clear value: there is no undo or
// audit trail, and the stored total keeps reflecting the cleared history.
func (s *Service) ClearHistory(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
