package ledger

import (
	"fmt"

	"fintrack/internal/models"
)

// Sort keys accepted by Sorted. Anything else falls back to date.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByCategory = "category"
	SortByType     = "type"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// CategoryAll is the filter value meaning "no category restriction".
const CategoryAll = "all"

// List returns all of the user's transactions, newest first.
func (s *Service) List(userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Filter returns the user's transactions restricted by an optional category
// name and an optional exact amount. The two filters are conjunctive.
//
// The category filter only applies when the name is non-empty, not the
// literal "all", and registered for this user; an unrecognized name falls
// through silently instead of erroring. The amount filter is exact float
// equality, no tolerance.
func (s *Service) Filter(userID uint, category string, amount *float64) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID)

	if category != "" && category != CategoryAll {
		known, err := s.categoryKnown(userID, category)
		if err != nil {
			return nil, err
		}
		if known {
			q = q.Where("category = ?", category)
		}
	}

	if amount != nil {
		q = q.Where("amount = ?", *amount)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("filter transactions: %w", err)
	}
	return txs, nil
}

func (s *Service) categoryKnown(userID uint, name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

// Sorted returns the user's transactions ordered by the given key and
// direction, default (date, desc). Sorting by category defaults to
// ascending unless desc is explicitly requested. Sorting by type ignores
// the direction entirely and always orders ascending by type string; the
// asymmetry is inherited behavior kept as-is. Ties fall back to storage
// order, which is not deterministic.
func (s *Service) Sorted(userID uint, by, order string) ([]models.Transaction, error) {
	// whitelist the ORDER BY clause, never interpolate caller input
	orderBy := "date DESC"
	switch by {
	case SortByAmount:
		if order == OrderAsc {
			orderBy = "amount ASC"
		} else {
			orderBy = "amount DESC"
		}
	case SortByCategory:
		if order == OrderDesc {
			orderBy = "category DESC"
		} else {
			orderBy = "category ASC"
		}
	case SortByType:
		orderBy = "transaction_type ASC"
	default: // date
		if order == OrderAsc {
			orderBy = "date ASC"
		}
	}

	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order(orderBy).
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("sort transactions: %w", err)
	}
	return txs, nil
}
