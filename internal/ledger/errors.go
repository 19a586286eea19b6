package ledger

import "errors"

var (
	// ErrInvalidType is returned for a transaction type other than
	// income or expense. Checked before any write happens.
	ErrInvalidType = errors.New("ledger: invalid transaction type")

	// ErrAmountNotPositive is returned when the amount is zero or negative.
	ErrAmountNotPositive = errors.New("ledger: amount must be positive")

	// ErrNoBalance is returned when the owner has no balance row. Balances
	// are created at registration, so hitting this means the account is in
	// a broken state; the whole operation is aborted rather than creating
	// a balance on the fly.
	ErrNoBalance = errors.New("ledger: user has no balance")
)
