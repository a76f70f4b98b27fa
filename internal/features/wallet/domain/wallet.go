package domain

import "errors"

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

var (
	// ErrInsufficientFunds is returned when a debit would take the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	// ErrInvalidAmount is returned for non-positive debit or credit amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Balance is a user's wallet balance.
type Balance struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}
