package ports

import "context"

// Wallet defines the secondary port for the merchant wallet ledger.
// Debit and Credit join the transaction carried by ctx, so they commit or roll back with the caller's other writes.
type Wallet interface {
	// GetBalance returns 0 for users without a wallet.
	GetBalance(ctx context.Context, userID string) (float64, error)
	// Debit atomically checks and decrements the balance and records a ledger entry.
	// It returns domain.ErrInsufficientFunds without side effects when the balance is too low.
	Debit(ctx context.Context, userID string, amount float64, orderID string) (float64, error)
	// Credit increments the balance and records a ledger entry, creating the wallet if needed.
	Credit(ctx context.Context, userID string, amount float64, orderID, reason string) (float64, error)
}
