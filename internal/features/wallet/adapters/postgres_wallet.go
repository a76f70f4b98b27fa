package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipquickr/internal/core/database"
	"shipquickr/internal/features/wallet/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostgresWallet implements ports.Wallet on the wallets and wallet_ledger tables.
type PostgresWallet struct {
	db *sql.DB
	tx *database.TxManager
}

// NewPostgresWallet creates a new PostgresWallet.
func NewPostgresWallet(db *sql.DB, tx *database.TxManager) *PostgresWallet {
	return &PostgresWallet{db: db, tx: tx}
}

// GetBalance returns the user's balance.
func (w *PostgresWallet) GetBalance(ctx context.Context, userID string) (float64, error) {
	var balance float64
	err := database.QuerierFrom(ctx, w.db).
		QueryRowContext(ctx, `SELECT balance FROM wallets WHERE user_id = $1`, userID).
		Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance for %s: %w", userID, err)
	}
	return balance, nil
}

// Debit takes amount from the wallet. The balance check and the decrement are one conditional UPDATE.
func (w *PostgresWallet) Debit(ctx context.Context, userID string, amount float64, orderID string) (float64, error) {
	amount = cents(amount)
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	var balance float64
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := database.QuerierFrom(ctx, w.db)

		err := q.QueryRowContext(ctx, `
			UPDATE wallets
			SET balance = balance - $1, updated_at = now()
			WHERE user_id = $2 AND balance >= $1
			RETURNING balance`, amount, userID).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInsufficientFunds
		}
		if err != nil {
			return fmt.Errorf("failed to debit wallet %s: %w", userID, err)
		}

		return w.record(ctx, q, userID, orderID, domain.EntryTypeDebit, amount, balance, "shipment booking")
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Credit adds amount to the wallet, creating it on first use.
func (w *PostgresWallet) Credit(ctx context.Context, userID string, amount float64, orderID, reason string) (float64, error) {
	amount = cents(amount)
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	var balance float64
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := database.QuerierFrom(ctx, w.db)

		err := q.QueryRowContext(ctx, `
			INSERT INTO wallets (user_id, balance)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE
			SET balance = wallets.balance + EXCLUDED.balance, updated_at = now()
			RETURNING balance`, userID, amount).Scan(&balance)
		if err != nil {
			return fmt.Errorf("failed to credit wallet %s: %w", userID, err)
		}

		return w.record(ctx, q, userID, orderID, domain.EntryTypeCredit, amount, balance, reason)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (w *PostgresWallet) record(ctx context.Context, q database.Querier, userID, orderID string, entry domain.EntryType, amount, balance float64, reason string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO wallet_ledger (id, user_id, order_id, entry_type, amount, balance, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.NewString(), userID, orderID, string(entry), amount, balance, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s ledger entry: %w", entry, err)
	}
	return nil
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
