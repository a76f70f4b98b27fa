package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipquickr/internal/core/database"
	"shipquickr/internal/features/markup/domain"
)

// PostgresMarkupRepository implements ports.MarkupRepository on the markup_rules table.
type PostgresMarkupRepository struct {
	db *sql.DB
}

// NewPostgresMarkupRepository creates a new PostgresMarkupRepository.
func NewPostgresMarkupRepository(db *sql.DB) *PostgresMarkupRepository {
	return &PostgresMarkupRepository{db: db}
}

// Save inserts a new rule. Rules are never updated in place.
func (r *PostgresMarkupRepository) Save(ctx context.Context, rule *domain.MarkupRule) error {
	query := `
		INSERT INTO markup_rules (id, freight_charge_type, freight_charge_amount, cod_charge_type, cod_charge_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := database.QuerierFrom(ctx, r.db).ExecContext(ctx, query,
		rule.ID,
		string(rule.FreightChargeType),
		rule.FreightChargeAmount,
		string(rule.CodChargeType),
		rule.CodChargeAmount,
		rule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert markup rule: %w", err)
	}
	return nil
}

// Latest returns the most recently created rule, or nil when the table is empty.
func (r *PostgresMarkupRepository) Latest(ctx context.Context) (*domain.MarkupRule, error) {
	query := `
		SELECT id, freight_charge_type, freight_charge_amount, cod_charge_type, cod_charge_amount, created_at
		FROM markup_rules
		ORDER BY created_at DESC
		LIMIT 1`

	var (
		rule        domain.MarkupRule
		freightType string
		codType     string
	)
	err := database.QuerierFrom(ctx, r.db).QueryRowContext(ctx, query).Scan(
		&rule.ID,
		&freightType,
		&rule.FreightChargeAmount,
		&codType,
		&rule.CodChargeAmount,
		&rule.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query markup rule: %w", err)
	}

	rule.FreightChargeType = domain.ChargeType(freightType)
	rule.CodChargeType = domain.ChargeType(codType)
	return &rule, nil
}
