package ports

import (
	"context"

	"shipquickr/internal/features/markup/domain"
)

// MarkupService defines the primary port for markup administration.
type MarkupService interface {
	SetRule(ctx context.Context, freightType domain.ChargeType, freightAmount float64, codType domain.ChargeType, codAmount float64) (*domain.MarkupRule, error)
	// ActiveRule returns nil without error when no rule was ever created.
	ActiveRule(ctx context.Context) (*domain.MarkupRule, error)
}

// MarkupRepository defines the secondary port for markup storage.
type MarkupRepository interface {
	Save(ctx context.Context, rule *domain.MarkupRule) error
	// Latest returns the most recently created rule, or nil.
	Latest(ctx context.Context) (*domain.MarkupRule, error)
}
