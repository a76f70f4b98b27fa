package service

import (
	"context"
	"fmt"

	"shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/markup/ports"
)

// MarkupServiceImpl implements ports.MarkupService.
type MarkupServiceImpl struct {
	repo ports.MarkupRepository
}

// NewMarkupService creates a new MarkupServiceImpl.
func NewMarkupService(repo ports.MarkupRepository) *MarkupServiceImpl {
	return &MarkupServiceImpl{
		repo: repo,
	}
}

// SetRule creates and saves a new rule, which becomes the active one.
func (s *MarkupServiceImpl) SetRule(ctx context.Context, freightType domain.ChargeType, freightAmount float64, codType domain.ChargeType, codAmount float64) (*domain.MarkupRule, error) {
	rule, err := domain.NewMarkupRule(freightType, freightAmount, codType, codAmount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rule); err != nil {
		return nil, fmt.Errorf("service: failed to save markup rule: %w", err)
	}

	return rule, nil
}

// ActiveRule retrieves the current rule.
func (s *MarkupServiceImpl) ActiveRule(ctx context.Context) (*domain.MarkupRule, error) {
	rule, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get markup rule: %w", err)
	}

	return rule, nil
}
