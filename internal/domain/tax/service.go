// internal/domain/tax/service.go
package tax

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tienda-org/storefront/internal/config"
	"gorm.io/gorm"
)

// ErrInvalidPercentage is returned for rates outside 0..100
var ErrInvalidPercentage = errors.New("tax percentage must be between 0 and 100")

var hundred = decimal.NewFromInt(100)

// Service manages the tax rate history
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new tax service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SetRequest represents a new tax rate submission
type SetRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// Current returns the newest setting. With an empty history it returns an
// unsaved setting carrying the configured default rate.
func (s *Service) Current(ctx context.Context) (*Setting, error) {
	var setting Setting
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Setting{Percentage: s.config.Store.DefaultTaxPercent}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current tax setting: %w", err)
	}
	return &setting, nil
}

// CurrentPercentage returns the rate in force
func (s *Service) CurrentPercentage(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.Current(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return setting.Percentage, nil
}

// Set records a new rate. Earlier entries are never modified.
func (s *Service) Set(ctx context.Context, percentage decimal.Decimal, createdBy uint) (*Setting, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, ErrInvalidPercentage
	}

	setting := Setting{Percentage: percentage.Round(2)}
	if createdBy != 0 {
		setting.CreatedByID = &createdBy
	}

	if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to save tax setting: %w", err)
	}
	return &setting, nil
}

// History lists every setting, newest first
func (s *Service) History(ctx context.Context) ([]Setting, error) {
	var settings []Setting
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list tax settings: %w", err)
	}
	return settings, nil
}
