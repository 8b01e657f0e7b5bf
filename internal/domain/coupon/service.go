// internal/domain/coupon/service.go
package coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/tienda-org/storefront/internal/config"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCodeTaken      = errors.New("coupon code already exists")
	ErrInvalidCoupon  = errors.New("invalid coupon")
)

// Service manages discount coupons
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new coupon service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents coupon creation data
type CreateRequest struct {
	Code               string `json:"code" form:"codigo" binding:"required"`
	DiscountPercentage int    `json:"discount_percentage" form:"descuento_porcentaje"`
	IsActive           *bool  `json:"is_active" form:"activo"`
}

// Create stores a new coupon. Codes are unique after normalization.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Coupon, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidCoupon)
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidCoupon)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return nil, ErrCodeTaken
	}

	coupon := Coupon{
		Code:               code,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return &coupon, nil
}

// List returns all coupons ordered by code
func (s *Service) List(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if err := s.db.WithContext(ctx).Order("code ASC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// SetActive switches a coupon on or off. Coupons are never deleted.
func (s *Service) SetActive(ctx context.Context, id uint, active bool) (*Coupon, error) {
	var coupon Coupon
	if err := s.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&coupon).UpdateColumn("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	coupon.IsActive = active
	return &coupon, nil
}

// FindActive resolves a submitted code. Unknown, empty and inactive codes
// all yield nil without an error.
func (s *Service) FindActive(ctx context.Context, code string) (*Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil
	}

	var coupon Coupon
	err := s.db.WithContext(ctx).Where("code = ? AND is_active = ?", code, true).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	return &coupon, nil
}
