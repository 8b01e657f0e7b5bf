// internal/domain/user/admin_service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/pkg/auth"
	"gorm.io/gorm"
)

// AdminService handles staff and account administration
type AdminService struct {
	db      *gorm.DB
	config  *config.Config
	service *Service
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:      db,
		config:  cfg,
		service: NewService(db, cfg),
	}
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
	Status string `form:"status"` // active, inactive, all
	Role   string `form:"role"`
}

// UserListResponse represents user list with pagination
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// CreateEmployeeRequest represents staff account creation data
type CreateEmployeeRequest struct {
	Email     string    `json:"email" form:"email" binding:"required,email"`
	Password  string    `json:"password" form:"password" binding:"required"`
	FirstName string    `json:"first_name" form:"first_name"`
	LastName  string    `json:"last_name" form:"last_name"`
	Role      auth.Role `json:"role" form:"rol" binding:"required"`
}

// UserStatusUpdateRequest represents user status update
type UserStatusUpdateRequest struct {
	IsActive *bool `json:"is_active" form:"activo" binding:"required"`
}

// GetUsers lists accounts with optional filters
func (s *AdminService) GetUsers(ctx context.Context, req *UserListRequest) (*UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&User{})

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	switch req.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	if req.Role != "" && req.Role != "all" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("id ASC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return &UserListResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
	}, nil
}

// CreateEmployee creates a staff account holding one employee role
func (s *AdminService) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*User, error) {
	if !req.Role.IsEmployee() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	return s.service.createUser(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Role)
}

// SetActive enables or disables an account. Superusers cannot be disabled
// through this path.
func (s *AdminService) SetActive(ctx context.Context, userID uint, active bool) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsSuperuser && !active {
		return nil, ErrSuperuserLocked
	}

	if err := s.db.WithContext(ctx).Model(&user).UpdateColumn("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	user.IsActive = active
	return &user, nil
}

// EnsureSuperuser creates the superuser account if no user has that email
func (s *AdminService) EnsureSuperuser(ctx context.Context, email, password string) (*User, error) {
	var existing User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up superuser: %w", err)
	}

	user, err := s.service.createUser(ctx, email, password, "Super", "Usuario", auth.RoleAdministrator)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).UpdateColumn("is_superuser", true).Error; err != nil {
		return nil, fmt.Errorf("failed to promote superuser: %w", err)
	}
	user.IsSuperuser = true
	return user, nil
}
