// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/tienda-org/storefront/internal/pkg/auth"
	"gorm.io/gorm"
)

// User is a customer or staff account
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"`
	FirstName   string         `gorm:"size:100" json:"first_name"`
	LastName    string         `gorm:"size:100" json:"last_name"`
	Role        auth.Role      `gorm:"not null;size:20;index" json:"role"`
	IsSuperuser bool           `gorm:"not null" json:"is_superuser"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = normalizeEmail(u.Email)
	return nil
}

// Principal returns the capability set carried by the user's tokens
func (u *User) Principal() auth.Principal {
	var roles []auth.Role
	if u.Role != "" {
		roles = []auth.Role{u.Role}
	}
	return auth.Principal{
		UserID:    u.ID,
		Email:     u.Email,
		Roles:     roles,
		Superuser: u.IsSuperuser,
	}
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name or email)
func (u *User) GetDisplayName() string {
	fullName := u.GetFullName()
	if fullName != "" {
		return fullName
	}
	return u.Email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
