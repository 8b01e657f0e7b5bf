package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/pkg/auth"
	"github.com/tienda-org/storefront/internal/pkg/testdb"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough-123",
			Issuer:            "tienda-test",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func newServices(t *testing.T) (*Service, *AdminService) {
	db := testdb.New(t, &User{})
	cfg := testConfig()
	return NewService(db, cfg), NewAdminService(db, cfg)
}

func register(t *testing.T, s *Service, email string) *AuthResponse {
	resp, err := s.Register(context.Background(), &RegisterRequest{
		Email:           email,
		Password:        "Segura2024",
		ConfirmPassword: "Segura2024",
		FirstName:       "Ana",
		LastName:        "Pérez",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesCustomer(t *testing.T) {
	s, _ := newServices(t)

	resp := register(t, s, "  Ana@Example.com ")
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, auth.RoleCustomer, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "Segura2024", resp.User.Password)
	assert.Equal(t, "Ana Pérez", resp.User.GetFullName())

	claims, err := s.jwtManager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.False(t, claims.Principal().Has(auth.RoleWarehouse, auth.RoleAdministrator, auth.RoleFinancial))
}

func TestRegisterRejectsDuplicatesAndMismatch(t *testing.T) {
	s, _ := newServices(t)
	ctx := context.Background()
	register(t, s, "ana@example.com")

	_, err := s.Register(ctx, &RegisterRequest{Email: "ANA@example.com", Password: "Segura2024", ConfirmPassword: "Segura2024"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(ctx, &RegisterRequest{Email: "otro@example.com", Password: "Segura2024", ConfirmPassword: "Otra2024"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = s.Register(ctx, &RegisterRequest{Email: "otro@example.com", Password: "12345678", ConfirmPassword: "12345678"})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	s, admin := newServices(t)
	ctx := context.Background()
	created := register(t, s, "ana@example.com")

	resp, err := s.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "Segura2024"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLoginAt)

	_, err = s.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "incorrecta1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &LoginRequest{Email: "nadie@example.com", Password: "Segura2024"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = admin.SetActive(ctx, created.User.ID, false)
	require.NoError(t, err)
	_, err = s.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "Segura2024"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateEmployee(t *testing.T) {
	_, admin := newServices(t)
	ctx := context.Background()

	u, err := admin.CreateEmployee(ctx, &CreateEmployeeRequest{
		Email:    "bodega@tienda.local",
		Password: "Bodega2024",
		Role:     auth.RoleWarehouse,
	})
	require.NoError(t, err)
	p := u.Principal()
	assert.True(t, p.Has(auth.RoleWarehouse))
	assert.False(t, p.Has(auth.RoleFinancial))

	_, err = admin.CreateEmployee(ctx, &CreateEmployeeRequest{
		Email:    "cliente@tienda.local",
		Password: "Cliente2024",
		Role:     auth.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestGetUsersFilters(t *testing.T) {
	s, admin := newServices(t)
	ctx := context.Background()
	register(t, s, "ana@example.com")
	register(t, s, "luis@example.com")
	_, err := admin.CreateEmployee(ctx, &CreateEmployeeRequest{Email: "fin@tienda.local", Password: "Finanzas2024", Role: auth.RoleFinancial})
	require.NoError(t, err)

	all, err := admin.GetUsers(ctx, &UserListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Equal(t, 1, all.TotalPages)

	staff, err := admin.GetUsers(ctx, &UserListRequest{Role: string(auth.RoleFinancial)})
	require.NoError(t, err)
	require.Len(t, staff.Users, 1)
	assert.Equal(t, "fin@tienda.local", staff.Users[0].Email)

	found, err := admin.GetUsers(ctx, &UserListRequest{Search: "LUIS"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, found.Total)
}

func TestSetActiveAndSuperuser(t *testing.T) {
	_, admin := newServices(t)
	ctx := context.Background()

	_, err := admin.SetActive(ctx, 999, false)
	assert.ErrorIs(t, err, ErrUserNotFound)

	su, err := admin.EnsureSuperuser(ctx, "admin@tienda.local", "Admin12345")
	require.NoError(t, err)
	assert.True(t, su.IsSuperuser)
	assert.True(t, su.Principal().Has(auth.RoleFinancial))

	again, err := admin.EnsureSuperuser(ctx, "admin@tienda.local", "Admin12345")
	require.NoError(t, err)
	assert.Equal(t, su.ID, again.ID)

	_, err = admin.SetActive(ctx, su.ID, false)
	assert.ErrorIs(t, err, ErrSuperuserLocked)
}

func TestIsActiveFollowsSetActive(t *testing.T) {
	svc, admin := newServices(t)
	ctx := context.Background()

	u, err := admin.CreateEmployee(ctx, &CreateEmployeeRequest{
		Email:    "finanzas@tienda.local",
		Password: "Finanzas2024",
		Role:     auth.RoleFinancial,
	})
	require.NoError(t, err)

	active, err := svc.IsActive(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = admin.SetActive(ctx, u.ID, false)
	require.NoError(t, err)

	active, err = svc.IsActive(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.IsActive(ctx, 999)
	require.NoError(t, err)
	assert.False(t, active)
}
