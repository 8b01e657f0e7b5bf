// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/user"
)

// UserAdminHandler handles employee and account administration
type UserAdminHandler struct {
	adminService *user.AdminService
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(adminService *user.AdminService) *UserAdminHandler {
	return &UserAdminHandler{
		adminService: adminService,
	}
}

// GetUsers handles GET /usuarios-tienda/usuarios
func (h *UserAdminHandler) GetUsers(c *gin.Context) {
	var req user.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.adminService.GetUsers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    response,
	})
}

// CreateEmployee handles POST /usuarios-tienda/nuevo-empleado
func (h *UserAdminHandler) CreateEmployee(c *gin.Context) {
	var req user.CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	employee, err := h.adminService.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee created successfully",
		"data":    employee,
	})
}

// UpdateUserStatus handles POST /usuarios-tienda/usuarios/:id/activo
func (h *UserAdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req user.UserStatusUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.adminService.SetActive(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		respondError(c, err, "Failed to update user status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User status updated successfully",
		"data":    updated,
	})
}
