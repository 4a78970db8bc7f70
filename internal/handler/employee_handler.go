package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/service"
	"github.com/Bentshims/Fastmoney/pkg/middleware"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	var req domain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), principal.BusinessID, req)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already in use",
			})
			return
		}

		h.logger.Error("Failed to create employee",
			zap.String("business_id", principal.BusinessID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create employee",
		})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), principal.BusinessID)
	if err != nil {
		h.logger.Error("Failed to list employees",
			zap.String("business_id", principal.BusinessID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list employees",
		})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)
	employeeID := c.Param("id")

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), principal.BusinessID, employeeID); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Employee not found",
			})
			return
		}

		h.logger.Error("Failed to delete employee",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete employee",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
