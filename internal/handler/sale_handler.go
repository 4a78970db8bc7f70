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

type SaleHandler struct {
	saleService *service.SaleService
	logger      *zap.Logger
}

func NewSaleHandler(saleService *service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	var req domain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// A cashier's or manager's own sales are attributed to them even when the
	// client omits the employee id.
	if req.EmployeeID == "" && principal.Role != domain.RoleOwner {
		req.EmployeeID = principal.Subject
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), principal.BusinessID, req)
	if err != nil {
		var stockErr *service.StockError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":      "Insufficient stock",
				"product_id": stockErr.ProductID,
				"product":    stockErr.ProductName,
				"available":  stockErr.Available,
				"requested":  stockErr.Requested,
			})
		case errors.Is(err, service.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Some products were not found or belong to another business",
			})
		case errors.Is(err, service.ErrEmployeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Employee not found",
			})
		default:
			h.logger.Error("Failed to create sale",
				zap.String("business_id", principal.BusinessID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create sale",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)
	window := c.Query("date")

	sales, err := h.saleService.ListSales(c.Request.Context(), principal.BusinessID, window)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		h.logger.Error("Failed to list sales",
			zap.String("business_id", principal.BusinessID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list sales",
		})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)
	saleID := c.Param("id")

	sale, err := h.saleService.GetSale(c.Request.Context(), principal.BusinessID, saleID)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sale not found",
			})
			return
		}

		h.logger.Error("Failed to get sale",
			zap.String("sale_id", saleID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get sale",
		})
		return
	}

	c.JSON(http.StatusOK, sale)
}
