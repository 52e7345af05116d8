package handler

import (
	"net/http"

	"github.com/Kamleshja/pims-service/internal/auth"
	"github.com/Kamleshja/pims-service/internal/httperr"
	"github.com/Kamleshja/pims-service/internal/inventory"
	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustStockRequest struct {
	ProductID      string `json:"product_id" binding:"required,uuid"`
	QuantityChange int    `json:"quantity_change" binding:"required"`
	Reason         string `json:"reason" binding:"required,max=500"`
}

// AdjustStock handles POST /api/v1/inventory/adjust.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	result, err := h.uc.AdjustStock(c.Request.Context(), &dto.AdjustStockInput{
		ProductID:      req.ProductID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ActorID:        auth.GetUserID(c),
	})
	if err != nil {
		h.logger.Debug("stock adjustment failed", zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory handles GET /api/v1/inventory/history?product_id=...
func (h *InventoryHandler) GetHistory(c *gin.Context) {
	var productID *string
	if id := c.Query("product_id"); id != "" {
		productID = &id
	}

	entries, err := h.uc.GetHistory(c.Request.Context(), productID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetLowStock handles GET /api/v1/inventory/low-stock.
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	products, err := h.uc.GetLowStockProducts(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}
