package handler

import (
	"net/http"

	"github.com/Kamleshja/pims-service/internal/auth"
	"github.com/Kamleshja/pims-service/internal/httperr"
	"github.com/Kamleshja/pims-service/internal/pricing"
	"github.com/Kamleshja/pims-service/internal/pricing/dto"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PricingHandler struct {
	uc     pricing.UseCase
	logger logger.ZapLogger
}

func NewPricingHandler(uc pricing.UseCase, log logger.ZapLogger) *PricingHandler {
	return &PricingHandler{
		uc:     uc,
		logger: log,
	}
}

type updatePriceRequest struct {
	NewPrice decimal.Decimal `json:"new_price"`
	Reason   string          `json:"reason" binding:"required,max=500"`
}

// UpdatePrice handles PUT /api/v1/products/:id/price.
func (h *PricingHandler) UpdatePrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}
	if req.NewPrice.IsNegative() {
		httperr.BadRequest(c, "price cannot be negative")
		return
	}

	err := h.uc.UpdatePrice(c.Request.Context(), &dto.UpdatePriceInput{
		ProductID: c.Param("id"),
		NewPrice:  req.NewPrice,
		Reason:    req.Reason,
		ActorID:   auth.GetUserID(c),
	})
	if err != nil {
		h.logger.Debug("price update failed", zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkUpdatePriceRequest struct {
	ProductIDs     []string        `json:"product_ids" binding:"required,min=1,dive,uuid"`
	AdjustmentType string          `json:"adjustment_type" binding:"required,oneof=Percentage Fixed"`
	Value          decimal.Decimal `json:"value"`
	Reason         string          `json:"reason" binding:"required,max=500"`
}

// BulkUpdatePrice handles POST /api/v1/products/bulk-price.
func (h *PricingHandler) BulkUpdatePrice(c *gin.Context) {
	var req bulkUpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}
	if !req.Value.IsPositive() {
		httperr.BadRequest(c, "adjustment value must be greater than zero")
		return
	}

	err := h.uc.BulkUpdatePrice(c.Request.Context(), &dto.BulkUpdatePriceInput{
		ProductIDs:     req.ProductIDs,
		AdjustmentType: req.AdjustmentType,
		Value:          req.Value,
		Reason:         req.Reason,
		ActorID:        auth.GetUserID(c),
	})
	if err != nil {
		h.logger.Debug("bulk price update failed", zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
