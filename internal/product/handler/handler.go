package handler

import (
	"net/http"

	"github.com/Kamleshja/pims-service/internal/httperr"
	"github.com/Kamleshja/pims-service/internal/product"
	"github.com/Kamleshja/pims-service/internal/product/dto"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type createProductRequest struct {
	Name              string          `json:"name" binding:"required,max=200"`
	Description       string          `json:"description" binding:"max=1000"`
	SKU               string          `json:"sku" binding:"required,max=50"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold int             `json:"low_stock_threshold" binding:"gte=0"`
	CategoryIDs       []string        `json:"category_ids" binding:"dive,uuid"`
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "price cannot be negative")
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		SKU:               req.SKU,
		Price:             req.Price,
		LowStockThreshold: req.LowStockThreshold,
		CategoryIDs:       req.CategoryIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.uc.ListProducts(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
