package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/http/response"
	"github.com/yungbote/transparency-backend/internal/platform/ctxutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{log: log.With("handler", "ProductHandler"), productService: productService}
}

// POST /api/products
func (ph *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name      string  `json:"name"`
		SKU       *string `json:"sku"`
		Category  *string `json:"category"`
		CompanyID *string `json:"companyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	product, err := ph.productService.Create(c.Request.Context(), identity, services.CreateProductInput{
		Name:      req.Name,
		SKU:       req.SKU,
		Category:  req.Category,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		response.RespondAPIError(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"id": product.ID})
}

// GET /api/products/:id
func (ph *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, ph.log, err)
		return
	}
	detail, err := ph.productService.Get(c.Request.Context(), productID)
	if err != nil {
		response.RespondAPIError(c, ph.log, err)
		return
	}
	response.RespondOK(c, detail)
}
