package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/adapters/http/handlers"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/service"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService *service.ProductService
}

// PublicProductResponse is the catalog entry shown to shoppers. It has no stock count.
type PublicProductResponse struct {
	ID           string          `json:"id" example:"665f1c2e9b1d4a0012345678"`
	Title        string          `json:"title" example:"Ceramic mug"`
	Category     string          `json:"category" example:"kitchen"`
	PriceExclTax decimal.Decimal `json:"price_excl_tax" swaggertype:"string" example:"19.99"`
	Image        string          `json:"image"`
	InStock      bool            `json:"in_stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type AdminProductResponse struct {
	ID           string          `json:"id" example:"665f1c2e9b1d4a0012345678"`
	Title        string          `json:"title" example:"Ceramic mug"`
	Category     string          `json:"category" example:"kitchen"`
	PriceExclTax decimal.Decimal `json:"price_excl_tax" swaggertype:"string" example:"19.99"`
	Stock        int             `json:"stock" example:"12"`
	Image        string          `json:"image"`
	InStock      bool            `json:"in_stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewPublicProductResponse(product domain.PublicProduct) PublicProductResponse {
	return PublicProductResponse{
		ID:           string(product.ID),
		Title:        product.Title,
		Category:     product.Category,
		PriceExclTax: product.PriceExclTax,
		Image:        product.Image,
		InStock:      product.InStock,
		UpdatedAt:    product.UpdatedAt,
	}
}

func NewAdminProductResponse(product *domain.Product) AdminProductResponse {
	return AdminProductResponse{
		ID:           string(product.ID),
		Title:        product.Title,
		Category:     product.Category,
		PriceExclTax: product.PriceExclTax,
		Stock:        product.Stock,
		Image:        product.Image,
		InStock:      product.InStock(),
		UpdatedAt:    product.UpdatedAt,
	}
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// adminCredential aborts with 401 before the body is read when no token was sent.
func adminCredential(c *gin.Context) (string, bool) {
	credential := handlers.BearerToken(c)
	if credential == "" {
		handlers.HandleError(c, serviceerrors.NewUnauthorizedError("unauthorized"))
		return "", false
	}
	return credential, true
}

// GetCatalog godoc
// @Summary     List the public catalog
// @Description Returns every product, most recently updated first. Stock is reported only as in_stock.
// @Tags        products
// @Produce     json
// @Success     200 {array}  PublicProductResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) GetCatalog(c *gin.Context) {
	products, err := pc.productService.GetPublicCatalog(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]PublicProductResponse, len(products))
	for i, product := range products {
		response[i] = NewPublicProductResponse(product)
	}

	c.JSON(http.StatusOK, response)
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Adds a product to the catalog. Stock defaults to 0.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} AdminProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/admin/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	credential, ok := adminCredential(c)
	if !ok {
		return
	}

	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), credential, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewAdminProductResponse(product))
}

// GetProduct godoc
// @Summary     Get a product
// @Description Returns a product including its stock count
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Product ID"
// @Success     200 {object} AdminProductResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/admin/products/{id} [get]
func (pc *ProductController) GetProduct(c *gin.Context) {
	credential, ok := adminCredential(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetByID(c.Request.Context(), credential, domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAdminProductResponse(product))
}

// UpdateStock godoc
// @Summary     Set product stock
// @Description Replaces the stock count of a product
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string                  true "Product ID"
// @Param       request body     dto.UpdateStockRequest true "New stock"
// @Success     200     {object} AdminProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/admin/products/{id}/stock [patch]
func (pc *ProductController) UpdateStock(c *gin.Context) {
	credential, ok := adminCredential(c)
	if !ok {
		return
	}

	var request dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.UpdateStock(c.Request.Context(), credential, domain.ID(c.Param("id")), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAdminProductResponse(product))
}
