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

const idempotencyKeyHeader = "Idempotency-Key"

type CheckoutController struct {
	checkoutService *service.CheckoutService
}

type QuoteResponse struct {
	Total    decimal.Decimal `json:"total" swaggertype:"string" example:"20.50"`
	Amount   int64           `json:"amount" example:"2050"`
	Currency string          `json:"currency" example:"eur"`
	VATRate  decimal.Decimal `json:"vat_rate" swaggertype:"string" example:"0.21"`
}

type CheckoutResponse struct {
	Total        decimal.Decimal `json:"total" swaggertype:"string" example:"20.50"`
	Amount       int64           `json:"amount" example:"2050"`
	Currency     string          `json:"currency" example:"eur"`
	Reference    string          `json:"reference" example:"pi_3Nx"`
	ClientSecret string          `json:"client_secret,omitempty"`
	Status       string          `json:"status" example:"requires_payment_method"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewQuoteResponse(quote *domain.CheckoutQuote) QuoteResponse {
	return QuoteResponse{
		Total:    quote.Total.Round(2),
		Amount:   int64(quote.Amount),
		Currency: quote.Currency,
		VATRate:  quote.VATRate,
	}
}

func NewCheckoutResponse(result *domain.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Total:        result.Total.Round(2),
		Amount:       int64(result.Amount),
		Currency:     result.Currency,
		Reference:    result.Reference,
		ClientSecret: result.ClientSecret,
		Status:       result.Status,
		CreatedAt:    result.CreatedAt,
	}
}

func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// Quote godoc
// @Summary     Price a cart
// @Description Computes the cart total from catalog prices without contacting the payment processor
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body     dto.CheckoutRequest true "Cart"
// @Success     200     {object} QuoteResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/checkout/quote [post]
func (cc *CheckoutController) Quote(c *gin.Context) {
	var request dto.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	quote, err := cc.checkoutService.Quote(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewQuoteResponse(quote))
}

// Checkout godoc
// @Summary     Check out a cart
// @Description Computes the cart total from catalog prices and requests a payment authorization
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string              false "Key that makes retries return the first result"
// @Param       request         body     dto.CheckoutRequest true  "Cart"
// @Success     200             {object} CheckoutResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     502             {object} handlers.ErrorResponse
// @Router      /api/v1/checkout [post]
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var request dto.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	result, err := cc.checkoutService.Checkout(c.Request.Context(), c.GetHeader(idempotencyKeyHeader), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCheckoutResponse(result))
}
