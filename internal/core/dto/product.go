package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Title        string          `json:"title" example:"Ceramic mug"`
	Category     string          `json:"category"`
	PriceExclTax decimal.Decimal `json:"price_excl_tax" swaggertype:"string" example:"19.99"`
	Stock        int             `json:"stock"`
	Image        string          `json:"image"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock"`
}
