package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           ID
	Title        string
	Category     string
	PriceExclTax decimal.Decimal
	Stock        int
	Image        string
	UpdatedAt    time.Time
}

func NewProduct(title string, category string, priceExclTax decimal.Decimal, stock int, image string) *Product {
	return &Product{
		Title:        title,
		Category:     category,
		PriceExclTax: priceExclTax,
		Stock:        stock,
		Image:        image,
		UpdatedAt:    time.Now(),
	}
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// PublicProduct is the shape of a product shown to unauthenticated callers.
// It carries availability only, never the stock count.
type PublicProduct struct {
	ID           ID
	Title        string
	Category     string
	PriceExclTax decimal.Decimal
	Image        string
	InStock      bool
	UpdatedAt    time.Time
}

func (p *Product) PublicView() PublicProduct {
	return PublicProduct{
		ID:           p.ID,
		Title:        p.Title,
		Category:     p.Category,
		PriceExclTax: p.PriceExclTax,
		Image:        p.Image,
		InStock:      p.InStock(),
		UpdatedAt:    p.UpdatedAt,
	}
}

func PublicViews(products []*Product) []PublicProduct {
	views := make([]PublicProduct, len(products))
	for i, product := range products {
		views[i] = product.PublicView()
	}
	return views
}

type ProductCreatedEvent struct {
	ProductID    ID              `json:"product_id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	PriceExclTax decimal.Decimal `json:"price_excl_tax"`
	Stock        int             `json:"stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (e *ProductCreatedEvent) GetName() string {
	return "product.created"
}

func (e *ProductCreatedEvent) GetEntityName() string {
	return "product"
}

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID:    p.ID,
		Title:        p.Title,
		Category:     p.Category,
		PriceExclTax: p.PriceExclTax,
		Stock:        p.Stock,
		UpdatedAt:    p.UpdatedAt,
	}
}

type ProductStockUpdatedEvent struct {
	ProductID ID        `json:"product_id"`
	Stock     int       `json:"stock"`
	InStock   bool      `json:"in_stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ProductStockUpdatedEvent) GetName() string {
	return "product.stock_updated"
}

func (e *ProductStockUpdatedEvent) GetEntityName() string {
	return "product"
}

func NewProductStockUpdatedEvent(p *Product) *ProductStockUpdatedEvent {
	return &ProductStockUpdatedEvent{
		ProductID: p.ID,
		Stock:     p.Stock,
		InStock:   p.InStock(),
		UpdatedAt: p.UpdatedAt,
	}
}
