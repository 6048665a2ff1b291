package port

import (
	"context"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	// GetAll returns every product, most recently updated first.
	GetAll(ctx context.Context) ([]*domain.Product, error)
	// UpdateStock overwrites the stock of a product and returns it as stored.
	UpdateStock(ctx context.Context, id domain.ID, stock int) (*domain.Product, error)
	// GetPrices resolves unit prices for the ids that exist. Unknown ids are omitted.
	GetPrices(ctx context.Context, ids []domain.ID) (map[domain.ID]decimal.Decimal, error)
}
