package document

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelleal24/storefront/internal/core/domain"
)

type ProductDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Category     string               `bson:"category"`
	PriceExclTax primitive.Decimal128 `bson:"price_excl_tax"`
	Stock        int                  `bson:"stock"`
	Image        string               `bson:"image"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (doc ProductDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() (*domain.Product, error) {
	price, err := FromDecimal128(doc.PriceExclTax)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", doc.ID.Hex(), err)
	}

	return &domain.Product{
		ID:           domain.ID(doc.ID.Hex()),
		Title:        doc.Title,
		Category:     doc.Category,
		PriceExclTax: price,
		Stock:        doc.Stock,
		Image:        doc.Image,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func ToProductDocument(p *domain.Product) (*ProductDocument, error) {
	price, err := ToDecimal128(p.PriceExclTax)
	if err != nil {
		return nil, err
	}

	return &ProductDocument{
		Title:        p.Title,
		Category:     p.Category,
		PriceExclTax: price,
		Stock:        p.Stock,
		Image:        p.Image,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}
