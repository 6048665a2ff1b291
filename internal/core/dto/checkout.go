package dto

import "github.com/rafaelleal24/storefront/internal/core/domain"

// CheckoutItem deliberately has no price: unit prices are resolved server side.
type CheckoutItem struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

func (r *CheckoutRequest) Lines() []domain.CartLine {
	lines := make([]domain.CartLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}
