package port

import (
	"context"

	"github.com/rafaelleal24/storefront/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type PaymentPort interface {
	Authorize(ctx context.Context, request *domain.PaymentRequest) (*domain.PaymentAuthorization, error)
}
