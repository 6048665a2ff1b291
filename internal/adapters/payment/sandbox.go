package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

const SandboxStatusAuthorized = "authorized"

// SandboxGateway authorizes every positive amount locally. Requests sharing
// an idempotency key get the same authorization back.
type SandboxGateway struct {
	mu             sync.Mutex
	authorizations map[string]*domain.PaymentAuthorization
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{authorizations: make(map[string]*domain.PaymentAuthorization)}
}

func (g *SandboxGateway) Authorize(ctx context.Context, request *domain.PaymentRequest) (*domain.PaymentAuthorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if request.Amount <= 0 {
		return nil, serviceerrors.NewUpstreamPaymentError("amount must be greater than zero")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if request.IdempotencyKey != "" {
		if existing, ok := g.authorizations[request.IdempotencyKey]; ok {
			return existing, nil
		}
	}

	reference := "sandbox_" + uuid.NewString()
	authorization := &domain.PaymentAuthorization{
		Reference:    reference,
		ClientSecret: reference + "_secret",
		Status:       SandboxStatusAuthorized,
	}
	if request.IdempotencyKey != "" {
		g.authorizations[request.IdempotencyKey] = authorization
	}
	return authorization, nil
}
