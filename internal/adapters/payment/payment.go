package payment

import (
	"fmt"

	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/core/port"
)

const (
	ProviderSandbox = "sandbox"
	ProviderStripe  = "stripe"
)

// NewGateway builds the payment processor client selected by cfg.Provider.
func NewGateway(cfg config.PaymentConfig) (port.PaymentPort, error) {
	switch cfg.Provider {
	case ProviderStripe:
		if cfg.SecretKey == "" {
			return nil, fmt.Errorf("payment provider %q requires PAYMENT_SECRET_KEY", cfg.Provider)
		}
		return NewStripeGateway(cfg), nil
	case ProviderSandbox, "":
		return NewSandboxGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
