package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

// StripeGateway creates PaymentIntents through stripe-go. The backend points
// at the configured base URL.
type StripeGateway struct {
	intents paymentintent.Client
}

func NewStripeGateway(cfg config.PaymentConfig) *StripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(strings.TrimRight(cfg.BaseURL, "/")),
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	return &StripeGateway{
		intents: paymentintent.Client{B: backend, Key: cfg.SecretKey},
	}
}

func paymentIntentParams(ctx context.Context, request *domain.PaymentRequest) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(request.Amount)),
		Currency: stripe.String(strings.ToLower(request.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if request.IdempotencyKey != "" {
		params.SetIdempotencyKey(request.IdempotencyKey)
	}
	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}
	return params
}

func (g *StripeGateway) Authorize(ctx context.Context, request *domain.PaymentRequest) (*domain.PaymentAuthorization, error) {
	intent, err := g.intents.New(paymentIntentParams(ctx, request))
	if err != nil {
		return nil, g.parseError(ctx, err)
	}

	return &domain.PaymentAuthorization{
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

// parseError only passes the processor message through for card errors,
// which are written to be shown to the customer.
func (g *StripeGateway) parseError(ctx context.Context, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("failed to communicate with payment processor: %w", err)
	}

	logger.Warn(ctx, "payment: processor rejected request", map[string]any{
		"http.status_code": stripeErr.HTTPStatusCode,
		"error_type":       string(stripeErr.Type),
		"error_code":       string(stripeErr.Code),
		"decline_code":     string(stripeErr.DeclineCode),
		"request_id":       stripeErr.RequestID,
	})

	if stripeErr.Type == stripe.ErrorTypeCard && stripeErr.Msg != "" {
		return serviceerrors.NewUpstreamPaymentError(stripeErr.Msg)
	}
	return fmt.Errorf("payment processor returned status %d: %s", stripeErr.HTTPStatusCode, stripeErr.Type)
}
