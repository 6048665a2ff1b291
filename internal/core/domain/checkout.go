package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one requested (product, quantity) pair. It has no price field:
// prices always come from the catalog.
type CartLine struct {
	ProductID ID
	Quantity  int
}

// EffectiveQuantity defaults an absent (zero) quantity to one.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity == 0 {
		return 1
	}
	return l.Quantity
}

// DistinctProductIDs returns the product ids of lines in first-seen order.
func DistinctProductIDs(lines []CartLine) []ID {
	seen := make(map[ID]struct{}, len(lines))
	ids := make([]ID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// CalculateTotal sums price*quantity over lines in major units. Lines whose
// product has no price contribute nothing; duplicate lines are priced separately.
func CalculateTotal(lines []CartLine, prices map[ID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		price, ok := prices[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.EffectiveQuantity()))))
	}
	return total
}

type CheckoutQuote struct {
	Total    decimal.Decimal
	Amount   Amount
	Currency string
	VATRate  decimal.Decimal
}

func NewCheckoutQuote(total decimal.Decimal, currency string, vatRate decimal.Decimal) (*CheckoutQuote, error) {
	amount, err := NewAmountFromDecimal(total)
	if err != nil {
		return nil, err
	}
	return &CheckoutQuote{
		Total:    total,
		Amount:   amount,
		Currency: currency,
		VATRate:  vatRate,
	}, nil
}

type PaymentRequest struct {
	Amount         Amount
	Currency       string
	IdempotencyKey string
	Metadata       map[string]string
}

type PaymentAuthorization struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret,omitempty"`
	Status       string `json:"status"`
}

type CheckoutResult struct {
	Total        decimal.Decimal `json:"total"`
	Amount       Amount          `json:"amount"`
	Currency     string          `json:"currency"`
	Reference    string          `json:"reference"`
	ClientSecret string          `json:"client_secret,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewCheckoutResult(quote *CheckoutQuote, authorization *PaymentAuthorization) *CheckoutResult {
	return &CheckoutResult{
		Total:        quote.Total,
		Amount:       quote.Amount,
		Currency:     quote.Currency,
		Reference:    authorization.Reference,
		ClientSecret: authorization.ClientSecret,
		Status:       authorization.Status,
		CreatedAt:    time.Now(),
	}
}

type CheckoutAuthorizedEvent struct {
	Reference string    `json:"reference"`
	Amount    Amount    `json:"amount"`
	Currency  string    `json:"currency"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *CheckoutAuthorizedEvent) GetName() string {
	return "checkout.authorized"
}

func (e *CheckoutAuthorizedEvent) GetEntityName() string {
	return "checkout"
}

func NewCheckoutAuthorizedEvent(result *CheckoutResult, lines int) *CheckoutAuthorizedEvent {
	return &CheckoutAuthorizedEvent{
		Reference: result.Reference,
		Amount:    result.Amount,
		Currency:  result.Currency,
		Lines:     lines,
		CreatedAt: result.CreatedAt,
	}
}
