package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewProduct(t *testing.T) {
	before := time.Now()
	p := NewProduct("Widget", "tools", decimal.RequireFromString("49.99"), 25, "/img/widget.png")
	after := time.Now()

	if p.Title != "Widget" {
		t.Fatalf("expected title 'Widget', got %q", p.Title)
	}
	if p.Category != "tools" {
		t.Fatalf("expected category 'tools', got %q", p.Category)
	}
	if !p.PriceExclTax.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("expected price 49.99, got %s", p.PriceExclTax)
	}
	if p.Stock != 25 {
		t.Fatalf("expected stock 25, got %d", p.Stock)
	}
	if p.ID != "" {
		t.Fatalf("expected empty ID, got %q", p.ID)
	}
	if p.UpdatedAt.Before(before) || p.UpdatedAt.After(after) {
		t.Fatalf("UpdatedAt %v not in expected range [%v, %v]", p.UpdatedAt, before, after)
	}
}

func TestProduct_InStock(t *testing.T) {
	tests := []struct {
		stock int
		want  bool
	}{
		{0, false},
		{1, true},
		{250, true},
	}
	for _, tt := range tests {
		p := &Product{Stock: tt.stock}
		if got := p.InStock(); got != tt.want {
			t.Errorf("stock %d: InStock() = %v, want %v", tt.stock, got, tt.want)
		}
	}
}

func TestProduct_PublicView(t *testing.T) {
	now := time.Now()
	p := &Product{
		ID:           "aabbccddee112233aabbccdd",
		Title:        "Lamp",
		Category:     "home",
		PriceExclTax: decimal.NewFromInt(100),
		Stock:        2,
		Image:        "lamp.jpg",
		UpdatedAt:    now,
	}

	view := p.PublicView()
	if view.ID != p.ID || view.Title != p.Title || view.Category != p.Category || view.Image != p.Image {
		t.Fatalf("public view fields do not match product: %+v", view)
	}
	if !view.PriceExclTax.Equal(p.PriceExclTax) {
		t.Fatalf("expected price %s, got %s", p.PriceExclTax, view.PriceExclTax)
	}
	if !view.InStock {
		t.Fatal("expected in stock")
	}
	if !view.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated at %v, got %v", now, view.UpdatedAt)
	}

	p.Stock = 0
	if p.PublicView().InStock {
		t.Fatal("expected out of stock for zero stock")
	}
}

func TestPublicProduct_HasNoStockField(t *testing.T) {
	typ := reflect.TypeOf(PublicProduct{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Name == "Stock" {
			t.Fatal("public product must not carry a Stock field")
		}
	}

	data, err := json.Marshal((&Product{Stock: 42}).PublicView())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["Stock"]; ok {
		t.Fatal("serialized public view leaked Stock")
	}
}

func TestPublicViews(t *testing.T) {
	products := []*Product{
		{ID: "1", PriceExclTax: decimal.NewFromInt(100), Stock: 2},
		{ID: "2", PriceExclTax: decimal.NewFromInt(50), Stock: 0},
	}

	views := PublicViews(products)
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if !views[0].InStock {
		t.Fatal("expected product 1 in stock")
	}
	if views[1].InStock {
		t.Fatal("expected product 2 out of stock")
	}
}

func TestProductEvents(t *testing.T) {
	p := &Product{ID: "p1", Title: "Lamp", Stock: 3, PriceExclTax: decimal.NewFromInt(10), UpdatedAt: time.Now()}

	created := NewProductCreatedEvent(p)
	if created.GetName() != "product.created" || created.GetEntityName() != "product" {
		t.Fatalf("unexpected event naming: %s/%s", created.GetEntityName(), created.GetName())
	}
	if created.ProductID != "p1" || created.Stock != 3 {
		t.Fatalf("unexpected created event: %+v", created)
	}

	updated := NewProductStockUpdatedEvent(p)
	if updated.GetName() != "product.stock_updated" || updated.GetEntityName() != "product" {
		t.Fatalf("unexpected event naming: %s/%s", updated.GetEntityName(), updated.GetName())
	}
	if !updated.InStock || updated.Stock != 3 {
		t.Fatalf("unexpected stock event: %+v", updated)
	}
}
