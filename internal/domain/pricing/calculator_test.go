package pricing

import (
	"math"
	"testing"

	"lumera/config"
	"lumera/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func items(prices ...int64) []entity.CartItem {
	out := make([]entity.CartItem, 0, len(prices))
	for i, p := range prices {
		out = append(out, entity.CartItem{ID: string(rune('a' + i)), Price: p, Quantity: 1})
	}

	return out
}

func TestCalculator_Subtotal(t *testing.T) {
	calc := DefaultCalculator()

	cart := []entity.CartItem{
		{ID: "a", Price: 1299, Quantity: 2},
		{ID: "b", Price: 450, Quantity: 3},
	}

	assert.Equal(t, int64(1299*2+450*3), calc.Subtotal(cart))
	assert.Equal(t, int64(0), calc.Subtotal(nil))
}

func TestCalculator_ShippingCost(t *testing.T) {
	calc := DefaultCalculator()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{name: "empty cart still charged", subtotal: 0, want: 99},
		{name: "below threshold", subtotal: 998, want: 99},
		{name: "at threshold", subtotal: 999, want: 0},
		{name: "above threshold", subtotal: 2500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.ShippingCost(tt.subtotal))
		})
	}
}

func TestCalculator_NoteFee(t *testing.T) {
	calc := DefaultCalculator()

	assert.Equal(t, int64(49), calc.NoteFee("Happy birthday!"))
	assert.Equal(t, int64(49), calc.NoteFee("  x  "))
	assert.Equal(t, int64(0), calc.NoteFee(""))
	assert.Equal(t, int64(0), calc.NoteFee(" \t\n "))
}

func TestCalculator_Quote_CouponScenario(t *testing.T) {
	calc := DefaultCalculator()
	discount := entity.PercentOf(850, 10)

	got := calc.Quote(items(850), "", discount)

	assert.Equal(t, int64(850), got.Subtotal)
	assert.Equal(t, int64(99), got.Shipping)
	assert.Equal(t, entity.ShippingMethodStandard, got.ShippingMethod)
	assert.Equal(t, int64(0), got.NoteFee)
	assert.Equal(t, int64(85), got.Discount)
	assert.Equal(t, int64(864), got.Total)
}

func TestCalculator_Quote_FreeShippingWithNote(t *testing.T) {
	calc := DefaultCalculator()

	got := calc.Quote(items(1000, 500), "for mom", 0)

	assert.Equal(t, int64(1500), got.Subtotal)
	assert.Equal(t, int64(0), got.Shipping)
	assert.Equal(t, entity.ShippingMethodFree, got.ShippingMethod)
	assert.Equal(t, int64(49), got.NoteFee)
	assert.Equal(t, int64(1549), got.Total)
}

func TestCalculator_Quote_DiscountNeverDrivesTotalNegative(t *testing.T) {
	calc := DefaultCalculator()

	got := calc.Quote(items(100), "", 5000)

	assert.Equal(t, int64(100), got.Discount)
	assert.Equal(t, int64(99), got.Total)

	got = calc.Quote(nil, "", 10)
	assert.Equal(t, int64(0), got.Discount)
	assert.GreaterOrEqual(t, got.Total, int64(0))
}

func TestCalculator_Quote_HugeQuantityDoesNotWrap(t *testing.T) {
	calc := DefaultCalculator()
	lines := []entity.CartItem{{ID: "a", Price: 1999, Quantity: 1384197904480456600}}

	b := calc.Quote(lines, "gift", 0)

	assert.Equal(t, int64(math.MaxInt64), b.Subtotal)
	assert.Equal(t, int64(math.MaxInt64), b.Total)
	assert.Zero(t, b.Shipping)
	assert.Greater(t, b.Total, MaxPayableTotal)
}

func TestCalculator_Quote_NegativeDiscountIgnored(t *testing.T) {
	got := DefaultCalculator().Quote(items(500), "", -20)

	assert.Equal(t, int64(0), got.Discount)
	assert.Equal(t, int64(599), got.Total)
}

func TestNewCalculator_UsesConfig(t *testing.T) {
	cfg := &config.Config{Pricing: &config.PricingConfig{
		FreeShippingThreshold: 1500,
		StandardShippingCost:  120,
	}}

	calc := NewCalculator(cfg)

	assert.Equal(t, int64(1500), calc.FreeShippingThreshold)
	assert.Equal(t, int64(120), calc.StandardShippingCost)
	assert.Equal(t, DefaultOrderNoteFee, calc.OrderNoteFee)
	assert.Equal(t, DefaultTaxRatePercent, calc.TaxRatePercent)
}

func TestTaxIncluded(t *testing.T) {
	assert.Equal(t, int64(18), TaxIncluded(118, 18))
	assert.Equal(t, int64(132), TaxIncluded(864, 18))
	assert.Equal(t, int64(0), TaxIncluded(0, 18))
	assert.Equal(t, int64(0), TaxIncluded(100, 0))
}

func TestPaiseConversion(t *testing.T) {
	assert.Equal(t, int64(86400), ToPaise(864))
	assert.Equal(t, int64(864), FromPaise(86400))
	assert.Equal(t, int64(865), FromPaise(86450))
}
