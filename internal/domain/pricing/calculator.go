// Package pricing turns cart contents and checkout choices into a payable total.
package pricing

import (
	"math"
	"strings"

	"lumera/config"
	"lumera/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const (
	DefaultFreeShippingThreshold int64 = 999
	DefaultStandardShippingCost  int64 = 99
	DefaultOrderNoteFee          int64 = 49
	DefaultTaxRatePercent        int64 = 18

	// MaxPayableTotal is the largest order total, in rupees, sent to the gateway.
	MaxPayableTotal int64 = 10_000_000
)

// Calculator holds the fee schedule. All amounts are whole rupees.
type Calculator struct {
	FreeShippingThreshold int64
	StandardShippingCost  int64
	OrderNoteFee          int64
	TaxRatePercent        int64
}

// Breakdown is the itemised result of pricing a checkout.
type Breakdown struct {
	Subtotal       int64                 `json:"subtotal"`
	Shipping       int64                 `json:"shippingCost"`
	ShippingMethod entity.ShippingMethod `json:"shippingMethod"`
	NoteFee        int64                 `json:"orderNoteFee"`
	CouponCode     string                `json:"couponCode,omitempty"`
	Discount       int64                 `json:"couponDiscount"`
	Tax            int64                 `json:"taxIncluded"`
	Total          int64                 `json:"total"`
}

// NewCalculator builds the calculator from config, falling back to the standard schedule.
func NewCalculator(cfg *config.Config) *Calculator {
	calc := DefaultCalculator()
	if cfg == nil || cfg.Pricing == nil {
		return calc
	}

	if cfg.Pricing.FreeShippingThreshold > 0 {
		calc.FreeShippingThreshold = cfg.Pricing.FreeShippingThreshold
	}
	if cfg.Pricing.StandardShippingCost > 0 {
		calc.StandardShippingCost = cfg.Pricing.StandardShippingCost
	}
	if cfg.Pricing.OrderNoteFee > 0 {
		calc.OrderNoteFee = cfg.Pricing.OrderNoteFee
	}
	if cfg.Pricing.TaxRatePercent > 0 {
		calc.TaxRatePercent = cfg.Pricing.TaxRatePercent
	}

	return calc
}

// DefaultCalculator returns the storefront's standard fee schedule.
func DefaultCalculator() *Calculator {
	return &Calculator{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		StandardShippingCost:  DefaultStandardShippingCost,
		OrderNoteFee:          DefaultOrderNoteFee,
		TaxRatePercent:        DefaultTaxRatePercent,
	}
}

// Subtotal returns Σ price × quantity.
func (c *Calculator) Subtotal(items []entity.CartItem) int64 {
	return entity.SubtotalOf(items)
}

// ShippingCost is free at or above the threshold and the standard cost below
// it, including for an empty cart.
func (c *Calculator) ShippingCost(subtotal int64) int64 {
	if subtotal >= c.FreeShippingThreshold {
		return 0
	}

	return c.StandardShippingCost
}

// NoteFee is charged for any gift note that is not blank.
func (c *Calculator) NoteFee(note string) int64 {
	if strings.TrimSpace(note) == "" {
		return 0
	}

	return c.OrderNoteFee
}

// Quote prices items with the given note and coupon discount.
// The discount is capped at the subtotal and the total never drops below zero.
func (c *Calculator) Quote(items []entity.CartItem, note string, discount int64) Breakdown {
	subtotal := c.Subtotal(items)
	shipping := c.ShippingCost(subtotal)
	noteFee := c.NoteFee(note)

	discount = min(max(discount, 0), subtotal)

	total := max(addFees(subtotal, shipping+noteFee)-discount, 0)

	method := entity.ShippingMethodStandard
	if shipping == 0 {
		method = entity.ShippingMethodFree
	}

	return Breakdown{
		Subtotal:       subtotal,
		Shipping:       shipping,
		ShippingMethod: method,
		NoteFee:        noteFee,
		Discount:       discount,
		Tax:            TaxIncluded(total, c.TaxRatePercent),
		Total:          total,
	}
}

func addFees(subtotal, fees int64) int64 {
	if subtotal > math.MaxInt64-fees {
		return math.MaxInt64
	}

	return subtotal + fees
}

// TaxIncluded returns the tax portion of a tax-inclusive amount, rounded half-up.
func TaxIncluded(amount, ratePercent int64) int64 {
	if amount <= 0 || ratePercent <= 0 {
		return 0
	}

	gross := decimal.NewFromInt(amount)
	rate := decimal.NewFromInt(ratePercent)
	net := gross.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(100).Add(rate))

	return gross.Sub(net).Round(0).IntPart()
}

// ToPaise converts rupees to the gateway's minor unit.
func ToPaise(rupees int64) int64 {
	return decimal.NewFromInt(rupees).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromPaise converts a gateway minor-unit amount to whole rupees, rounding half-up.
func FromPaise(paise int64) int64 {
	return decimal.New(paise, -2).Round(0).IntPart()
}
