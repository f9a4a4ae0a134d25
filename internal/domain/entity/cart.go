package entity

import (
	"math"
	"time"
)

// MaxItemQuantity is the most units a single cart or order line may hold.
const MaxItemQuantity = 99

// CartItem is one line in a shopping cart. Items are unique by ID.
type CartItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Price          int64  `json:"price"`
	CompareAtPrice *int64 `json:"compareAtPrice,omitempty"`
	Image          string `json:"image"`
	Quantity       int    `json:"quantity" validate:"min=1,max=99"`
	Collection     string `json:"collection,omitempty"`

	// Configuration is set for configurator-built candles.
	Configuration *CandleConfigurationSnapshot `json:"configuration,omitempty"`
}

// LineTotal returns price × quantity, saturating at math.MaxInt64.
func (i CartItem) LineTotal() int64 {
	return lineTotal(i.Price, i.Quantity)
}

func lineTotal(price int64, quantity int) int64 {
	if price <= 0 || quantity <= 0 {
		return 0
	}
	if price > math.MaxInt64/int64(quantity) {
		return math.MaxInt64
	}

	return price * int64(quantity)
}

// addSaturating adds two non-negative amounts without wrapping.
func addSaturating(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}

	return a + b
}

// CandleConfigurationSnapshot records what a custom candle was built from.
type CandleConfigurationSnapshot struct {
	Vessel           string   `json:"vessel"`
	FragranceFamily  string   `json:"fragranceFamily"`
	FragranceMode    string   `json:"fragranceMode"`
	PrimaryScent     string   `json:"primaryScent"`
	WaxType          string   `json:"waxType"`
	WaxColor         string   `json:"waxColor"`
	WickType         string   `json:"wickType"`
	LabelText        string   `json:"labelText"`
	FoilFinish       string   `json:"foilFinish"`
	FinishingTouches []string `json:"finishingTouches,omitempty"`
	Packaging        string   `json:"packaging,omitempty"`
}

// Cart is a server-held shopping cart identified by an opaque ID.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Add merges item into the cart: an existing line with the same ID has its
// quantity increased, otherwise the item is appended. Quantities are kept
// within 1..MaxItemQuantity.
func (c *Cart) Add(item CartItem) {
	item.Quantity = clampQuantity(item.Quantity)

	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity = clampQuantity(c.Items[i].Quantity + item.Quantity)

			return
		}
	}

	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// below 1 removes the line. It reports whether the line existed.
func (c *Cart) UpdateQuantity(id string, quantity int) bool {
	if quantity < 1 {
		return c.Remove(id)
	}

	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = clampQuantity(quantity)

			return true
		}
	}

	return false
}

// Remove deletes the line with the given ID and reports whether it existed.
func (c *Cart) Remove(id string) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return true
		}
	}

	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Subtotal returns Σ price × quantity.
func (c *Cart) Subtotal() int64 {
	return SubtotalOf(c.Items)
}

// Count returns the number of units in the cart.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SubtotalOf returns Σ price × quantity over items. The sum saturates at
// math.MaxInt64 instead of wrapping.
func SubtotalOf(items []CartItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal = addSaturating(subtotal, item.LineTotal())
	}

	return subtotal
}

// CheckQuantities reports the index of the first line whose quantity is
// outside 1..MaxItemQuantity, or -1.
func CheckQuantities(items []CartItem) int {
	for i, item := range items {
		if item.Quantity < 1 || item.Quantity > MaxItemQuantity {
			return i
		}
	}

	return -1
}

func clampQuantity(quantity int) int {
	return min(max(quantity, 1), MaxItemQuantity)
}
