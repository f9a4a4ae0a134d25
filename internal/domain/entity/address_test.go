package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCode(t *testing.T) {
	tests := map[string]string{
		"Maharashtra": "MH",
		" Tamil Nadu": "TN",
		"":            "DL",
		"KA":          "KA",
		"Atlantis":    "Atlantis",
	}

	for input, want := range tests {
		assert.Equal(t, want, StateCode(input), "input %q", input)
	}
}

func TestShippingAddress_SplitName(t *testing.T) {
	first, last := ShippingAddress{FullName: "Priya  Raman Iyer"}.SplitName()
	assert.Equal(t, "Priya", first)
	assert.Equal(t, "Raman Iyer", last)

	first, last = ShippingAddress{FullName: "Priya"}.SplitName()
	assert.Equal(t, "Priya", first)
	assert.Empty(t, last)
}

func TestShippingAddress_ToOrderAddress(t *testing.T) {
	addr := ShippingAddress{
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
	}.ToOrderAddress()

	assert.Equal(t, "KA", addr.State)
	assert.Equal(t, "India", addr.Country)
	assert.Equal(t, "560001", addr.Pincode)
}

func TestShippingAddress_Trimmed(t *testing.T) {
	addr := ShippingAddress{
		FullName: "  Asha Rao ",
		Phone:    " 9876543210",
		City:     "Bengaluru\t",
		State:    " Karnataka ",
		Pincode:  "560001 ",
	}

	trimmed := addr.Trimmed()
	assert.Equal(t, "Asha Rao", trimmed.FullName)
	assert.Equal(t, "9876543210", trimmed.Phone)
	assert.Equal(t, "Bengaluru", trimmed.City)
	assert.Equal(t, "560001", trimmed.Pincode)

	order := addr.ToOrderAddress()
	assert.Equal(t, "KA", order.State)
	assert.Equal(t, "560001", order.Pincode)
}
