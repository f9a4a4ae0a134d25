package entity

import "strings"

// ShippingAddress is what the customer types at checkout.
type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"notblank"`
	Phone        string `json:"phone" validate:"required,in_mobile"`
	Email        string `json:"email" validate:"required,simple_email"`
	AddressLine1 string `json:"addressLine1" validate:"notblank"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"notblank"`
	State        string `json:"state" validate:"notblank"`
	Pincode      string `json:"pincode" validate:"required,in_pincode"`
}

// Trimmed returns the address with surrounding whitespace removed from every field.
func (a ShippingAddress) Trimmed() ShippingAddress {
	return ShippingAddress{
		FullName:     strings.TrimSpace(a.FullName),
		Phone:        strings.TrimSpace(a.Phone),
		Email:        strings.TrimSpace(a.Email),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		Pincode:      strings.TrimSpace(a.Pincode),
	}
}

// SplitName splits a full name into first and last name on the first space.
func (a ShippingAddress) SplitName() (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(a.FullName), " ")

	return first, strings.TrimSpace(last)
}

// ToOrderAddress snapshots the address for an order, mapping the state to its code.
func (a ShippingAddress) ToOrderAddress() OrderAddress {
	a = a.Trimmed()

	return OrderAddress{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        StateCode(a.State),
		Pincode:      a.Pincode,
		Country:      "India",
	}
}

var stateCodes = map[string]string{
	"Delhi":             "DL",
	"Maharashtra":       "MH",
	"Karnataka":         "KA",
	"Tamil Nadu":        "TN",
	"Telangana":         "TG",
	"Gujarat":           "GJ",
	"Rajasthan":         "RJ",
	"Uttar Pradesh":     "UP",
	"West Bengal":       "WB",
	"Madhya Pradesh":    "MP",
	"Bihar":             "BR",
	"Punjab":            "PB",
	"Haryana":           "HR",
	"Kerala":            "KL",
	"Andhra Pradesh":    "AP",
	"Odisha":            "OR",
	"Assam":             "AS",
	"Jharkhand":         "JH",
	"Chhattisgarh":      "CT",
	"Uttarakhand":       "UK",
	"Goa":               "GA",
	"Tripura":           "TR",
	"Meghalaya":         "ML",
	"Manipur":           "MN",
	"Nagaland":          "NL",
	"Himachal Pradesh":  "HP",
	"Arunachal Pradesh": "AR",
	"Mizoram":           "MZ",
	"Sikkim":            "SK",
}

// StateCode maps an Indian state name to its two-letter code. Unknown values,
// including codes already, pass through unchanged; empty defaults to DL.
func StateCode(state string) string {
	state = strings.TrimSpace(state)
	if state == "" {
		return "DL"
	}

	if code, ok := stateCodes[state]; ok {
		return code
	}

	return state
}
