package entity

import (
	"regexp"
	"strings"
	"time"
)

// ProductStatus controls storefront visibility.
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusDraft || s == ProductStatusActive || s == ProductStatusArchived
}

// Product is a sellable candle in the catalog.
type Product struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Slug             string                `json:"slug"`
	PromoTag         string                `json:"promoTag,omitempty"`
	Tagline          string                `json:"tagline,omitempty"`
	Description      string                `json:"description,omitempty"`
	ShortDescription string                `json:"shortDescription,omitempty"`
	Fragrance        ProductFragrance      `json:"fragrance"`
	Specifications   ProductSpecifications `json:"specifications"`
	Pricing          ProductPricing        `json:"pricing"`
	Images           []ProductImage        `json:"images,omitempty"`
	Inventory        ProductInventory      `json:"inventory"`
	Collection       string                `json:"collection,omitempty"` // Collection ID.
	Tags             []string              `json:"tags,omitempty"`
	Status           ProductStatus         `json:"status"`
	Featured         bool                  `json:"featured"`
	NewArrival       bool                  `json:"newArrival"`
	BestSeller       bool                  `json:"bestSeller"`
	CareInstructions string                `json:"careInstructions,omitempty"`
	SEO              SEO                   `json:"seo"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

type ProductFragrance struct {
	TopNotes   []string `json:"topNotes,omitempty"`
	HeartNotes []string `json:"heartNotes,omitempty"`
	BaseNotes  []string `json:"baseNotes,omitempty"`
	Family     string   `json:"family,omitempty"`
	Intensity  string   `json:"intensity,omitempty"`
}

type ProductSpecifications struct {
	WaxType           string `json:"waxType,omitempty"`
	WickType          string `json:"wickType,omitempty"`
	BurnTime          string `json:"burnTime,omitempty"`
	Weight            string `json:"weight,omitempty"`
	Dimensions        string `json:"dimensions,omitempty"`
	ContainerMaterial string `json:"containerMaterial,omitempty"`
	IsHandmade        bool   `json:"isHandmade"`
	IsVegan           bool   `json:"isVegan"`
	IsCrueltyFree     bool   `json:"isCrueltyFree"`
}

type ProductPricing struct {
	Price          int64  `json:"price"`
	CompareAtPrice *int64 `json:"compareAtPrice,omitempty"`
	CostPrice      *int64 `json:"costPrice,omitempty"`
}

type ProductImage struct {
	MediaID string `json:"mediaId"`
	Alt     string `json:"alt,omitempty"`
}

type ProductInventory struct {
	SKU               string `json:"sku,omitempty"`
	Barcode           string `json:"barcode,omitempty"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	TrackInventory    bool   `json:"trackInventory"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
}

// IsPurchasable reports whether the product can be added to a cart.
func (p *Product) IsPurchasable() bool {
	if p.Status != ProductStatusActive {
		return false
	}

	return !p.Inventory.TrackInventory || p.Inventory.Quantity > 0
}

// PrimaryImage returns the first image's media id, or empty.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0].MediaID
}

// ToCartItem builds a cart line from the catalog record.
func (p *Product) ToCartItem(quantity int, collectionName string) CartItem {
	return CartItem{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Price:          p.Pricing.Price,
		CompareAtPrice: p.Pricing.CompareAtPrice,
		Image:          p.PrimaryImage(),
		Quantity:       quantity,
		Collection:     collectionName,
	}
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Featured *bool
	Status   ProductStatus // Empty means any status.
	Slug     string
	Page     int
	Limit    int
}

// Page is a paginated result.
type Page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage assembles pagination metadata around docs.
func NewPage[T any](docs []T, total int64, page, limit int) *Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if docs == nil {
		docs = []T{}
	}

	return &Page[T]{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of non-alphanumerics to a dash.
func Slugify(s string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")

	return strings.Trim(slug, "-")
}
