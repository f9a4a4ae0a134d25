package entity

import "time"

// CollectionStatus controls storefront visibility of a collection.
type CollectionStatus string

const (
	CollectionStatusDraft      CollectionStatus = "draft"
	CollectionStatusActive     CollectionStatus = "active"
	CollectionStatusComingSoon CollectionStatus = "coming-soon"
	CollectionStatusArchived   CollectionStatus = "archived"
)

// IsValid checks if the CollectionStatus is a valid value.
func (s CollectionStatus) IsValid() bool {
	switch s {
	case CollectionStatusDraft, CollectionStatusActive, CollectionStatusComingSoon, CollectionStatusArchived:
		return true
	default:
		return false
	}
}

// DefaultCollectionType is used when none is given.
const DefaultCollectionType = "signature"

// Collection groups products under a theme.
type Collection struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Tagline        string           `json:"tagline,omitempty"`
	Description    string           `json:"description,omitempty"`
	Visual         string           `json:"visual,omitempty"` // Media ID.
	Mood           string           `json:"mood,omitempty"`
	CollectionType string           `json:"collectionType"`
	PriceTier      string           `json:"priceTier,omitempty"`
	Status         CollectionStatus `json:"status"`
	Featured       bool             `json:"featured"`
	DisplayOrder   int              `json:"displayOrder"`
	SEO            SEO              `json:"seo"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ApplyDefaults fills the slug, type and status left empty by the author.
func (c *Collection) ApplyDefaults() {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	} else {
		c.Slug = Slugify(c.Slug)
	}

	if c.CollectionType == "" {
		c.CollectionType = DefaultCollectionType
	}

	if c.Status == "" {
		c.Status = CollectionStatusDraft
	}
}
