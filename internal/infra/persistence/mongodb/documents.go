package mongodb

import (
	"time"

	"lumera/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID               primitive.ObjectID           `bson:"_id,omitempty"`
	Name             string                       `bson:"name"`
	Slug             string                       `bson:"slug"`
	PromoTag         string                       `bson:"promoTag,omitempty"`
	Tagline          string                       `bson:"tagline,omitempty"`
	Description      string                       `bson:"description,omitempty"`
	ShortDescription string                       `bson:"shortDescription,omitempty"`
	Fragrance        entity.ProductFragrance      `bson:"fragrance"`
	Specifications   entity.ProductSpecifications `bson:"specifications"`
	Pricing          entity.ProductPricing        `bson:"pricing"`
	Images           []entity.ProductImage        `bson:"images,omitempty"`
	Inventory        entity.ProductInventory      `bson:"inventory"`
	Collection       string                       `bson:"collection,omitempty"`
	Tags             []string                     `bson:"tags,omitempty"`
	Status           string                       `bson:"status"`
	Featured         bool                         `bson:"featured"`
	NewArrival       bool                         `bson:"newArrival"`
	BestSeller       bool                         `bson:"bestSeller"`
	CareInstructions string                       `bson:"careInstructions,omitempty"`
	SEO              entity.SEO                   `bson:"seo"`
	CreatedAt        time.Time                    `bson:"createdAt"`
	UpdatedAt        time.Time                    `bson:"updatedAt"`
}

func (d *productDocument) toEntity() *entity.Product {
	return &entity.Product{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Slug:             d.Slug,
		PromoTag:         d.PromoTag,
		Tagline:          d.Tagline,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Fragrance:        d.Fragrance,
		Specifications:   d.Specifications,
		Pricing:          d.Pricing,
		Images:           d.Images,
		Inventory:        d.Inventory,
		Collection:       d.Collection,
		Tags:             d.Tags,
		Status:           entity.ProductStatus(d.Status),
		Featured:         d.Featured,
		NewArrival:       d.NewArrival,
		BestSeller:       d.BestSeller,
		CareInstructions: d.CareInstructions,
		SEO:              d.SEO,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func fromProductEntity(p *entity.Product, id primitive.ObjectID) *productDocument {
	return &productDocument{
		ID:               id,
		Name:             p.Name,
		Slug:             p.Slug,
		PromoTag:         p.PromoTag,
		Tagline:          p.Tagline,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Fragrance:        p.Fragrance,
		Specifications:   p.Specifications,
		Pricing:          p.Pricing,
		Images:           p.Images,
		Inventory:        p.Inventory,
		Collection:       p.Collection,
		Tags:             p.Tags,
		Status:           string(p.Status),
		Featured:         p.Featured,
		NewArrival:       p.NewArrival,
		BestSeller:       p.BestSeller,
		CareInstructions: p.CareInstructions,
		SEO:              p.SEO,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type collectionDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Slug           string             `bson:"slug"`
	Tagline        string             `bson:"tagline,omitempty"`
	Description    string             `bson:"description,omitempty"`
	Visual         string             `bson:"visual,omitempty"`
	Mood           string             `bson:"mood,omitempty"`
	CollectionType string             `bson:"collectionType"`
	PriceTier      string             `bson:"priceTier,omitempty"`
	Status         string             `bson:"status"`
	Featured       bool               `bson:"featured"`
	DisplayOrder   int                `bson:"displayOrder"`
	SEO            entity.SEO         `bson:"seo"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d *collectionDocument) toEntity() *entity.Collection {
	return &entity.Collection{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Slug:           d.Slug,
		Tagline:        d.Tagline,
		Description:    d.Description,
		Visual:         d.Visual,
		Mood:           d.Mood,
		CollectionType: d.CollectionType,
		PriceTier:      d.PriceTier,
		Status:         entity.CollectionStatus(d.Status),
		Featured:       d.Featured,
		DisplayOrder:   d.DisplayOrder,
		SEO:            d.SEO,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func fromCollectionEntity(c *entity.Collection, id primitive.ObjectID) *collectionDocument {
	return &collectionDocument{
		ID:             id,
		Name:           c.Name,
		Slug:           c.Slug,
		Tagline:        c.Tagline,
		Description:    c.Description,
		Visual:         c.Visual,
		Mood:           c.Mood,
		CollectionType: c.CollectionType,
		PriceTier:      c.PriceTier,
		Status:         string(c.Status),
		Featured:       c.Featured,
		DisplayOrder:   c.DisplayOrder,
		SEO:            c.SEO,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type mediaDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Filename   string             `bson:"filename"`
	Alt        string             `bson:"alt,omitempty"`
	Caption    string             `bson:"caption,omitempty"`
	Category   string             `bson:"category,omitempty"`
	MimeType   string             `bson:"mimeType"`
	Size       int64              `bson:"size"`
	StorageKey string             `bson:"storageKey"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *mediaDocument) toEntity() *entity.Media {
	return &entity.Media{
		ID:         d.ID.Hex(),
		Filename:   d.Filename,
		Alt:        d.Alt,
		Caption:    d.Caption,
		Category:   d.Category,
		MimeType:   d.MimeType,
		Size:       d.Size,
		StorageKey: d.StorageKey,
		CreatedAt:  d.CreatedAt,
	}
}
