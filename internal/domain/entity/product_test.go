package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "midnight-oud-saffron", Slugify("  Midnight Oud & Saffron! "))
	assert.Equal(t, "rose-2", Slugify("Rose--2"))
	assert.Empty(t, Slugify("***"))
}

func TestProduct_IsPurchasable(t *testing.T) {
	p := &Product{Status: ProductStatusActive}
	assert.True(t, p.IsPurchasable())

	p.Inventory.TrackInventory = true
	assert.False(t, p.IsPurchasable(), "tracked with no stock")

	p.Inventory.Quantity = 3
	assert.True(t, p.IsPurchasable())

	p.Status = ProductStatusDraft
	assert.False(t, p.IsPurchasable())
}

func TestProduct_ToCartItem(t *testing.T) {
	compare := int64(1200)
	p := &Product{
		ID:     "665f1c",
		Name:   "Velvet Ember",
		Slug:   "velvet-ember",
		Images: []ProductImage{{MediaID: "m1"}, {MediaID: "m2"}},
	}
	p.Pricing.Price = 999
	p.Pricing.CompareAtPrice = &compare

	item := p.ToCartItem(2, "Signature")

	assert.Equal(t, "665f1c", item.ID)
	assert.Equal(t, int64(999), item.Price)
	assert.Equal(t, &compare, item.CompareAtPrice)
	assert.Equal(t, "m1", item.Image)
	assert.Equal(t, int64(1998), item.LineTotal())
	assert.Equal(t, "Signature", item.Collection)
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](nil, 25, 2, 10)

	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
	assert.NotNil(t, page.Docs)

	last := NewPage([]int{1}, 21, 3, 10)
	assert.False(t, last.HasNextPage)
}

func TestCollection_ApplyDefaults(t *testing.T) {
	c := &Collection{Name: "Monsoon Edit"}
	c.ApplyDefaults()

	assert.Equal(t, "monsoon-edit", c.Slug)
	assert.Equal(t, DefaultCollectionType, c.CollectionType)
	assert.Equal(t, CollectionStatusDraft, c.Status)
}
