package configurator

import (
	"strings"
	"testing"
	"time"

	"lumera/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Price_Default(t *testing.T) {
	cfg := Default()

	// 1999 base + warm-grey 100 + gold foil 100
	assert.Equal(t, int64(2199), cfg.Price())
}

func TestConfiguration_Price_FullBuild(t *testing.T) {
	cfg := Configuration{
		Vessel:           "hammered-brass",
		FragranceFamily:  "woody",
		FragranceMode:    ModeSingle,
		PrimaryScent:     "sacred-oud",
		WaxType:          "beeswax",
		WaxColor:         "rose-mist",
		WickType:         "dual-wick",
		FoilFinish:       "rose-gold",
		FinishingTouches: []string{"gold-metal-lid", "wax-seal"},
		Packaging:        "burgundy-keepsake",
	}

	want := BasePrice + 600 + 500 + 200 + 150 + 200 + 100 + 350 + 150 + 500
	assert.Equal(t, want, cfg.Price())
}

func TestConfiguration_Price_BlendPricesEveryScent(t *testing.T) {
	cfg := Default()
	cfg.FragranceMode = ModeBlend
	cfg.PrimaryScent = "bulgarian-rose,sacred-oud, vanilla-bean"

	assert.Equal(t, []string{"bulgarian-rose", "sacred-oud", "vanilla-bean"}, cfg.Scents())
	assert.Equal(t, int64(2199+300+500+280), cfg.Price())
}

func TestConfiguration_Price_MonotonicWithNonNegativeDeltas(t *testing.T) {
	cfg := Configuration{}
	prev := cfg.Price()
	assert.Equal(t, BasePrice, prev)

	steps := []func(c *Configuration){
		func(c *Configuration) { c.Vessel = "obsidian-matte" },
		func(c *Configuration) { c.PrimaryScent = "jasmine-night" },
		func(c *Configuration) { c.WaxType = "coconut-luxe" },
		func(c *Configuration) { c.WaxColor = "champagne-cream" },
		func(c *Configuration) { c.WickType = "wooden-crackle" },
		func(c *Configuration) { c.FoilFinish = "matte-black" },
		func(c *Configuration) { c.FinishingTouches = append(c.FinishingTouches, "handwritten-note") },
		func(c *Configuration) { c.FinishingTouches = append(c.FinishingTouches, "engraved-wooden-lid") },
		func(c *Configuration) { c.Packaging = "silk-potli" },
	}

	for i, apply := range steps {
		apply(&cfg)
		cur := cfg.Price()
		assert.GreaterOrEqual(t, cur, prev, "step %d decreased the price", i)
		prev = cur
	}
}

func TestConfiguration_Price_NegativeDeltaDecreases(t *testing.T) {
	cfg := Default()
	cfg.Packaging = "ivory-box"
	withBox := cfg.Price()

	cfg.Packaging = "no-packaging"
	assert.Equal(t, withBox-150, cfg.Price())
}

func TestConfiguration_CanAddToBag(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.CanAddToBag(), "default has no scent")

	cfg.PrimaryScent = "sea-salt"
	assert.True(t, cfg.CanAddToBag())

	cfg.WickType = ""
	assert.False(t, cfg.CanAddToBag())
}

func TestConfiguration_Validate(t *testing.T) {
	cfg := Default()
	cfg.PrimaryScent = "morning-dew"
	assert.Empty(t, cfg.Validate())

	cfg.Vessel = "paper-cup"
	cfg.PrimaryScent = "morning-dew,sea-salt"
	cfg.LabelText = strings.Repeat("x", MaxLabelLength+1)
	cfg.FinishingTouches = []string{"wax-seal", "wax-seal"}

	problems := cfg.Validate()
	assert.Contains(t, problems, "vessel")
	assert.Equal(t, "multiple scents require blend mode", problems["primaryScent"])
	assert.Contains(t, problems, "labelText")
	assert.Contains(t, problems, "finishingTouches")
}

func TestConfiguration_Validate_UnknownBlendScent(t *testing.T) {
	cfg := Default()
	cfg.FragranceMode = ModeBlend
	cfg.PrimaryScent = "sea-salt,marshmallow"

	problems := cfg.Validate()
	assert.Equal(t, `unknown scent "marshmallow"`, problems["primaryScent"])
}

func TestConfiguration_Validate_BlendScentLimit(t *testing.T) {
	cfg := Default()
	cfg.FragranceMode = ModeBlend
	cfg.PrimaryScent = "bulgarian-rose,sacred-oud,vanilla-bean"
	assert.Empty(t, cfg.Validate())

	cfg.PrimaryScent = "bulgarian-rose,sacred-oud,vanilla-bean,morning-dew,sea-salt"
	problems := cfg.Validate()
	assert.Equal(t, "a blend combines at most 3 scents", problems["primaryScent"])
}

func TestConfiguration_ToCartItem(t *testing.T) {
	cfg := Default()
	cfg.PrimaryScent = "amber-nights"
	cfg.LabelText = "  For Anya "
	now := time.UnixMilli(1717171717171)

	item := cfg.ToCartItem(3, now)

	assert.Regexp(t, `^custom-1717171717171-[0-9a-f]{8}$`, item.ID)
	assert.Equal(t, `Custom Candle: "For Anya"`, item.Name)
	assert.Equal(t, "custom-candle", item.Slug)
	assert.Equal(t, "Custom", item.Collection)
	assert.Equal(t, cfg.Price(), item.Price)
	assert.Equal(t, 3, item.Quantity)
	require.NotNil(t, item.Configuration)
	assert.Equal(t, "amber-nights", item.Configuration.PrimaryScent)
}

func TestConfiguration_ToCartItem_DistinctIDs(t *testing.T) {
	now := time.UnixMilli(1717171717171)

	first := Default()
	first.PrimaryScent = "amber-nights"
	second := Default()
	second.PrimaryScent = "sea-salt"

	a := first.ToCartItem(1, now)
	b := second.ToCartItem(1, now)
	assert.NotEqual(t, a.ID, b.ID)

	cart := &entity.Cart{}
	cart.Add(a)
	cart.Add(b)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "sea-salt", cart.Items[1].Configuration.PrimaryScent)
}

func TestConfiguration_ToCartItem_ClampsQuantity(t *testing.T) {
	cfg := Default()
	cfg.PrimaryScent = "amber-nights"

	assert.Equal(t, 1, cfg.ToCartItem(0, time.Now()).Quantity)
	assert.Equal(t, 10, cfg.ToCartItem(25, time.Now()).Quantity)
	assert.Equal(t, `Custom Candle: "Custom"`, cfg.ToCartItem(1, time.Now()).Name)
}

func TestFamilyOf(t *testing.T) {
	family, ok := FamilyOf("coffee-cream")
	assert.True(t, ok)
	assert.Equal(t, "gourmand", family)

	_, ok = FamilyOf("nope")
	assert.False(t, ok)
}
