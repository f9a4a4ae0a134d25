// Package configurator prices and validates custom candle builds.
package configurator

// BasePrice is the price of a custom candle before any option deltas, in rupees.
const BasePrice int64 = 1999

// Option is a selectable component with its price delta in rupees.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceDelta  int64  `json:"priceDelta"`
}

// Scent is a fragrance option within a family.
type Scent struct {
	Option
	Notes string `json:"notes"`
}

// Family groups scents for browsing.
type Family struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Scents []Scent `json:"scents"`
}

// Catalog is the complete option table offered by the builder.
type Catalog struct {
	BasePrice        int64    `json:"basePrice"`
	Vessels          []Option `json:"vessels"`
	Families         []Family `json:"fragranceFamilies"`
	WaxColors        []Option `json:"waxColors"`
	WaxTypes         []Option `json:"waxTypes"`
	Wicks            []Option `json:"wicks"`
	Foils            []Option `json:"foils"`
	FinishingTouches []Option `json:"finishingTouches"`
	Packaging        []Option `json:"packaging"`
}

var vessels = []Option{
	{ID: "ivory-frost", Name: "Ivory Frost", Description: "Soft matte frosted glass", PriceDelta: 0},
	{ID: "obsidian-matte", Name: "Obsidian Matte", Description: "Hand-finished black glass", PriceDelta: 200},
	{ID: "champagne-gold", Name: "Champagne Gold", Description: "Metallic-finished glass", PriceDelta: 350},
	{ID: "ceramic-artisan", Name: "Ceramic Artisan", Description: "Hand-glazed stoneware", PriceDelta: 400},
	{ID: "hammered-brass", Name: "Hammered Brass", Description: "Hand-hammered brass finish", PriceDelta: 600},
}

func scent(id, name, notes string, delta int64) Scent {
	return Scent{Option: Option{ID: id, Name: name, PriceDelta: delta}, Notes: notes}
}

var families = []Family{
	{ID: "floral", Name: "Floral", Scents: []Scent{
		scent("bulgarian-rose", "Bulgarian Rose", "Rose, peony, pink pepper", 300),
		scent("jasmine-night", "Jasmine Night", "Jasmine, tuberose, musk", 350),
		scent("lavender-dreams", "Lavender Dreams", "Lavender, vanilla, sandalwood", 250),
	}},
	{ID: "woody", Name: "Woody", Scents: []Scent{
		scent("sacred-oud", "Sacred Oud", "Oud, rose, saffron", 500),
		scent("sandalwood-silk", "Sandalwood Silk", "Sandalwood, vanilla, amber", 350),
		scent("cedarwood-mist", "Cedarwood Mist", "Cedar, vetiver, moss", 300),
	}},
	{ID: "fresh", Name: "Fresh", Scents: []Scent{
		scent("morning-dew", "Morning Dew", "Green tea, bergamot, mint", 250),
		scent("sea-salt", "Sea Salt & Sage", "Sea salt, sage, driftwood", 280),
		scent("citrus-grove", "Citrus Grove", "Grapefruit, lemon, basil", 250),
	}},
	{ID: "oriental", Name: "Oriental", Scents: []Scent{
		scent("amber-nights", "Amber Nights", "Amber, vanilla, cinnamon", 350),
		scent("saffron-rose", "Saffron Rose", "Saffron, rose, oud", 450),
		scent("mystic-incense", "Mystic Incense", "Frankincense, myrrh, sandalwood", 380),
	}},
	{ID: "gourmand", Name: "Gourmand", Scents: []Scent{
		scent("vanilla-bean", "Vanilla Bean", "Vanilla, tonka, caramel", 280),
		scent("honey-almond", "Honey & Almond", "Honey, almond, warm milk", 300),
		scent("coffee-cream", "Coffee & Cream", "Coffee, cream, hazelnut", 320),
	}},
}

var waxColors = []Option{
	{ID: "natural", Name: "Natural", PriceDelta: 0},
	{ID: "warm-grey", Name: "Warm Grey", PriceDelta: 100},
	{ID: "rose-mist", Name: "Rose Mist", PriceDelta: 150},
	{ID: "champagne-cream", Name: "Champagne Cream", PriceDelta: 150},
}

var waxTypes = []Option{
	{ID: "soy", Name: "Pure Soy Wax", PriceDelta: 0},
	{ID: "beeswax", Name: "Natural Beeswax", PriceDelta: 200},
	{ID: "coconut-blend", Name: "Coconut & Soy Blend", PriceDelta: 100},
	{ID: "coconut-luxe", Name: "Coconut & Soy Luxe", PriceDelta: 180},
}

var wicks = []Option{
	{ID: "cotton", Name: "Braided Cotton", PriceDelta: 0},
	{ID: "wooden-crackle", Name: "Wooden Crackle", PriceDelta: 150},
	{ID: "dual-wick", Name: "Dual Wick", PriceDelta: 200},
}

var foils = []Option{
	{ID: "none", Name: "No Foil", PriceDelta: 0},
	{ID: "gold", Name: "Gold Foil", PriceDelta: 100},
	{ID: "rose-gold", Name: "Rose Gold", PriceDelta: 100},
	{ID: "matte-black", Name: "Matte Black", PriceDelta: 100},
}

var finishingTouches = []Option{
	{ID: "engraved-wooden-lid", Name: "Engraved Wooden Lid", Description: "Custom engraved wooden lid with your initials.", PriceDelta: 250},
	{ID: "gold-metal-lid", Name: "Gold Metal Lid", Description: "Luxurious gold-plated metal lid.", PriceDelta: 350},
	{ID: "wax-seal", Name: "Wax Seal", Description: "Hand-stamped wax seal on packaging.", PriceDelta: 150},
	{ID: "handwritten-note", Name: "Handwritten Note", Description: "Personal handwritten message card.", PriceDelta: 100},
}

var packaging = []Option{
	{ID: "burgundy-keepsake", Name: "Burgundy Keepsake Box", Description: "Magnetic closure with champagne foil logo.", PriceDelta: 500},
	{ID: "silk-potli", Name: "Silk Potli", Description: "Hand-stitched silk bag with tassel.", PriceDelta: 350},
	{ID: "ivory-box", Name: "Classic Ivory Box", Description: "Rigid box with Lumera monogram.", PriceDelta: 0},
	{ID: "no-packaging", Name: "No Gift Packaging", Description: "Planet-first minimal packing.", PriceDelta: -150},
}

// DefaultCatalog returns the option tables.
func DefaultCatalog() Catalog {
	return Catalog{
		BasePrice:        BasePrice,
		Vessels:          vessels,
		Families:         families,
		WaxColors:        waxColors,
		WaxTypes:         waxTypes,
		Wicks:            wicks,
		Foils:            foils,
		FinishingTouches: finishingTouches,
		Packaging:        packaging,
	}
}

type priceTable map[string]int64

func indexOptions(options []Option) priceTable {
	table := make(priceTable, len(options))
	for _, o := range options {
		table[o.ID] = o.PriceDelta
	}

	return table
}

var (
	vesselPrices    = indexOptions(vessels)
	waxColorPrices  = indexOptions(waxColors)
	waxTypePrices   = indexOptions(waxTypes)
	wickPrices      = indexOptions(wicks)
	foilPrices      = indexOptions(foils)
	touchPrices     = indexOptions(finishingTouches)
	packagingPrices = indexOptions(packaging)
	scentPrices     = indexScents()
	scentFamilies   = indexScentFamilies()
)

func indexScents() priceTable {
	table := priceTable{}
	for _, f := range families {
		for _, s := range f.Scents {
			table[s.ID] = s.PriceDelta
		}
	}

	return table
}

func indexScentFamilies() map[string]string {
	out := map[string]string{}
	for _, f := range families {
		for _, s := range f.Scents {
			out[s.ID] = f.ID
		}
	}

	return out
}

// ScentName returns the display name for a scent id.
func ScentName(id string) string {
	for _, f := range families {
		for _, s := range f.Scents {
			if s.ID == id {
				return s.Name
			}
		}
	}

	return id
}
