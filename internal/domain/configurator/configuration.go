package configurator

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"lumera/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	ModeSingle = "single"
	ModeBlend  = "blend"

	// MaxLabelLength is the longest label that fits the vessel.
	MaxLabelLength = 40

	// MaxBlendScents is the most scents a blend may combine.
	MaxBlendScents = 3

	MinQuantity = 1
	MaxQuantity = 10

	customItemPrefix = "custom-"
	customItemSlug   = "custom-candle"
	customCollection = "Custom"
)

// Configuration is a custom candle being built. In blend mode PrimaryScent
// holds comma-joined scent ids.
type Configuration struct {
	Vessel           string   `json:"vessel"`
	FragranceFamily  string   `json:"fragranceFamily"`
	FragranceMode    string   `json:"fragranceMode"`
	PrimaryScent     string   `json:"primaryScent"`
	WaxType          string   `json:"waxType"`
	WaxColor         string   `json:"waxColor"`
	WickType         string   `json:"wickType"`
	LabelText        string   `json:"labelText"`
	FoilFinish       string   `json:"foilFinish"`
	FinishingTouches []string `json:"finishingTouches"`
	Packaging        string   `json:"packaging,omitempty"`
}

// Default returns the builder's starting selections.
func Default() Configuration {
	return Configuration{
		Vessel:          "ivory-frost",
		FragranceFamily: "floral",
		FragranceMode:   ModeSingle,
		WaxType:         "soy",
		WaxColor:        "warm-grey",
		WickType:        "cotton",
		FoilFinish:      "gold",
	}
}

// Scents returns the selected scent ids in selection order.
func (c Configuration) Scents() []string {
	if strings.TrimSpace(c.PrimaryScent) == "" {
		return nil
	}

	if c.FragranceMode != ModeBlend {
		return []string{strings.TrimSpace(c.PrimaryScent)}
	}

	var ids []string
	for _, id := range strings.Split(c.PrimaryScent, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

// Price returns BasePrice plus every selected component's delta. Each scent
// of a blend is priced.
func (c Configuration) Price() int64 {
	total := BasePrice
	total += vesselPrices[c.Vessel]

	for _, id := range c.Scents() {
		total += scentPrices[id]
	}

	total += waxColorPrices[c.WaxColor]
	total += waxTypePrices[c.WaxType]
	total += wickPrices[c.WickType]
	total += foilPrices[c.FoilFinish]

	for _, id := range c.FinishingTouches {
		total += touchPrices[id]
	}

	total += packagingPrices[c.Packaging]

	return total
}

// CanAddToBag reports whether every required component is chosen.
func (c Configuration) CanAddToBag() bool {
	return c.Vessel != "" && len(c.Scents()) > 0 && c.WaxType != "" && c.WickType != ""
}

// Validate returns field -> problem for every unknown or malformed selection.
// An empty map means the configuration is acceptable.
func (c Configuration) Validate() map[string]string {
	problems := map[string]string{}

	checkOption := func(field, value string, table priceTable) {
		if value == "" {
			return
		}
		if _, ok := table[value]; !ok {
			problems[field] = fmt.Sprintf("unknown option %q", value)
		}
	}

	checkOption("vessel", c.Vessel, vesselPrices)
	checkOption("waxType", c.WaxType, waxTypePrices)
	checkOption("waxColor", c.WaxColor, waxColorPrices)
	checkOption("wickType", c.WickType, wickPrices)
	checkOption("foilFinish", c.FoilFinish, foilPrices)
	checkOption("packaging", c.Packaging, packagingPrices)

	if c.FragranceMode != "" && c.FragranceMode != ModeSingle && c.FragranceMode != ModeBlend {
		problems["fragranceMode"] = "must be single or blend"
	}

	if c.FragranceFamily != "" && c.FragranceFamily != "all" && !isFamily(c.FragranceFamily) {
		problems["fragranceFamily"] = fmt.Sprintf("unknown family %q", c.FragranceFamily)
	}

	if c.FragranceMode != ModeBlend && strings.Contains(c.PrimaryScent, ",") {
		problems["primaryScent"] = "multiple scents require blend mode"
	} else if dup, unknown := checkIDs(c.Scents(), scentPrices); unknown != "" {
		problems["primaryScent"] = fmt.Sprintf("unknown scent %q", unknown)
	} else if dup != "" {
		problems["primaryScent"] = fmt.Sprintf("scent %q selected twice", dup)
	} else if len(c.Scents()) > MaxBlendScents {
		problems["primaryScent"] = fmt.Sprintf("a blend combines at most %d scents", MaxBlendScents)
	}

	if dup, unknown := checkIDs(c.FinishingTouches, touchPrices); unknown != "" {
		problems["finishingTouches"] = fmt.Sprintf("unknown option %q", unknown)
	} else if dup != "" {
		problems["finishingTouches"] = fmt.Sprintf("option %q selected twice", dup)
	}

	if utf8.RuneCountInString(c.LabelText) > MaxLabelLength {
		problems["labelText"] = fmt.Sprintf("must be at most %d characters", MaxLabelLength)
	}

	return problems
}

func checkIDs(ids []string, table priceTable) (duplicate, unknown string) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := table[id]; !ok {
			return "", id
		}
		if _, ok := seen[id]; ok {
			duplicate = id
		}
		seen[id] = struct{}{}
	}

	return duplicate, ""
}

func isFamily(id string) bool {
	for _, f := range families {
		if f.ID == id {
			return true
		}
	}

	return false
}

// ClampQuantity keeps quantity within MinQuantity..MaxQuantity.
func ClampQuantity(quantity int) int {
	return min(max(quantity, MinQuantity), MaxQuantity)
}

// ToCartItem turns a finished configuration into a single cart line priced at
// the configuration's unit price. Every call yields a distinct line ID.
func (c Configuration) ToCartItem(quantity int, now time.Time) entity.CartItem {
	label := strings.TrimSpace(c.LabelText)
	if label == "" {
		label = customCollection
	}

	return entity.CartItem{
		ID:         fmt.Sprintf("%s%d-%s", customItemPrefix, now.UnixMilli(), uuid.NewString()[:8]),
		Name:       `Custom Candle: "` + label + `"`,
		Slug:       customItemSlug,
		Price:      c.Price(),
		Quantity:   ClampQuantity(quantity),
		Collection: customCollection,
		Configuration: &entity.CandleConfigurationSnapshot{
			Vessel:           c.Vessel,
			FragranceFamily:  c.FragranceFamily,
			FragranceMode:    c.FragranceMode,
			PrimaryScent:     strings.Join(c.Scents(), ","),
			WaxType:          c.WaxType,
			WaxColor:         c.WaxColor,
			WickType:         c.WickType,
			LabelText:        label,
			FoilFinish:       c.FoilFinish,
			FinishingTouches: c.FinishingTouches,
			Packaging:        c.Packaging,
		},
	}
}

// FamilyOf returns the family a scent belongs to.
func FamilyOf(scentID string) (string, bool) {
	family, ok := scentFamilies[scentID]

	return family, ok
}
