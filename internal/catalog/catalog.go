// Package catalog holds the immutable game data: the tradable assets, the
// spike event book, the flavor news pool, and the ripple correlation table.
// Everything here is read-only after construction; the scheduler and session
// own all mutable state.
package catalog

// Category groups events and assets for ripple correlation and director
// modifier lookups.
type Category string

const (
	CategoryTech     Category = "tech"
	CategoryCrypto   Category = "crypto"
	CategoryEnergy   Category = "energy"
	CategoryDefense  Category = "defense"
	CategoryGeo      Category = "geopolitics"
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryComeback Category = "comeback"
	CategorySafe     Category = "safe_haven"
)

// Tier ranks a spike's rarity and magnitude.
type Tier string

const (
	TierCommon    Tier = "common"
	TierRare      Tier = "rare"
	TierLegendary Tier = "legendary"
)

// Direction is which way a spike moves its target.
type Direction string

const (
	DirectionMoon  Direction = "moon"
	DirectionCrash Direction = "crash"
)

// Asset is one tradable instrument. Catalog entries are immutable; prices
// live in the session.
type Asset struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	BasePrice  float64  `yaml:"base_price"`
	Volatility float64  `yaml:"volatility"` // daily noise scale, e.g. 0.02 = 2% stddev
	Category   Category `yaml:"category"`
}

// SecondaryEffect is a cross-asset move applied the same day as a spike's
// primary effect.
type SecondaryEffect struct {
	AssetID string
	Pct     float64 // e.g. -0.12 = -12%
}

// SpikeEvent is a rare, large scheduled price event. Multiplier is drawn
// uniformly from [MinMult, MaxMult] and applied to the target's price.
type SpikeEvent struct {
	ID        string
	Tier      Tier
	Direction Direction
	Category  Category
	AssetID   string
	Headline  string
	Rumor     string // optional foreshadowing text; empty means no rumor ever
	MinMult   float64
	MaxMult   float64
	Secondary []SecondaryEffect
}

// FlavorEvent is an ordinary news item with a small single-asset effect.
// Pct is drawn uniformly from [MinPct, MaxPct].
type FlavorEvent struct {
	ID       string
	Category Category
	AssetID  string
	Headline string
	Label    string // news, gossip, developing, study, report
	MinPct   float64
	MaxPct   float64
}

// RippleTarget describes how a fired event of one category biases another
// afterward. Strength > 1 boosts, < 1 suppresses. VolatilityBoost multiplies
// daily noise for assets of the target category while the ripple is alive.
type RippleTarget struct {
	Category        Category
	Strength        float64
	VolatilityBoost float64
}

// Catalog is the full static data set for one game.
type Catalog struct {
	Assets  []Asset
	Spikes  []SpikeEvent
	Flavor  []FlavorEvent
	Ripples map[Category][]RippleTarget

	// TaxShelterAssetID is the holding that sometimes deflects the tax-audit
	// encounter.
	TaxShelterAssetID string
}

// Asset returns the catalog entry for id, or false.
func (c *Catalog) Asset(id string) (Asset, bool) {
	for _, a := range c.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// AssetsByCategory returns ids of all assets in the category.
func (c *Catalog) AssetsByCategory(cat Category) []string {
	var ids []string
	for _, a := range c.Assets {
		if a.Category == cat {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Spike returns the spike event with the given id, or false.
func (c *Catalog) Spike(id string) (SpikeEvent, bool) {
	for _, s := range c.Spikes {
		if s.ID == id {
			return s, true
		}
	}
	return SpikeEvent{}, false
}
