package calculator

import (
	"math"
	"strings"
)

// PriceRangeEntry is the per-unit price range for services whose slug
// matches Key.
type PriceRangeEntry struct {
	Key        string
	MinPerUnit float64
	MaxPerUnit float64
	// PremiumMultiplier scales the range for premium material. Zero means
	// the service has no material choice.
	PremiumMultiplier float64
}

func (e PriceRangeEntry) HasPremium() bool {
	return e.PremiumMultiplier > 1
}

type PriceEstimate struct {
	MinTotal int64 `json:"min_total"`
	MaxTotal int64 `json:"max_total"`
}

// Resolver maps a service slug, quantity and material tier to a price range.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	entries  []PriceRangeEntry
	exact    map[string]PriceRangeEntry
	fallback PriceRangeEntry
}

func NewResolver(entries []PriceRangeEntry, fallback PriceRangeEntry) *Resolver {
	r := &Resolver{
		entries:  make([]PriceRangeEntry, 0, len(entries)),
		exact:    make(map[string]PriceRangeEntry, len(entries)),
		fallback: fallback,
	}
	for _, e := range entries {
		e.Key = normalizeSlug(e.Key)
		r.entries = append(r.entries, e)
		if _, dup := r.exact[e.Key]; !dup {
			r.exact[e.Key] = e
		}
	}
	return r
}

func DefaultResolver() *Resolver {
	return NewResolver(DefaultPriceTable, DefaultPriceEntry)
}

func (r *Resolver) Entries() []PriceRangeEntry {
	out := make([]PriceRangeEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Resolver) Fallback() PriceRangeEntry {
	return r.fallback
}

// Lookup finds the entry for slug: exact key first, then the first key in
// table order that contains slug or is contained in it, then the fallback.
// The bool is false when the fallback was used. An empty or blank slug
// always resolves to the fallback, since the empty string is contained in
// every key.
func (r *Resolver) Lookup(slug string) (PriceRangeEntry, bool) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return r.fallback, false
	}
	if e, ok := r.exact[slug]; ok {
		return e, true
	}
	for _, e := range r.entries {
		if e.Key == "" {
			continue
		}
		if strings.Contains(slug, e.Key) || strings.Contains(e.Key, slug) {
			return e, true
		}
	}
	return r.fallback, false
}

func (r *Resolver) Resolve(slug string, quantity int, tier MaterialTier) PriceEstimate {
	entry, _ := r.Lookup(slug)
	return entry.Estimate(quantity, tier)
}

// Estimate scales the entry by quantity (at least 1) and, for premium
// material, by the premium multiplier. Totals are rounded to whole units.
func (e PriceRangeEntry) Estimate(quantity int, tier MaterialTier) PriceEstimate {
	if quantity < MinQuantity {
		quantity = MinQuantity
	}

	factor := float64(quantity)
	if tier == MaterialPremium && e.HasPremium() {
		factor *= e.PremiumMultiplier
	}

	return PriceEstimate{
		MinTotal: int64(math.Round(e.MinPerUnit * factor)),
		MaxTotal: int64(math.Round(e.MaxPerUnit * factor)),
	}
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
