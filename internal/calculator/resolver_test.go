package calculator

import (
	"math"
	"strings"
	"testing"
)

var implantTable = []PriceRangeEntry{
	{Key: "implant", MinPerUnit: 2000, MaxPerUnit: 2750, PremiumMultiplier: 1.3},
	{Key: "whitening", MinPerUnit: 300, MaxPerUnit: 500},
}

var testFallback = PriceRangeEntry{Key: "default", MinPerUnit: 100, MaxPerUnit: 500}

func TestResolve_Scenarios(t *testing.T) {
	r := NewResolver(implantTable, testFallback)

	tests := []struct {
		name     string
		slug     string
		quantity int
		tier     MaterialTier
		want     PriceEstimate
	}{
		{"standard implants", "implant", 2, MaterialStandard, PriceEstimate{4000, 5500}},
		{"premium implants", "implant", 2, MaterialPremium, PriceEstimate{5200, 7150}},
		{"unknown slug falls back", "xyz-unmatched", 1, MaterialNone, PriceEstimate{100, 500}},
		{"premium ignored without multiplier", "whitening", 1, MaterialPremium, PriceEstimate{300, 500}},
		{"quantity below one treated as one", "whitening", 0, MaterialNone, PriceEstimate{300, 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.slug, tt.quantity, tt.tier); got != tt.want {
				t.Fatalf("Resolve(%q, %d, %q) = %+v, want %+v", tt.slug, tt.quantity, tt.tier, got, tt.want)
			}
		})
	}
}

func TestResolve_IdentityAtQuantityOne(t *testing.T) {
	r := DefaultResolver()
	for _, e := range DefaultPriceTable {
		got := r.Resolve(e.Key, 1, MaterialNone)
		want := PriceEstimate{int64(e.MinPerUnit), int64(e.MaxPerUnit)}
		if got != want {
			t.Errorf("%s: got %+v, want %+v", e.Key, got, want)
		}
	}
}

func TestResolve_Monotonic(t *testing.T) {
	r := DefaultResolver()
	slugs := []string{"implant", "crown", "whitening", "unknown-service"}
	tiers := []MaterialTier{MaterialNone, MaterialStandard, MaterialPremium}

	for _, slug := range slugs {
		for _, tier := range tiers {
			prev := r.Resolve(slug, MinQuantity, tier)
			for q := MinQuantity + 1; q <= MaxQuantity; q++ {
				cur := r.Resolve(slug, q, tier)
				if cur.MinTotal < prev.MinTotal || cur.MaxTotal < prev.MaxTotal {
					t.Fatalf("%s/%s: quantity %d decreased %+v -> %+v", slug, tier, q, prev, cur)
				}
				prev = cur
			}
		}
	}
}

func TestResolve_PremiumScaling(t *testing.T) {
	r := DefaultResolver()
	for _, e := range DefaultPriceTable {
		if !e.HasPremium() {
			continue
		}
		for q := MinQuantity; q <= MaxQuantity; q++ {
			std := r.Resolve(e.Key, q, MaterialStandard)
			prem := r.Resolve(e.Key, q, MaterialPremium)
			wantMin := int64(math.Round(float64(std.MinTotal) * e.PremiumMultiplier))
			wantMax := int64(math.Round(float64(std.MaxTotal) * e.PremiumMultiplier))
			if prem.MinTotal != wantMin || prem.MaxTotal != wantMax {
				t.Fatalf("%s q=%d: premium %+v, want {%d %d}", e.Key, q, prem, wantMin, wantMax)
			}
		}
	}
}

func TestResolve_Fallback(t *testing.T) {
	r := DefaultResolver()
	for q := MinQuantity; q <= MaxQuantity; q++ {
		got := r.Resolve("xyz-unmatched", q, MaterialPremium)
		want := DefaultPriceEntry.Estimate(q, MaterialNone)
		if got != want {
			t.Fatalf("q=%d: got %+v, want %+v", q, got, want)
		}
	}
}

func TestLookup_Order(t *testing.T) {
	r := NewResolver([]PriceRangeEntry{
		{Key: "crown", MinPerUnit: 1, MaxPerUnit: 2},
		{Key: "ceramic-crown", MinPerUnit: 3, MaxPerUnit: 4},
		{Key: "veneer", MinPerUnit: 5, MaxPerUnit: 6},
	}, testFallback)

	tests := []struct {
		slug    string
		wantKey string
		matched bool
	}{
		// exact match beats an earlier substring match
		{"ceramic-crown", "ceramic-crown", true},
		// first key in table order wins among containment matches
		{"zirconia-ceramic-crowns", "crown", true},
		// slug contained in a key
		{"ven", "veneer", true},
		{"  VENEER ", "veneer", true},
		{"implant", "default", false},
		{"", "default", false},
		{" \t ", "default", false},
	}

	for _, tt := range tests {
		e, ok := r.Lookup(tt.slug)
		if e.Key != tt.wantKey || ok != tt.matched {
			t.Errorf("Lookup(%q) = %q/%v, want %q/%v", tt.slug, e.Key, ok, tt.wantKey, tt.matched)
		}
	}
}

func TestResolve_EmptySlugUsesFallback(t *testing.T) {
	r := DefaultResolver()
	want := r.Fallback().Estimate(2, MaterialPremium)
	for _, slug := range []string{"", "   "} {
		if got := r.Resolve(slug, 2, MaterialPremium); got != want {
			t.Errorf("Resolve(%q) = %+v, want fallback %+v", slug, got, want)
		}
	}
}

// Keys that contain one another make substring matches depend on table
// order; the shipped table must stay free of such collisions.
func TestDefaultPriceTable_NoKeyCollisions(t *testing.T) {
	for i, a := range DefaultPriceTable {
		if a.MinPerUnit < 0 || a.MaxPerUnit < a.MinPerUnit {
			t.Errorf("%s: malformed range %v..%v", a.Key, a.MinPerUnit, a.MaxPerUnit)
		}
		if a.PremiumMultiplier != 0 && a.PremiumMultiplier <= 1 {
			t.Errorf("%s: premium multiplier must be > 1, got %v", a.Key, a.PremiumMultiplier)
		}
		for j, b := range DefaultPriceTable {
			if i == j {
				continue
			}
			if strings.Contains(a.Key, b.Key) {
				t.Errorf("key %q contains key %q", a.Key, b.Key)
			}
		}
	}
}

func TestResolve_MinNotAboveMax(t *testing.T) {
	r := DefaultResolver()
	for _, e := range append(DefaultPriceTable, DefaultPriceEntry) {
		for _, tier := range []MaterialTier{MaterialStandard, MaterialPremium} {
			for q := MinQuantity; q <= MaxQuantity; q++ {
				got := r.Resolve(e.Key, q, tier)
				if got.MinTotal > got.MaxTotal {
					t.Fatalf("%s q=%d %s: min above max %+v", e.Key, q, tier, got)
				}
			}
		}
	}
}
