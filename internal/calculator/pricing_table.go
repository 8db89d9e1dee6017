package calculator

// DefaultPriceTable lists per-unit ranges in EUR. Order matters: when a
// slug matches several keys by containment the first entry wins.
var DefaultPriceTable = []PriceRangeEntry{
	{Key: "implant", MinPerUnit: 2000, MaxPerUnit: 2750, PremiumMultiplier: 1.3},
	{Key: "crown", MinPerUnit: 600, MaxPerUnit: 950, PremiumMultiplier: 1.5},
	{Key: "veneer", MinPerUnit: 700, MaxPerUnit: 1100, PremiumMultiplier: 1.4},
	{Key: "bridge", MinPerUnit: 1500, MaxPerUnit: 2400, PremiumMultiplier: 1.35},
	{Key: "filling", MinPerUnit: 90, MaxPerUnit: 180, PremiumMultiplier: 1.25},
	{Key: "root-canal", MinPerUnit: 350, MaxPerUnit: 750},
	{Key: "extraction", MinPerUnit: 80, MaxPerUnit: 250},
	{Key: "whitening", MinPerUnit: 300, MaxPerUnit: 500},
	{Key: "hygiene", MinPerUnit: 80, MaxPerUnit: 130},
	{Key: "aligner", MinPerUnit: 2500, MaxPerUnit: 5500},
}

// DefaultPriceEntry prices services that match no table key.
var DefaultPriceEntry = PriceRangeEntry{Key: "default", MinPerUnit: 100, MaxPerUnit: 500}
