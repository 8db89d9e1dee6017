package calculator

type Step string

const (
	StepServiceSelection Step = "service_selection"
	StepOptionSelection  Step = "option_selection"
	StepResults          Step = "results"
)

type MaterialTier string

const (
	MaterialNone     MaterialTier = ""
	MaterialStandard MaterialTier = "standard"
	MaterialPremium  MaterialTier = "premium"
)

func ParseMaterialTier(s string) (MaterialTier, bool) {
	switch MaterialTier(s) {
	case MaterialStandard, MaterialPremium:
		return MaterialTier(s), true
	case MaterialNone:
		return MaterialNone, true
	default:
		return MaterialNone, false
	}
}

const (
	MinQuantity = 1
	MaxQuantity = 32
)

func ClampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
