package pricing

// VulnerabilityLabel is one of the four ordinal risk tiers communicated
// to the consultant. Large savings imply the customer is currently
// overpaying, hence more exposed.
type VulnerabilityLabel string

const (
	LabelLow      VulnerabilityLabel = "BAIXO"
	LabelMedium   VulnerabilityLabel = "MÉDIO"
	LabelElevated VulnerabilityLabel = "ELEVADO"
	LabelCritical VulnerabilityLabel = "CRÍTICO"
)

// Classify maps a savings percentage (percent of current annual cost,
// the single basis used everywhere) to a vulnerability score and label.
// Thresholds are checked highest-first so greater savings opportunity
// always maps to a higher tier.
func Classify(savingsPercent float64) (int, VulnerabilityLabel) {
	switch {
	case savingsPercent > 30:
		return 9, LabelCritical
	case savingsPercent > 20:
		return 8, LabelElevated
	case savingsPercent < 5:
		return 3, LabelLow
	default:
		return 5, LabelMedium
	}
}
