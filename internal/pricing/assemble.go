package pricing

// TacticalMeasure is one concrete action suggested by the strategic
// analysis, with an operational difficulty tag and an estimated savings
// percentage.
type TacticalMeasure struct {
	Action              string  `json:"action"`
	Impact              string  `json:"impact"`
	Difficulty          string  `json:"difficulty"`
	EstimatedSavingsPct float64 `json:"estimated_savings_pct"`
}

// StrategicAnalysis is the narrative produced by the insights
// collaborator. The engine only carries it: recomputation must never
// erase previously generated narrative content.
type StrategicAnalysis struct {
	ExecutiveSummary string            `json:"executive_summary"`
	HedgingStrategy  string            `json:"hedging_strategy"`
	TacticalMeasures []TacticalMeasure `json:"tactical_measures"`
}

// AutoSwitchConfig is the tariff-monitoring state attached to a
// simulation. Like the narrative, it survives recomputation untouched.
type AutoSwitchConfig struct {
	Enabled               bool    `json:"is_enabled"`
	LastCheck             string  `json:"last_check,omitempty"`
	PotentialExtraSavings float64 `json:"potential_extra_savings,omitempty"`
	Status                string  `json:"status"`
}

// Time-of-use period names as reported to consumers of a simulation.
const (
	PeriodPeak         = "Ponta"
	PeriodFull         = "Cheia"
	PeriodOffPeak      = "Vazio"
	PeriodSuperOffPeak = "Super Vazio"
	PeriodNone         = "Nenhuma"
)

// SimulationResult is the complete outcome of one simulation: the
// reconciled totals plus the base/margin/proposed price sets, the risk
// classification and the carry-over slots. It is immutable; edits go
// through Recalculate, which supersedes the whole value.
type SimulationResult struct {
	CalculationResult

	Bases    PriceConfig `json:"bases"`
	Margins  PriceConfig `json:"margins"`
	Proposed PriceConfig `json:"proposed"`

	BestMarginOpportunity string             `json:"best_margin_opportunity"`
	VulnerabilityScore    int                `json:"vulnerability_score"`
	VulnerabilityLabel    VulnerabilityLabel `json:"vulnerability_label"`

	AIInsights *StrategicAnalysis `json:"ai_insights,omitempty"`
	AutoSwitch *AutoSwitchConfig  `json:"auto_switch,omitempty"`
}

// Assemble merges aggregator output with the price sets into one result.
// Margins are recomputed as proposed − base per field, so the
// base + margin = proposed identity holds by construction. When a prior
// result is given, its narrative and auto-switch state carry forward.
func Assemble(calc CalculationResult, bases, proposed PriceConfig, prior *SimulationResult) SimulationResult {
	margins := PriceConfig{
		Peak:         round6(proposed.Peak - bases.Peak),
		Full:         round6(proposed.Full - bases.Full),
		OffPeak:      round6(proposed.OffPeak - bases.OffPeak),
		SuperOffPeak: round6(proposed.SuperOffPeak - bases.SuperOffPeak),
		PowerDaily:   round6(proposed.PowerDaily - bases.PowerDaily),
	}

	score, label := Classify(calc.SavingsPercent)

	res := SimulationResult{
		CalculationResult:     calc,
		Bases:                 bases,
		Margins:               margins,
		Proposed:              proposed,
		BestMarginOpportunity: bestMarginOpportunity(margins),
		VulnerabilityScore:    score,
		VulnerabilityLabel:    label,
		AutoSwitch:            &AutoSwitchConfig{Status: "idle"},
	}

	if prior != nil {
		res.AIInsights = prior.AIInsights
		if prior.AutoSwitch != nil {
			res.AutoSwitch = prior.AutoSwitch
		}
	}

	return res
}

// bestMarginOpportunity names the energy period with the largest margin.
// Ties resolve in declaration order: Ponta, Cheia, Vazio, Super Vazio.
func bestMarginOpportunity(margins PriceConfig) string {
	periods := []struct {
		name   string
		margin float64
	}{
		{PeriodPeak, margins.Peak},
		{PeriodFull, margins.Full},
		{PeriodOffPeak, margins.OffPeak},
		{PeriodSuperOffPeak, margins.SuperOffPeak},
	}

	best := PeriodNone
	bestMargin := 0.0
	for _, p := range periods {
		if p.margin > bestMargin {
			best = p.name
			bestMargin = p.margin
		}
	}
	return best
}
