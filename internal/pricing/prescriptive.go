package pricing

import (
	"fmt"
	"math"

	"github.com/wattonenergy/enersim/internal/invoice"
)

const (
	// minSavingsTargetPct is the savings floor below which the standard
	// markup strategy is abandoned for Maximum Viable Margin pricing.
	minSavingsTargetPct = 0.05

	// standardMarginPct is the default commercial markup over wholesale.
	standardMarginPct = 0.15
)

// SavingsProjection compares the fixed-price offer against an indexed one.
type SavingsProjection struct {
	FixedContractSavings float64 `json:"fixed_contract_savings"`
	IndexContractSavings float64 `json:"index_contract_savings"`
	BestOption           string  `json:"best_option"`
}

// OptimizationSuggestion is operational advice derived from the
// consumption profile and invoice metadata.
type OptimizationSuggestion struct {
	LoadShiftingViability    string `json:"load_shifting_viability"`
	EstimatedReadingRisk     string `json:"estimated_reading_risk"`
	AdditionalServicesImpact string `json:"additional_services_impact"`
}

// MarginAnalysis reports which margin strategy the prescriptive pass
// selected and the resulting per-period margins.
type MarginAnalysis struct {
	AppliedStrategy string  `json:"applied_strategy"`
	MarginPeak      float64 `json:"margin_ponta"`
	MarginFull      float64 `json:"margin_cheia"`
	MarginOffPeak   float64 `json:"margin_vazio"`
}

// PrescriptiveResult is the advisory layer on top of a simulation: the
// dominant periods, a profile efficiency score and the recommended
// margin strategy. It is recomputed on demand, never carried over.
type PrescriptiveResult struct {
	HighestConsumptionPeriod string                 `json:"highest_consumption_period"`
	HighestCostPeriod        string                 `json:"highest_cost_period"`
	ProfileEfficiencyScore   int                    `json:"profile_efficiency_score"`
	SavingsProjection        SavingsProjection      `json:"savings_projection"`
	Optimization             OptimizationSuggestion `json:"optimization_suggestion"`
	MarginAnalysis           MarginAnalysis         `json:"margin_analysis"`
}

// Prescriptive produces the advisory analysis for an invoice and its
// current simulation.
func Prescriptive(inv invoice.InvoiceData, sim SimulationResult) PrescriptiveResult {
	consumption := []float64{
		inv.ConsumptionPeak, inv.ConsumptionFull,
		inv.ConsumptionOffPeak, inv.ConsumptionSuperOffPeak,
	}
	currentCosts := []float64{
		inv.ConsumptionPeak * inv.PricePeak,
		inv.ConsumptionFull * inv.PriceFull,
		inv.ConsumptionOffPeak * inv.PriceOffPeak,
		inv.ConsumptionSuperOffPeak * inv.PriceSuperOffPeak,
	}

	total := consumption[0] + consumption[1] + consumption[2] + consumption[3]
	if total == 0 {
		total = 1
	}

	nonPeak := total - inv.ConsumptionPeak
	if nonPeak < 0 {
		nonPeak = 0
	}
	efficiency := int(math.Min(100, math.Round(nonPeak/total*100)))

	internal := BasePrices(inv)

	standardProposed := PriceConfig{
		Peak:         internal.Peak * (1 + standardMarginPct),
		Full:         internal.Full * (1 + standardMarginPct),
		OffPeak:      internal.OffPeak * (1 + standardMarginPct),
		SuperOffPeak: internal.SuperOffPeak * (1 + standardMarginPct),
	}

	standardAnnual := standardProposed.Peak*inv.ConsumptionPeak +
		standardProposed.Full*inv.ConsumptionFull +
		standardProposed.OffPeak*inv.ConsumptionOffPeak +
		standardProposed.SuperOffPeak*inv.ConsumptionSuperOffPeak +
		sim.Proposed.PowerDaily*365

	strategy := "Standard"
	margins := MarginAnalysis{
		AppliedStrategy: strategy,
		MarginPeak:      round6(standardProposed.Peak - internal.Peak),
		MarginFull:      round6(standardProposed.Full - internal.Full),
		MarginOffPeak:   round6(standardProposed.OffPeak - internal.OffPeak),
	}

	if sim.CurrentAnnual > 0 {
		standardSavingsPct := (sim.CurrentAnnual - standardAnnual) / sim.CurrentAnnual
		if standardSavingsPct < minSavingsTargetPct {
			strategy = "Maximum Viable Margin"
			margins = MarginAnalysis{
				AppliedStrategy: strategy,
				MarginPeak:      round6(viableMargin(inv.PricePeak, internal.Peak)),
				MarginFull:      round6(viableMargin(inv.PriceFull, internal.Full)),
				MarginOffPeak:   round6(viableMargin(inv.PriceOffPeak, internal.OffPeak)),
			}
		}
	}

	return PrescriptiveResult{
		HighestConsumptionPeriod: dominantPeriod(consumption),
		HighestCostPeriod:        dominantPeriod(currentCosts),
		ProfileEfficiencyScore:   efficiency,
		SavingsProjection: SavingsProjection{
			FixedContractSavings: sim.SavingsAnnual,
			IndexContractSavings: round2(sim.SavingsAnnual * 1.12),
			BestOption:           "Indexed",
		},
		Optimization: OptimizationSuggestion{
			LoadShiftingViability:    loadShiftAdvice(inv, efficiency),
			EstimatedReadingRisk:     readingRiskAdvice(inv),
			AdditionalServicesImpact: servicesAdvice(inv),
		},
		MarginAnalysis: margins,
	}
}

// viableMargin back-solves the largest margin that still leaves the
// customer a 5% saving off their current price, floored at 0.001.
func viableMargin(currentPrice, cost float64) float64 {
	target := currentPrice * (1 - minSavingsTargetPct)
	return math.Max(MinMarginFloor, target-cost)
}

// dominantPeriod picks the period with the largest value; ties resolve
// in declaration order (Ponta first).
func dominantPeriod(values []float64) string {
	names := []string{PeriodPeak, PeriodFull, PeriodOffPeak, PeriodSuperOffPeak}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return names[best]
}

func loadShiftAdvice(inv invoice.InvoiceData, efficiency int) string {
	if efficiency >= 60 {
		return fmt.Sprintf("Baixa. O cliente já apresenta uma eficiência de %d%%.", efficiency)
	}
	directSavings := (inv.PricePeak - inv.PriceOffPeak) * inv.ConsumptionPeak * 0.1
	return fmt.Sprintf(
		"Alta. O cliente consome %.0f kWh em Ponta. Mover 10%% para Vazio gera ~%.0f€ de poupança direta.",
		inv.ConsumptionPeak, directSavings)
}

func readingRiskAdvice(inv invoice.InvoiceData) string {
	if inv.ReadingType == invoice.ReadingEstimated {
		return "CRÍTICO. Fatura baseada em estimativas. Recomenda-se envio imediato de leitura real."
	}
	return "Baixo. Faturação real, garantindo precisão."
}

func servicesAdvice(inv invoice.InvoiceData) string {
	if len(inv.AdditionalServices) == 0 {
		return "Nenhum serviço adicional detetado."
	}
	return fmt.Sprintf("Atenção: Cliente subscreve %d serviços adicionais.", len(inv.AdditionalServices))
}
