// Package pricing is the deterministic simulation engine: it takes a
// confirmed invoice plus the internal cost table and produces a fully
// reconciled cost comparison between the customer's current contract and
// the proposed one. Everything here is pure computation; the package does
// no I/O and never fails on bad data, it degrades.
package pricing

import (
	"github.com/wattonenergy/enersim/internal/invoice"
)

// VATRate backs a period total out of a VAT-inclusive invoice total when
// per-period pricing could not be extracted.
const VATRate = 1.23

// PriceConfig is one proposed price set: a unit price per time-of-use
// period (€/kWh) plus the daily power charge (€/day).
type PriceConfig struct {
	Peak         float64 `json:"ponta"`
	Full         float64 `json:"cheia"`
	OffPeak      float64 `json:"vazio"`
	SuperOffPeak float64 `json:"super_vazio"`
	PowerDaily   float64 `json:"potencia_dia"`
}

// EnergyBreakdown is the per-period energy cost of one side of the
// comparison, euros for the billing period.
type EnergyBreakdown struct {
	Peak         float64 `json:"ponta"`
	Full         float64 `json:"cheia"`
	OffPeak      float64 `json:"vazio"`
	SuperOffPeak float64 `json:"super_vazio"`
	Total        float64 `json:"total"`
}

// Breakdown carries the full detail behind a comparison.
type Breakdown struct {
	EnergyCurrent       EnergyBreakdown `json:"energy_current"`
	EnergyProposed      EnergyBreakdown `json:"energy_proposed"`
	PowerCurrent        float64         `json:"power_current"`
	PowerProposed       float64         `json:"power_proposed"`
	BillingDays         int             `json:"billing_days"`
	AnnualizationFactor float64         `json:"annualization_factor"`
}

// CalculationResult is the canonical set of derived totals: period and
// annualized cost for both price sets, and the savings between them.
// Monetary fields are rounded to cents at the point of output.
type CalculationResult struct {
	CurrentMonthly  float64 `json:"current_monthly"`
	ProposedMonthly float64 `json:"proposed_monthly"`
	SavingsMonthly  float64 `json:"savings_monthly"`

	CurrentAnnual  float64 `json:"current_annual"`
	ProposedAnnual float64 `json:"proposed_annual"`
	SavingsAnnual  float64 `json:"savings_annual"`
	SavingsPercent float64 `json:"savings_percent"`

	Breakdown Breakdown `json:"breakdown"`

	// ValidationMessages flags degraded-confidence estimations, e.g. the
	// VAT-backout fallback. These are notices, not errors.
	ValidationMessages []string `json:"validation_messages"`
}

// Aggregate computes the full cost comparison for an invoice against a
// proposed price set. Both sides use the same billing days. If the
// current side computes to zero while the invoice states a nonzero
// VAT-inclusive total, the period total is estimated by backing the VAT
// out of that total; the proposed side never uses this fallback.
// Negative savings are surfaced as-is, never clamped.
func Aggregate(inv invoice.InvoiceData, proposed PriceConfig, billingDays int) CalculationResult {
	days := float64(billingDays)

	energyCurrent := EnergyBreakdown{
		Peak:         inv.ConsumptionPeak * inv.PricePeak,
		Full:         inv.ConsumptionFull * inv.PriceFull,
		OffPeak:      inv.ConsumptionOffPeak * inv.PriceOffPeak,
		SuperOffPeak: inv.ConsumptionSuperOffPeak * inv.PriceSuperOffPeak,
	}
	energyCurrent.Total = energyCurrent.Peak + energyCurrent.Full + energyCurrent.OffPeak + energyCurrent.SuperOffPeak

	powerCurrent := inv.PowerPricePerDay * days
	currentMonthly := energyCurrent.Total + powerCurrent

	messages := []string{}
	if currentMonthly == 0 && inv.TotalWithVAT > 0 {
		currentMonthly = inv.TotalWithVAT / VATRate
		messages = append(messages,
			"Custo atual estimado a partir do total da fatura (IVA removido): preços unitários em falta.")
	}

	energyProposed := EnergyBreakdown{
		Peak:         inv.ConsumptionPeak * proposed.Peak,
		Full:         inv.ConsumptionFull * proposed.Full,
		OffPeak:      inv.ConsumptionOffPeak * proposed.OffPeak,
		SuperOffPeak: inv.ConsumptionSuperOffPeak * proposed.SuperOffPeak,
	}
	energyProposed.Total = energyProposed.Peak + energyProposed.Full + energyProposed.OffPeak + energyProposed.SuperOffPeak

	powerProposed := proposed.PowerDaily * days
	proposedMonthly := energyProposed.Total + powerProposed

	currentAnnual := AnnualCost(currentMonthly, billingDays)
	proposedAnnual := AnnualCost(proposedMonthly, billingDays)

	savingsMonthly := currentMonthly - proposedMonthly
	savingsAnnual := round2(currentAnnual - proposedAnnual)
	savingsPercent := 0.0
	if currentAnnual > 0 {
		savingsPercent = round2(savingsAnnual / currentAnnual * 100)
	}

	return CalculationResult{
		CurrentMonthly:  round2(currentMonthly),
		ProposedMonthly: round2(proposedMonthly),
		SavingsMonthly:  round2(savingsMonthly),

		CurrentAnnual:  currentAnnual,
		ProposedAnnual: proposedAnnual,
		SavingsAnnual:  savingsAnnual,
		SavingsPercent: savingsPercent,

		Breakdown: Breakdown{
			EnergyCurrent:       roundEnergy(energyCurrent),
			EnergyProposed:      roundEnergy(energyProposed),
			PowerCurrent:        round2(powerCurrent),
			PowerProposed:       round2(powerProposed),
			BillingDays:         billingDays,
			AnnualizationFactor: 365 / days,
		},

		ValidationMessages: messages,
	}
}

func roundEnergy(e EnergyBreakdown) EnergyBreakdown {
	return EnergyBreakdown{
		Peak:         round2(e.Peak),
		Full:         round2(e.Full),
		OffPeak:      round2(e.OffPeak),
		SuperOffPeak: round2(e.SuperOffPeak),
		Total:        round2(e.Total),
	}
}
