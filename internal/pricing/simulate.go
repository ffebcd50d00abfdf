package pricing

import (
	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/tariff"
)

// BasePrices looks up the wholesale cost set for an invoice's contract:
// energy costs from the forward price sheet, power from the access
// tariff of the voltage class.
func BasePrices(inv invoice.InvoiceData) PriceConfig {
	energy := tariff.LookupBaseCost(inv.Voltage, inv.Cycle, inv.ContractedPowerKVA)
	return PriceConfig{
		Peak:         energy.Peak,
		Full:         energy.Full,
		OffPeak:      energy.OffPeak,
		SuperOffPeak: energy.SuperOffPeak,
		PowerDaily:   tariff.PowerBaseCost(inv.Voltage),
	}
}

// Simulate runs a fresh simulation for a confirmed invoice: tariff
// lookup, proposal derivation, full cost comparison, risk classification.
// Pure function of its input.
func Simulate(inv invoice.InvoiceData) SimulationResult {
	bases := BasePrices(inv)
	proposed := DeriveProposal(inv, bases)

	days := BillingDays(inv.StartDate, inv.EndDate)
	calc := Aggregate(inv, proposed, days)

	return Assemble(calc, bases, proposed, nil)
}

// Recalculate is the single recomputation entry point for interactive
// edits. Bases and margins come from the overrides where present and
// from the prior result otherwise; the proposed set is re-solved through
// base + margin, and the whole comparison is recomputed from scratch.
// Feeding a result's own values back in reproduces that result.
func Recalculate(inv invoice.InvoiceData, prior SimulationResult, o Overrides) SimulationResult {
	bases := PriceConfig{
		Peak:         resolve(o.BasePeak, prior.Bases.Peak),
		Full:         resolve(o.BaseFull, prior.Bases.Full),
		OffPeak:      resolve(o.BaseOffPeak, prior.Bases.OffPeak),
		SuperOffPeak: resolve(o.BaseSuperOffPeak, prior.Bases.SuperOffPeak),
		PowerDaily:   resolve(o.BasePowerDaily, prior.Bases.PowerDaily),
	}

	margins := PriceConfig{
		Peak:         resolve(o.MarginPeak, prior.Margins.Peak),
		Full:         resolve(o.MarginFull, prior.Margins.Full),
		OffPeak:      resolve(o.MarginOffPeak, prior.Margins.OffPeak),
		SuperOffPeak: resolve(o.MarginSuperOffPeak, prior.Margins.SuperOffPeak),
		PowerDaily:   resolve(o.MarginPowerDaily, prior.Margins.PowerDaily),
	}

	proposed := ApplyOverrides(bases, margins)

	days := BillingDays(inv.StartDate, inv.EndDate)
	calc := Aggregate(inv, proposed, days)

	res := Assemble(calc, bases, proposed, &prior)
	if o.AutoSwitch != nil {
		res.AutoSwitch = o.AutoSwitch
	}
	return res
}
