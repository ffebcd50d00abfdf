package pricing

import (
	"math"

	"github.com/wattonenergy/enersim/internal/invoice"
)

const (
	// TargetSavingsPct is the discount targeted off the customer's current
	// price when deriving an initial proposal.
	TargetSavingsPct = 0.08

	// MinMarginFloor is the minimum €/kWh (and €/day) margin above the
	// wholesale base. The engine never proposes at or below cost.
	MinMarginFloor = 0.001

	// UnknownPriceMarkup prices periods whose current price could not be
	// read: a flat markup over the wholesale base.
	UnknownPriceMarkup = 1.10
)

// DeriveProposal produces the initial proposed price set from the
// customer's current prices and the wholesale base costs. Per field:
// a zero/unknown current price gets base × 1.10; otherwise the price
// targets an 8% discount off the current price, floored at base + 0.001.
func DeriveProposal(inv invoice.InvoiceData, bases PriceConfig) PriceConfig {
	return PriceConfig{
		Peak:         smartPrice(inv.PricePeak, bases.Peak),
		Full:         smartPrice(inv.PriceFull, bases.Full),
		OffPeak:      smartPrice(inv.PriceOffPeak, bases.OffPeak),
		SuperOffPeak: smartPrice(inv.PriceSuperOffPeak, bases.SuperOffPeak),
		PowerDaily:   smartPrice(inv.PowerPricePerDay, bases.PowerDaily),
	}
}

func smartPrice(current, base float64) float64 {
	if current == 0 {
		return base * UnknownPriceMarkup
	}
	target := current * (1 - TargetSavingsPct)
	if target < base {
		return base + MinMarginFloor
	}
	return target
}

// Overrides is a partial edit of a simulation's base costs and margins.
// Absent fields fall back to the prior simulation's values, never to a
// hardcoded default. A NaN value is treated as absent: a half-typed cell
// must not zero out a price.
type Overrides struct {
	BasePeak         *float64 `json:"base_ponta,omitempty"`
	BaseFull         *float64 `json:"base_cheia,omitempty"`
	BaseOffPeak      *float64 `json:"base_vazio,omitempty"`
	BaseSuperOffPeak *float64 `json:"base_super_vazio,omitempty"`
	BasePowerDaily   *float64 `json:"base_potencia_dia,omitempty"`

	MarginPeak         *float64 `json:"margin_ponta,omitempty"`
	MarginFull         *float64 `json:"margin_cheia,omitempty"`
	MarginOffPeak      *float64 `json:"margin_vazio,omitempty"`
	MarginSuperOffPeak *float64 `json:"margin_super_vazio,omitempty"`
	MarginPowerDaily   *float64 `json:"margin_potencia_dia,omitempty"`

	AutoSwitch *AutoSwitchConfig `json:"auto_switch,omitempty"`
}

// resolve picks an override when present and usable, the prior value
// otherwise.
func resolve(override *float64, prior float64) float64 {
	if override == nil || math.IsNaN(*override) {
		return prior
	}
	return *override
}

// ApplyOverrides re-solves a proposed price set from base costs and
// margins: proposed = base + margin for every period and for the power
// charge. This is the only way an edited margin or base becomes a price.
func ApplyOverrides(bases, margins PriceConfig) PriceConfig {
	return PriceConfig{
		Peak:         bases.Peak + margins.Peak,
		Full:         bases.Full + margins.Full,
		OffPeak:      bases.OffPeak + margins.OffPeak,
		SuperOffPeak: bases.SuperOffPeak + margins.SuperOffPeak,
		PowerDaily:   bases.PowerDaily + margins.PowerDaily,
	}
}

// MarginFromFinalPrice back-solves the margin when the user edits the
// final proposed price directly. The margin is derived, never stored
// independently of the base + margin identity.
func MarginFromFinalPrice(base, finalPrice float64) float64 {
	return round6(finalPrice - base)
}
