package pricing

import (
	"math"
	"testing"

	"github.com/wattonenergy/enersim/internal/invoice"
)

func TestDeriveProposal_TargetsEightPercentDiscount(t *testing.T) {
	inv := invoice.Default()
	inv.PricePeak = 0.20
	inv.PriceFull = 0.16
	bases := PriceConfig{Peak: 0.0950, Full: 0.0780}

	proposed := DeriveProposal(inv, bases)

	nearlyEqual(t, "peak", proposed.Peak, 0.184)
	nearlyEqual(t, "full", proposed.Full, 0.1472)
}

func TestDeriveProposal_FloorsAtBasePlusMinMargin(t *testing.T) {
	inv := invoice.Default()
	// 8% off 0.15 is 0.138, above the base: no floor needed.
	// 8% off 0.096 is 0.08832, below the 0.0950 base: floored.
	inv.PricePeak = 0.15
	inv.PriceFull = 0.096
	bases := PriceConfig{Peak: 0.0950, Full: 0.0950}

	proposed := DeriveProposal(inv, bases)

	nearlyEqual(t, "peak", proposed.Peak, 0.138)
	nearlyEqual(t, "full floored", proposed.Full, 0.0950+MinMarginFloor)
}

func TestDeriveProposal_UnknownCurrentPriceGetsMarkup(t *testing.T) {
	inv := invoice.Default()
	bases := PriceConfig{Peak: 0.0950, Full: 0.0780, OffPeak: 0.0650, SuperOffPeak: 0.0550, PowerDaily: 0.0150}

	proposed := DeriveProposal(inv, bases)

	nearlyEqual(t, "peak", proposed.Peak, 0.0950*1.10)
	nearlyEqual(t, "full", proposed.Full, 0.0780*1.10)
	nearlyEqual(t, "off-peak", proposed.OffPeak, 0.0650*1.10)
	nearlyEqual(t, "super off-peak", proposed.SuperOffPeak, 0.0550*1.10)
	nearlyEqual(t, "power", proposed.PowerDaily, 0.0150*1.10)
}

func TestDeriveProposal_NeverAtOrBelowBase(t *testing.T) {
	bases := PriceConfig{Peak: 0.0950, Full: 0.0780, OffPeak: 0.0650, SuperOffPeak: 0.0550, PowerDaily: 0.0150}

	for _, current := range []float64{0, 0.001, 0.05, 0.0950, 0.10, 0.25} {
		inv := invoice.Default()
		inv.PricePeak = current
		proposed := DeriveProposal(inv, bases)
		if proposed.Peak <= bases.Peak {
			t.Errorf("current %v: proposed peak %v not above base %v", current, proposed.Peak, bases.Peak)
		}
	}
}

func TestApplyOverrides_ProposedIsBasePlusMargin(t *testing.T) {
	bases := PriceConfig{Peak: 0.0950, Full: 0.0780, OffPeak: 0.0650, SuperOffPeak: 0.0550, PowerDaily: 0.0150}
	margins := PriceConfig{Peak: 0.043, Full: 0.02, OffPeak: 0.005, SuperOffPeak: 0.001, PowerDaily: 0.885}

	proposed := ApplyOverrides(bases, margins)

	nearlyEqual(t, "peak", proposed.Peak, 0.138)
	nearlyEqual(t, "full", proposed.Full, 0.098)
	nearlyEqual(t, "off-peak", proposed.OffPeak, 0.07)
	nearlyEqual(t, "super off-peak", proposed.SuperOffPeak, 0.056)
	nearlyEqual(t, "power", proposed.PowerDaily, 0.9)
}

func TestResolve(t *testing.T) {
	v := 0.12
	nan := math.NaN()

	nearlyEqual(t, "present", resolve(&v, 0.5), 0.12)
	nearlyEqual(t, "absent keeps prior", resolve(nil, 0.5), 0.5)
	nearlyEqual(t, "NaN keeps prior", resolve(&nan, 0.5), 0.5)
}

func TestMarginFromFinalPrice(t *testing.T) {
	nearlyEqual(t, "simple", MarginFromFinalPrice(0.0950, 0.138), 0.043)
	nearlyEqual(t, "negative allowed", MarginFromFinalPrice(0.0950, 0.09), -0.005)
	nearlyEqual(t, "rounded to 6 places", MarginFromFinalPrice(0.1, 0.1234567), 0.023457)
}
