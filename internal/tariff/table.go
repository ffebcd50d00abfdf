// Package tariff holds the internal wholesale price sheet and the lookup
// that selects a base cost set for a supply point. The table is pure
// reference data loaded at init; lookups are total and never fail.
package tariff

import (
	"math"

	"github.com/wattonenergy/enersim/internal/invoice"
)

// PeriodCosts is one row of wholesale unit costs, €/kWh, 6-decimal precision.
type PeriodCosts struct {
	Peak         float64 `json:"ponta"`
	Full         float64 `json:"cheia"`
	OffPeak      float64 `json:"vazio"`
	SuperOffPeak float64 `json:"super_vazio"`
}

// BTNPowerThresholdKVA splits low-voltage-normal supply points between the
// two BTN price columns. The split is strict: exactly 20.7 kVA stays on
// the low sub-table.
const BTNPowerThresholdKVA = 20.7

type cycleRow struct {
	cycle invoice.TariffCycle
	costs PeriodCosts // €/MWh as printed on the price sheet
}

// category is an ordered list of cycle rows. Order matters: the final
// fallback picks the first declared cycle.
type category []cycleRow

// Forward price sheet, reference row "Inicio Q+1 12 meses"
// (01.01.2026 – 31.12.2026). Values in €/MWh.
var (
	btnLow = category{
		{invoice.CycleSimple, PeriodCosts{Peak: 90.338}},
		{invoice.CycleBiHourly, PeriodCosts{Full: 89.531, OffPeak: 90.224}},
		{invoice.CycleTriHourly, PeriodCosts{Peak: 100.570, Full: 85.055, OffPeak: 93.079}},
	}
	btnHigh = category{
		{invoice.CycleSimple, PeriodCosts{Peak: 97.498}},
		{invoice.CycleBiHourly, PeriodCosts{Full: 84.300, OffPeak: 90.375}},
		{invoice.CycleTriHourly, PeriodCosts{Peak: 99.777, Full: 85.016, OffPeak: 90.224}},
	}
	bte = category{
		{invoice.CycleTetraHourly, PeriodCosts{Peak: 94.782, Full: 86.418, OffPeak: 83.063, SuperOffPeak: 80.196}},
		{invoice.CycleTriHourly, PeriodCosts{Peak: 95.017, Full: 87.820, OffPeak: 84.211}},
	}
	mt = category{
		{invoice.CycleTetraHourly, PeriodCosts{Peak: 84.589, Full: 81.126, OffPeak: 75.210, SuperOffPeak: 73.843}},
		{invoice.CycleTriHourly, PeriodCosts{Peak: 93.918, Full: 79.445, OffPeak: 74.253}},
	}
)

// Network access tariffs (TAR), €/kVA/day power component per voltage key.
var accessPowerDaily = map[invoice.VoltageLevel]float64{
	invoice.VoltageBTE: 0.0150,
	invoice.VoltageBTN: 0.0250,
	invoice.VoltageMT:  0.0100,
	invoice.VoltageBT:  0.0200,
}

func init() {
	for _, cat := range []category{btnLow, btnHigh, bte, mt} {
		if len(cat) == 0 {
			panic("tariff: empty category table")
		}
	}
}

// LookupBaseCost returns the wholesale unit cost set for the given voltage
// class, billing cycle and contracted power. Selection rules:
//
//   - MT and AT use the MT table; BTE its own; every other class (BTN, BT,
//     unknown) uses the BTN tables split by contracted power at 20.7 kVA.
//   - Within a category, the exact cycle wins; a missing cycle falls back
//     to the tri-hourly row, then to the first declared row.
//
// The lookup is total: any input combination yields a value.
func LookupBaseCost(v invoice.VoltageLevel, c invoice.TariffCycle, powerKVA float64) PeriodCosts {
	var cat category
	switch v {
	case invoice.VoltageMT, invoice.VoltageAT:
		cat = mt
	case invoice.VoltageBTE:
		cat = bte
	default:
		if powerKVA > BTNPowerThresholdKVA {
			cat = btnHigh
		} else {
			cat = btnLow
		}
	}

	row := selectCycle(cat, c)
	return PeriodCosts{
		Peak:         round6(row.Peak / 1000),
		Full:         round6(row.Full / 1000),
		OffPeak:      round6(row.OffPeak / 1000),
		SuperOffPeak: round6(row.SuperOffPeak / 1000),
	}
}

// PowerBaseCost returns the access-tariff power charge, €/kVA/day, for a
// voltage class. Unknown classes fall back to the generic BT entry.
func PowerBaseCost(v invoice.VoltageLevel) float64 {
	switch v {
	case invoice.VoltageMT, invoice.VoltageAT:
		return accessPowerDaily[invoice.VoltageMT]
	case invoice.VoltageBTE:
		return accessPowerDaily[invoice.VoltageBTE]
	case invoice.VoltageBTN:
		return accessPowerDaily[invoice.VoltageBTN]
	default:
		return accessPowerDaily[invoice.VoltageBT]
	}
}

func selectCycle(cat category, c invoice.TariffCycle) PeriodCosts {
	for _, row := range cat {
		if row.cycle == c {
			return row.costs
		}
	}
	for _, row := range cat {
		if row.cycle == invoice.CycleTriHourly {
			return row.costs
		}
	}
	return cat[0].costs
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
