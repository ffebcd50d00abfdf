package pricing

import (
	"math"
	"strconv"
	"strings"
)

// BuildOverrides converts a batch of raw cell edits into an Overrides
// value against a prior simulation. Keys follow the result's field names:
// base_*, margin_* and proposed_* for ponta, cheia, vazio, super_vazio
// and potencia_dia.
//
// A proposed_* edit back-solves the margin against the (possibly
// just-edited) base, so the base + margin = proposed identity survives a
// direct final-price edit. Unparseable or NaN entries are dropped: a
// half-typed "0." or "-" must not touch the field it targets.
func BuildOverrides(prior SimulationResult, edits map[string]string) Overrides {
	var o Overrides

	o.BasePeak = parseEdit(edits, "base_ponta")
	o.BaseFull = parseEdit(edits, "base_cheia")
	o.BaseOffPeak = parseEdit(edits, "base_vazio")
	o.BaseSuperOffPeak = parseEdit(edits, "base_super_vazio")
	o.BasePowerDaily = parseEdit(edits, "base_potencia_dia")

	o.MarginPeak = parseEdit(edits, "margin_ponta")
	o.MarginFull = parseEdit(edits, "margin_cheia")
	o.MarginOffPeak = parseEdit(edits, "margin_vazio")
	o.MarginSuperOffPeak = parseEdit(edits, "margin_super_vazio")
	o.MarginPowerDaily = parseEdit(edits, "margin_potencia_dia")

	// Final-price edits win over a margin edit on the same field.
	bases := PriceConfig{
		Peak:         resolve(o.BasePeak, prior.Bases.Peak),
		Full:         resolve(o.BaseFull, prior.Bases.Full),
		OffPeak:      resolve(o.BaseOffPeak, prior.Bases.OffPeak),
		SuperOffPeak: resolve(o.BaseSuperOffPeak, prior.Bases.SuperOffPeak),
		PowerDaily:   resolve(o.BasePowerDaily, prior.Bases.PowerDaily),
	}

	if v := parseEdit(edits, "proposed_ponta"); v != nil {
		m := MarginFromFinalPrice(bases.Peak, *v)
		o.MarginPeak = &m
	}
	if v := parseEdit(edits, "proposed_cheia"); v != nil {
		m := MarginFromFinalPrice(bases.Full, *v)
		o.MarginFull = &m
	}
	if v := parseEdit(edits, "proposed_vazio"); v != nil {
		m := MarginFromFinalPrice(bases.OffPeak, *v)
		o.MarginOffPeak = &m
	}
	if v := parseEdit(edits, "proposed_super_vazio"); v != nil {
		m := MarginFromFinalPrice(bases.SuperOffPeak, *v)
		o.MarginSuperOffPeak = &m
	}
	if v := parseEdit(edits, "proposed_potencia_dia"); v != nil {
		m := MarginFromFinalPrice(bases.PowerDaily, *v)
		o.MarginPowerDaily = &m
	}

	return o
}

// parseEdit parses one raw edit. Missing key, unparseable text, NaN and
// ±Inf all yield nil, which downstream treats as "keep the prior value".
func parseEdit(edits map[string]string, key string) *float64 {
	raw, ok := edits[key]
	if !ok {
		return nil
	}

	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
