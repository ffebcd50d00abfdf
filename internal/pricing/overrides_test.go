package pricing

import "testing"

func priorForEdits() SimulationResult {
	bases := PriceConfig{Peak: 0.0950, Full: 0.0780, OffPeak: 0.0650, SuperOffPeak: 0.0550, PowerDaily: 0.0150}
	proposed := PriceConfig{Peak: 0.138, Full: 0.1104, OffPeak: 0.0736, SuperOffPeak: 0.0605, PowerDaily: 0.9}
	return Assemble(CalculationResult{}, bases, proposed, nil)
}

func TestBuildOverrides_ParsesBaseAndMarginEdits(t *testing.T) {
	prior := priorForEdits()

	o := BuildOverrides(prior, map[string]string{
		"base_ponta":   "0.102",
		"margin_cheia": "0,035", // comma decimal
	})

	if o.BasePeak == nil {
		t.Fatal("base edit dropped")
	}
	nearlyEqual(t, "base peak", *o.BasePeak, 0.102)
	if o.MarginFull == nil {
		t.Fatal("margin edit dropped")
	}
	nearlyEqual(t, "margin full", *o.MarginFull, 0.035)
	if o.BaseFull != nil || o.MarginPeak != nil {
		t.Fatal("untouched fields must stay nil")
	}
}

func TestBuildOverrides_HalfTypedEditsAreDropped(t *testing.T) {
	prior := priorForEdits()

	o := BuildOverrides(prior, map[string]string{
		"base_ponta":     "-",
		"margin_cheia":   "",
		"base_vazio":     "0.05abc",
		"proposed_ponta": "NaN",
		"margin_vazio":   "+Inf",
	})

	if o.BasePeak != nil || o.MarginFull != nil || o.BaseOffPeak != nil ||
		o.MarginPeak != nil || o.MarginOffPeak != nil {
		t.Fatalf("partial edits leaked into overrides: %+v", o)
	}
}

func TestBuildOverrides_ProposedEditBackSolvesMargin(t *testing.T) {
	prior := priorForEdits()

	o := BuildOverrides(prior, map[string]string{"proposed_ponta": "0.130"})

	if o.MarginPeak == nil {
		t.Fatal("proposed edit did not produce a margin")
	}
	nearlyEqual(t, "back-solved margin", *o.MarginPeak, 0.130-prior.Bases.Peak)
	if o.BasePeak != nil {
		t.Fatal("proposed edit must not touch the base")
	}
}

func TestBuildOverrides_ProposedEditUsesEditedBase(t *testing.T) {
	prior := priorForEdits()

	o := BuildOverrides(prior, map[string]string{
		"base_ponta":     "0.100",
		"proposed_ponta": "0.140",
	})

	if o.BasePeak == nil || o.MarginPeak == nil {
		t.Fatalf("edits dropped: %+v", o)
	}
	nearlyEqual(t, "margin against edited base", *o.MarginPeak, 0.040)
}

func TestBuildOverrides_ProposedEditWinsOverMarginEdit(t *testing.T) {
	prior := priorForEdits()

	o := BuildOverrides(prior, map[string]string{
		"margin_ponta":   "0.070",
		"proposed_ponta": "0.120",
	})

	if o.MarginPeak == nil {
		t.Fatal("margin dropped")
	}
	nearlyEqual(t, "final-price edit wins", *o.MarginPeak, 0.120-prior.Bases.Peak)
}

func TestBuildOverrides_RoundTripThroughRecalculate(t *testing.T) {
	inv := testInvoice()
	prior := Simulate(inv)

	o := BuildOverrides(prior, map[string]string{"proposed_ponta": "0.125"})
	res := Recalculate(inv, prior, o)

	nearlyEqual(t, "proposed peak", res.Proposed.Peak, 0.125)
	nearlyEqual(t, "identity", res.Bases.Peak+res.Margins.Peak, res.Proposed.Peak)
}
