package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
)

func TestFallback_ProducesThreeMeasures(t *testing.T) {
	inv := invoice.Default()
	sim := pricing.SimulationResult{}

	analysis := Fallback(inv, sim)

	if len(analysis.TacticalMeasures) != 3 {
		t.Fatalf("got %d tactical measures, want 3", len(analysis.TacticalMeasures))
	}
	if analysis.ExecutiveSummary == "" || analysis.HedgingStrategy == "" {
		t.Fatal("narrative fields must be populated")
	}
	for _, m := range analysis.TacticalMeasures {
		if m.Action == "" || m.Difficulty == "" || m.EstimatedSavingsPct <= 0 {
			t.Fatalf("incomplete measure: %+v", m)
		}
	}
}

func TestFallback_DefensiveHedgingForHighVulnerability(t *testing.T) {
	inv := invoice.Default()

	low := Fallback(inv, pricing.SimulationResult{VulnerabilityScore: 5})
	if !strings.Contains(low.HedgingStrategy, "Híbrida") {
		t.Errorf("score 5 hedging = %q, want hybrid strategy", low.HedgingStrategy)
	}

	high := Fallback(inv, pricing.SimulationResult{VulnerabilityScore: 9})
	if !strings.Contains(high.HedgingStrategy, "Defensiva") {
		t.Errorf("score 9 hedging = %q, want defensive strategy", high.HedgingStrategy)
	}
}

func TestFallback_NamesDominantPeriod(t *testing.T) {
	inv := invoice.Default()
	inv.ConsumptionPeak = 5000
	inv.ConsumptionFull = 1000

	analysis := Fallback(inv, pricing.SimulationResult{})

	if !strings.Contains(analysis.ExecutiveSummary, "Ponta") {
		t.Errorf("summary does not name the dominant period: %q", analysis.ExecutiveSummary)
	}
	if !strings.Contains(analysis.TacticalMeasures[1].Action, "Ponta") {
		t.Errorf("load-shift measure does not name the dominant period: %q", analysis.TacticalMeasures[1].Action)
	}
}

func TestFallback_FoldsOffPeakBuckets(t *testing.T) {
	inv := invoice.Default()
	inv.ConsumptionPeak = 1000
	inv.ConsumptionOffPeak = 600
	inv.ConsumptionSuperOffPeak = 600

	analysis := Fallback(inv, pricing.SimulationResult{})

	if !strings.Contains(analysis.ExecutiveSummary, "Vazio") {
		t.Errorf("combined off-peak should dominate: %q", analysis.ExecutiveSummary)
	}
}

func TestGenerate_FallsBackWithoutAPIKey(t *testing.T) {
	g := NewGenerator("")
	inv := invoice.Default()
	inv.ConsumptionPeak = 1000
	inv.PricePeak = 0.15
	sim := pricing.Simulate(inv)

	analysis := g.Generate(context.Background(), inv, sim)
	if len(analysis.TacticalMeasures) != 3 {
		t.Fatalf("expected the heuristic fallback narrative, got %+v", analysis)
	}
}
