// Package insights generates the strategic narrative attached to a
// proposal: an executive summary, a hedging recommendation and tactical
// measures. It calls Gemini when a key is configured and falls back to a
// deterministic heuristic otherwise, so a proposal always gets a
// narrative.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
)

const modelName = "gemini-2.0-flash-001"

// Generator produces strategic analyses for simulated proposals.
type Generator struct {
	apiKey string
}

// NewGenerator returns a Generator. An empty key is valid: every call
// then uses the heuristic engine.
func NewGenerator(apiKey string) *Generator {
	return &Generator{apiKey: apiKey}
}

// Generate returns a strategic analysis for the invoice and simulation.
// Any model failure degrades to the heuristic fallback; Generate itself
// never fails.
func (g *Generator) Generate(ctx context.Context, inv invoice.InvoiceData, sim pricing.SimulationResult) pricing.StrategicAnalysis {
	if g.apiKey == "" || sim.CurrentAnnual == 0 {
		return Fallback(inv, sim)
	}

	analysis, err := g.generateWithModel(ctx, inv, sim)
	if err != nil {
		return Fallback(inv, sim)
	}
	return analysis
}

func (g *Generator) generateWithModel(ctx context.Context, inv invoice.InvoiceData, sim pricing.SimulationResult) (pricing.StrategicAnalysis, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return pricing.StrategicAnalysis{}, err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"executive_summary": {Type: genai.TypeString},
			"hedging_strategy":  {Type: genai.TypeString},
			"tactical_measures": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"action":                {Type: genai.TypeString},
						"impact":                {Type: genai.TypeString},
						"difficulty":            {Type: genai.TypeString},
						"estimated_savings_pct": {Type: genai.TypeNumber},
					},
				},
			},
		},
		Required: []string{"executive_summary", "hedging_strategy", "tactical_measures"},
	}

	prompt := fmt.Sprintf(`Atua como CFO Advisor e Estrategista de Mercado (Watton Energy).
Analisa a fatura de %q vs a proposta Watton.

DADOS FINANCEIROS:
- Custo Atual (Anual): %.0f€
- Poupança Total (Anual): %.0f€ (%.1f%%)
- Score Vulnerabilidade: %s

OBJETIVO:
Gera um relatório executivo curto e direto que justifique a mudança para a Watton,
com uma estratégia de hedging e exatamente 3 medidas táticas.`,
		inv.ClientName, sim.CurrentAnnual, sim.SavingsAnnual, sim.SavingsPercent, sim.VulnerabilityLabel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return pricing.StrategicAnalysis{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return pricing.StrategicAnalysis{}, fmt.Errorf("empty model response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			continue
		}
		var analysis pricing.StrategicAnalysis
		if err := json.Unmarshal([]byte(text), &analysis); err != nil {
			return pricing.StrategicAnalysis{}, fmt.Errorf("decode model response: %w", err)
		}
		return analysis, nil
	}

	return pricing.StrategicAnalysis{}, fmt.Errorf("no text part in model response")
}
