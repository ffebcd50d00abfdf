package insights

import (
	"fmt"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
)

// Fallback is the heuristic narrative engine, used when no API key is
// configured or the model call fails. Deterministic for a given input.
func Fallback(inv invoice.InvoiceData, sim pricing.SimulationResult) pricing.StrategicAnalysis {
	dominant := dominantExposure(inv)

	hedging := "Estratégia Híbrida: Manter indexação no Vazio para capturar baixas de mercado, com teto máximo (Cap) nas horas de Ponta."
	if sim.VulnerabilityScore > 7 {
		hedging = "Estratégia Defensiva: Recomendamos fixar preço a 12 meses (Fixed Price Swap) para blindar o orçamento contra a volatilidade do mercado Spot."
	}

	return pricing.StrategicAnalysis{
		ExecutiveSummary: fmt.Sprintf(
			"Auditoria Watton (Modo Analítico): Identificada oportunidade de %.0f€ (%.1f%%) através da otimização de tarifário. O perfil de consumo revela elevada exposição em %s, mitigada pela nossa nova estrutura de preços.",
			sim.SavingsAnnual, sim.SavingsPercent, dominant),
		HedgingStrategy: hedging,
		TacticalMeasures: []pricing.TacticalMeasure{
			{
				Action:              "Otimização de Potência (kVA)",
				Impact:              "Ajustar a potência contratada à carga real máxima registada.",
				Difficulty:          "Baixa",
				EstimatedSavingsPct: 2.5,
			},
			{
				Action:              fmt.Sprintf("Desvio de Carga (%s → Vazio)", dominant),
				Impact:              fmt.Sprintf("Transferir processos intensivos de %s para horas de Vazio.", dominant),
				Difficulty:          "Média",
				EstimatedSavingsPct: 4.8,
			},
			{
				Action:              "Revisão Fiscal (ISP)",
				Impact:              "Auditoria à taxa de Imposto sobre Produtos Petrolíferos.",
				Difficulty:          "Alta",
				EstimatedSavingsPct: 1.2,
			},
		},
	}
}

// dominantExposure names the consumption bucket the customer leans on the
// most, folding off-peak and super-off-peak together.
func dominantExposure(inv invoice.InvoiceData) string {
	buckets := []struct {
		name string
		kwh  float64
	}{
		{pricing.PeriodPeak, inv.ConsumptionPeak},
		{pricing.PeriodFull, inv.ConsumptionFull},
		{pricing.PeriodOffPeak, inv.ConsumptionOffPeak + inv.ConsumptionSuperOffPeak},
	}

	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.kwh > best.kwh {
			best = b
		}
	}
	return best.name
}
