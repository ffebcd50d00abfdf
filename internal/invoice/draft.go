package invoice

import (
	"math"
	"strconv"
	"strings"
)

// Draft is the permissive, mid-edit representation of an invoice: every
// numeric field is held as a raw string so partial entries like "0." or
// "1,5" survive keystrokes. A Draft never reaches the pricing engine;
// it is committed into a strict InvoiceData first.
type Draft struct {
	ID string `json:"id,omitempty"`

	ClientName string `json:"nome_cliente"`
	NIF        string `json:"nif_cliente"`
	Address    string `json:"morada_cliente"`
	CPE        string `json:"cpe"`

	Voltage            string `json:"tensao_fornecimento"`
	Cycle              string `json:"ciclo"`
	TimeOption         string `json:"opcao_horaria"`
	ContractedPowerKVA string `json:"potencia_contratada"`

	ReadingType        string   `json:"leitura_tipo,omitempty"`
	AdditionalServices []string `json:"servicos_adicionais,omitempty"`

	StartDate string `json:"data_inicio"`
	EndDate   string `json:"data_fim"`

	ConsumptionPeak         string `json:"consumo_ponta"`
	ConsumptionFull         string `json:"consumo_cheia"`
	ConsumptionOffPeak      string `json:"consumo_vazio"`
	ConsumptionSuperOffPeak string `json:"consumo_super_vazio"`

	PricePeak         string `json:"preco_ponta"`
	PriceFull         string `json:"preco_cheia"`
	PriceOffPeak      string `json:"preco_vazio"`
	PriceSuperOffPeak string `json:"preco_super_vazio"`

	PowerPricePerDay string `json:"preco_potencia_dia"`
	TotalWithVAT     string `json:"total_fatura_com_iva"`
}

// Commit parses the draft into a strict InvoiceData. Numeric fields are
// normalized (comma decimal separators accepted, whitespace trimmed) and
// anything unparseable, NaN or infinite becomes 0: absence is zero, not
// missing. Commit never fails.
func (d Draft) Commit() InvoiceData {
	inv := InvoiceData{
		ID:         d.ID,
		ClientName: strings.TrimSpace(d.ClientName),
		NIF:        cleanNIF(d.NIF),
		Address:    strings.TrimSpace(d.Address),
		CPE:        strings.TrimSpace(d.CPE),

		Voltage:    VoltageLevel(strings.TrimSpace(d.Voltage)),
		Cycle:      TariffCycle(strings.TrimSpace(d.Cycle)),
		TimeOption: TimeOption(strings.TrimSpace(d.TimeOption)),

		ReadingType:        ReadingType(strings.TrimSpace(d.ReadingType)),
		AdditionalServices: d.AdditionalServices,

		StartDate: strings.TrimSpace(d.StartDate),
		EndDate:   strings.TrimSpace(d.EndDate),
	}

	inv.ContractedPowerKVA = ParseNumber(d.ContractedPowerKVA)

	inv.ConsumptionPeak = ParseNumber(d.ConsumptionPeak)
	inv.ConsumptionFull = ParseNumber(d.ConsumptionFull)
	inv.ConsumptionOffPeak = ParseNumber(d.ConsumptionOffPeak)
	inv.ConsumptionSuperOffPeak = ParseNumber(d.ConsumptionSuperOffPeak)

	inv.PricePeak = ParseNumber(d.PricePeak)
	inv.PriceFull = ParseNumber(d.PriceFull)
	inv.PriceOffPeak = ParseNumber(d.PriceOffPeak)
	inv.PriceSuperOffPeak = ParseNumber(d.PriceSuperOffPeak)

	inv.PowerPricePerDay = ParseNumber(d.PowerPricePerDay)
	inv.TotalWithVAT = ParseNumber(d.TotalWithVAT)

	return inv
}

// ParseNumber converts a raw user-entered numeric string to a float64.
// Comma decimal separators are accepted. Unparseable input, NaN and ±Inf
// all normalize to 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// cleanNIF strips everything but digits from a tax id.
func cleanNIF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
