package invoice

// VoltageLevel is the regulatory connection-voltage category of a supply
// point. It determines which wholesale tariff table applies.
type VoltageLevel string

const (
	VoltageBTN VoltageLevel = "BTN"
	VoltageBTE VoltageLevel = "BTE"
	VoltageMT  VoltageLevel = "MT"
	VoltageAT  VoltageLevel = "AT" // Alta Tensão (> 45 kV)
	VoltageBT  VoltageLevel = "BT" // Baixa Tensão (genérico)
)

// TariffCycle is the number of time-of-use periods a tariff distinguishes.
type TariffCycle string

const (
	CycleSimple      TariffCycle = "Simples"
	CycleBiHourly    TariffCycle = "Bi-Horário"
	CycleTriHourly   TariffCycle = "Tri-Horário"
	CycleTetraHourly TariffCycle = "Tetra-Horário"
)

// TimeOption is the clock-cycle variant of the contract (daily vs weekly
// period boundaries). It is carried for reporting; it does not affect pricing.
type TimeOption string

const (
	TimeDaily            TimeOption = "Diário"
	TimeWeekly           TimeOption = "Semanal"
	TimeWeeklyHolidays   TimeOption = "Semanal c/ Feriados"
	TimeWeeklyNoHolidays TimeOption = "Semanal s/ Feriados"
)

// ReadingType says whether the invoice was billed on real or estimated
// meter readings.
type ReadingType string

const (
	ReadingReal      ReadingType = "Real"
	ReadingEstimated ReadingType = "Estimada"
	ReadingMixed     ReadingType = "Mista"
)

// InvoiceData is the normalized, user-confirmed view of one billing period
// of a customer's utility invoice. Numeric fields are always proper numbers
// once an InvoiceData exists: absence is zero, never missing.
type InvoiceData struct {
	ID string `json:"id,omitempty"`

	ClientName string `json:"nome_cliente"`
	NIF        string `json:"nif_cliente"`
	Address    string `json:"morada_cliente"`
	CPE        string `json:"cpe"`

	Voltage            VoltageLevel `json:"tensao_fornecimento"`
	Cycle              TariffCycle  `json:"ciclo"`
	TimeOption         TimeOption   `json:"opcao_horaria"`
	ContractedPowerKVA float64      `json:"potencia_contratada"`

	ReadingType        ReadingType `json:"leitura_tipo,omitempty"`
	AdditionalServices []string    `json:"servicos_adicionais,omitempty"`

	// Billing window, ISO dates (YYYY-MM-DD). May be empty; downstream
	// falls back to a 30-day period.
	StartDate string `json:"data_inicio"`
	EndDate   string `json:"data_fim"`

	// Energy consumption per time-of-use period, kWh.
	ConsumptionPeak         float64 `json:"consumo_ponta"`
	ConsumptionFull         float64 `json:"consumo_cheia"`
	ConsumptionOffPeak      float64 `json:"consumo_vazio"`
	ConsumptionSuperOffPeak float64 `json:"consumo_super_vazio"`

	// Current unit prices per time-of-use period, €/kWh.
	PricePeak         float64 `json:"preco_ponta"`
	PriceFull         float64 `json:"preco_cheia"`
	PriceOffPeak      float64 `json:"preco_vazio"`
	PriceSuperOffPeak float64 `json:"preco_super_vazio"`

	// Daily power charge, €/day.
	PowerPricePerDay float64 `json:"preco_potencia_dia"`

	// The invoice's stated total, VAT included.
	TotalWithVAT float64 `json:"total_fatura_com_iva"`
}

// Default returns a fresh, fully populated InvoiceData suitable for seeding
// a manual-entry form. It is a factory, not a shared value: callers get an
// independent copy every time.
func Default() InvoiceData {
	return InvoiceData{
		Voltage:            VoltageBTE,
		Cycle:              CycleTetraHourly,
		TimeOption:         TimeWeekly,
		ContractedPowerKVA: 41.4,
	}
}
