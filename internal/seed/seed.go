// Package seed populates a fresh development database with a demo client
// so the portfolio views have something to show. Production databases are
// never seeded.
package seed

import (
	"database/sql"
	"fmt"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
	"github.com/wattonenergy/enersim/internal/store"
)

const (
	demoOwnerID    = "consultant_01"
	demoClientNIF  = "503124879"
	demoClientName = "Metalúrgica Atlântico, Lda."
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the demo client is
// inserted once and left alone afterwards.
func Run(db *sql.DB) (Stats, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM clients WHERE owner_id = ? AND nif = ? LIMIT 1)
	`, demoOwnerID, demoClientNIF).Scan(&exists)
	if err != nil {
		return Stats{}, fmt.Errorf("check demo client existence: %w", err)
	}
	if exists {
		return Stats{}, nil
	}

	inv := demoInvoice()
	sim := pricing.Simulate(inv)

	result, err := store.New(db).Save(demoOwnerID, store.ClientRecord{
		Data:       inv,
		Simulation: sim,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("save demo client: %w", err)
	}
	if !result.Success {
		return Stats{}, fmt.Errorf("save demo client rejected: %s", result.Message)
	}

	return Stats{Inserts: 1}, nil
}

func demoInvoice() invoice.InvoiceData {
	inv := invoice.Default()
	inv.ClientName = demoClientName
	inv.NIF = demoClientNIF
	inv.Address = "Zona Industrial da Maia, Lote 12"
	inv.CPE = "PT0002000012345678AB"
	inv.Voltage = invoice.VoltageBTN
	inv.Cycle = invoice.CycleTriHourly
	inv.ContractedPowerKVA = 34.5
	inv.StartDate = "2025-10-01"
	inv.EndDate = "2025-10-31"
	inv.ConsumptionPeak = 1240
	inv.ConsumptionFull = 2180
	inv.ConsumptionOffPeak = 860
	inv.PricePeak = 0.1492
	inv.PriceFull = 0.1218
	inv.PriceOffPeak = 0.0974
	inv.PowerPricePerDay = 1.18
	inv.TotalWithVAT = 812.44
	return inv
}
