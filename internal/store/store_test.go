package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE clients (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			nif TEXT NOT NULL,
			client_name TEXT NOT NULL,
			data_json TEXT NOT NULL,
			simulation_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE UNIQUE INDEX idx_clients_owner_nif ON clients (owner_id, nif);
	`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

func testRecord(name, nif string) ClientRecord {
	inv := invoice.Default()
	inv.ClientName = name
	inv.NIF = nif
	inv.ConsumptionPeak = 1000
	inv.PricePeak = 0.15
	return ClientRecord{
		Data:       inv,
		Simulation: pricing.Simulate(inv),
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(newTestDB(t))

	res, err := s.Save("consultant_01", testRecord("Padaria Central, Lda.", "501234567"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !res.Success {
		t.Fatalf("save rejected: %s", res.Message)
	}

	list, err := s.List("consultant_01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d records, want 1", len(list))
	}

	got, err := s.Get("consultant_01", list[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data.ClientName != "Padaria Central, Lda." {
		t.Errorf("client name = %q", got.Data.ClientName)
	}
	if got.Data.NIF != "501234567" {
		t.Errorf("nif = %q", got.Data.NIF)
	}
	if got.Simulation.Proposed.Peak == 0 {
		t.Error("simulation did not round-trip")
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at did not round-trip")
	}
}

func TestSaveRejectsDuplicateNIF(t *testing.T) {
	s := New(newTestDB(t))

	if _, err := s.Save("consultant_01", testRecord("Padaria Central, Lda.", "501234567")); err != nil {
		t.Fatalf("first save: %v", err)
	}

	res, err := s.Save("consultant_01", testRecord("Outro Cliente, SA", "501234567"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if res.Success {
		t.Fatal("expected a NIF-collision rejection")
	}
	if res.Message == "" {
		t.Fatal("rejection must carry a message for the consultant")
	}

	list, err := s.List("consultant_01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("rejected save must not write: got %d records", len(list))
	}
}

func TestSaveSameRecordUpdatesInPlace(t *testing.T) {
	s := New(newTestDB(t))

	if _, err := s.Save("consultant_01", testRecord("Padaria Central, Lda.", "501234567")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	list, _ := s.List("consultant_01")

	rec := list[0]
	rec.Data.ClientName = "Padaria Central e Filhos, Lda."
	res, err := s.Save("consultant_01", rec)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !res.Success {
		t.Fatalf("same-id update rejected: %s", res.Message)
	}

	got, err := s.Get("consultant_01", rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data.ClientName != "Padaria Central e Filhos, Lda." {
		t.Errorf("client name = %q, want updated", got.Data.ClientName)
	}

	list, _ = s.List("consultant_01")
	if len(list) != 1 {
		t.Fatalf("update duplicated the record: %d rows", len(list))
	}
}

func TestSameNIFAllowedAcrossOwners(t *testing.T) {
	s := New(newTestDB(t))

	if _, err := s.Save("consultant_01", testRecord("Padaria Central, Lda.", "501234567")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	res, err := s.Save("consultant_02", testRecord("Padaria Central, Lda.", "501234567"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if !res.Success {
		t.Fatalf("portfolios are per-owner, save rejected: %s", res.Message)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := New(newTestDB(t))

	older := testRecord("Cliente Antigo", "501111111")
	older.CreatedAt = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	newer := testRecord("Cliente Recente", "502222222")
	newer.CreatedAt = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	if _, err := s.Save("consultant_01", older); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if _, err := s.Save("consultant_01", newer); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	list, err := s.List("consultant_01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d records, want 2", len(list))
	}
	if list[0].Data.ClientName != "Cliente Recente" {
		t.Errorf("first record = %q, want newest", list[0].Data.ClientName)
	}
}

func TestDelete(t *testing.T) {
	s := New(newTestDB(t))

	if _, err := s.Save("consultant_01", testRecord("Padaria Central, Lda.", "501234567")); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, _ := s.List("consultant_01")

	if err := s.Delete("consultant_01", list[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get("consultant_01", list[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op, not an error.
	if err := s.Delete("consultant_01", list[0].ID); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := New(newTestDB(t))

	if _, err := s.Get("consultant_01", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
