// Package store persists client portfolio records: one saved snapshot of
// (invoice, simulation) per customer tax id per consultant.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/pricing"
)

// ClientRecord is a persisted snapshot of a simulated client.
type ClientRecord struct {
	ID         string                   `json:"id"`
	Data       invoice.InvoiceData      `json:"data"`
	Simulation pricing.SimulationResult `json:"simulation"`
	CreatedAt  time.Time                `json:"created_at"`
}

// SaveResult is the business outcome of a save attempt. A NIF collision
// is a rejection with a message for the consultant, not an error.
type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Store reads and writes client records for per-consultant portfolios.
type Store struct {
	db *sql.DB
}

// New wraps an opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts or replaces a client record. One record per tax id: saving
// a new record under a NIF that already belongs to a different record is
// rejected with a structured message naming the existing client. A record
// without an id gets a fresh one.
func (s *Store) Save(ownerID string, rec ClientRecord) (SaveResult, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	var existingID, existingName string
	err := s.db.QueryRow(`
		SELECT id, client_name
		FROM clients
		WHERE owner_id = ? AND nif = ?
	`, ownerID, rec.Data.NIF).Scan(&existingID, &existingName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return SaveResult{}, fmt.Errorf("check nif uniqueness: %w", err)
	}
	if err == nil && existingID != rec.ID {
		return SaveResult{
			Success: false,
			Message: fmt.Sprintf("O NIF %s já existe no portfólio associado ao cliente %q.", rec.Data.NIF, existingName),
		}, nil
	}

	dataJSON, err := json.Marshal(rec.Data)
	if err != nil {
		return SaveResult{}, fmt.Errorf("marshal invoice data: %w", err)
	}
	simJSON, err := json.Marshal(rec.Simulation)
	if err != nil {
		return SaveResult{}, fmt.Errorf("marshal simulation: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SaveResult{}, fmt.Errorf("begin save transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM clients WHERE owner_id = ? AND id = ?`, ownerID, rec.ID); err != nil {
		_ = tx.Rollback()
		return SaveResult{}, fmt.Errorf("replace client record: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO clients (id, owner_id, nif, client_name, data_json, simulation_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, ownerID, rec.Data.NIF, rec.Data.ClientName, string(dataJSON), string(simJSON),
		createdAt.Format(time.RFC3339)); err != nil {
		_ = tx.Rollback()
		return SaveResult{}, fmt.Errorf("insert client record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("commit save transaction: %w", err)
	}

	return SaveResult{Success: true, Message: "Cliente gravado com sucesso."}, nil
}

// List returns the owner's portfolio, newest first.
func (s *Store) List(ownerID string) ([]ClientRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, data_json, simulation_json, created_at
		FROM clients
		WHERE owner_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query client records: %w", err)
	}
	defer rows.Close()

	records := make([]ClientRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client records: %w", err)
	}

	return records, nil
}

// Get fetches one record by id.
func (s *Store) Get(ownerID, recordID string) (ClientRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, data_json, simulation_json, created_at
		FROM clients
		WHERE owner_id = ? AND id = ?
	`, ownerID, recordID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ClientRecord{}, ErrNotFound
	}
	return rec, err
}

// Delete removes a record from the owner's portfolio. Deleting a record
// that does not exist is not an error.
func (s *Store) Delete(ownerID, recordID string) error {
	if _, err := s.db.Exec(`
		DELETE FROM clients WHERE owner_id = ? AND id = ?
	`, ownerID, recordID); err != nil {
		return fmt.Errorf("delete client record: %w", err)
	}
	return nil
}

// ErrNotFound is returned by Get for an unknown record id.
var ErrNotFound = errors.New("client record not found")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (ClientRecord, error) {
	var rec ClientRecord
	var dataJSON, simJSON, createdAt string
	if err := row.Scan(&rec.ID, &dataJSON, &simJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ClientRecord{}, err
		}
		return ClientRecord{}, fmt.Errorf("scan client record: %w", err)
	}

	if err := json.Unmarshal([]byte(dataJSON), &rec.Data); err != nil {
		return ClientRecord{}, fmt.Errorf("unmarshal invoice data: %w", err)
	}
	if err := json.Unmarshal([]byte(simJSON), &rec.Simulation); err != nil {
		return ClientRecord{}, fmt.Errorf("unmarshal simulation: %w", err)
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		// Tolerate the sqlite CURRENT_TIMESTAMP format from older rows.
		t, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	}
	rec.CreatedAt = t

	return rec, nil
}
