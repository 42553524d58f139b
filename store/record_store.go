package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/utils"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("record not found")
)

// RecordStore persists the reservation and order collections as flat JSON
// arrays, one file per collection. Every mutation is a full
// load-modify-rewrite of the file, serialized by a per-collection mutex;
// the rewrite goes through a temp file and rename so a failed write never
// leaves a half-written collection behind.
type RecordStore struct {
	paths map[models.Collection]string
	locks map[models.Collection]*sync.Mutex
}

func NewRecordStore(dataDir string) *RecordStore {
	return &RecordStore{
		paths: map[models.Collection]string{
			models.CollectionReservations: filepath.Join(dataDir, "reservations.json"),
			models.CollectionOrders:       filepath.Join(dataDir, "orders.json"),
		},
		locks: map[models.Collection]*sync.Mutex{
			models.CollectionReservations: {},
			models.CollectionOrders:       {},
		},
	}
}

// Load returns the persisted collection in stored order. A collection whose
// file does not exist yet is simply empty.
func (s *RecordStore) Load(col models.Collection) ([]models.Record, error) {
	return s.read(col)
}

// Append assigns the next id, stamps created_at and the initial status, and
// rewrites the collection with the new record at the end. The stored record
// is returned.
func (s *RecordStore) Append(col models.Collection, rec models.Record) (models.Record, error) {
	s.locks[col].Lock()
	defer s.locks[col].Unlock()

	records, err := s.read(col)
	if err != nil {
		return models.Record{}, err
	}

	rec.ID = nextID(records)
	rec.Status = models.StatusNew
	rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	rec.Email = nil

	records = append(records, rec)
	if err := s.write(col, records); err != nil {
		return models.Record{}, err
	}
	return rec, nil
}

// PatchNotification records the outcome of a delivery attempt on the record
// with the given id. An unknown id is a no-op: nothing is rewritten.
func (s *RecordStore) PatchNotification(col models.Collection, id int64, sent bool, errMsg string) error {
	s.locks[col].Lock()
	defer s.locks[col].Unlock()

	records, err := s.read(col)
	if err != nil {
		return err
	}
	idx := findByID(records, id)
	if idx < 0 {
		return nil
	}
	if sent {
		errMsg = ""
	}
	records[idx].Email = &models.EmailNotification{
		Sent:      sent,
		Error:     errMsg,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return s.write(col, records)
}

// SetStatus moves the record with the given id to status. The status must
// be a member of the collection's enum; any member may follow any other,
// there is no transition ordering. Nothing is written when the status is
// invalid or the id is unknown.
func (s *RecordStore) SetStatus(col models.Collection, id int64, status string) error {
	if !col.ValidStatus(status) {
		return fmt.Errorf("%w: %q is not one of %v for %s", ErrInvalidStatus, status, col.AllowedStatuses(), col)
	}

	s.locks[col].Lock()
	defer s.locks[col].Unlock()

	records, err := s.read(col)
	if err != nil {
		return err
	}
	idx := findByID(records, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s id %d", ErrNotFound, col, id)
	}
	records[idx].Status = status
	return s.write(col, records)
}

func (s *RecordStore) read(col models.Collection) ([]models.Record, error) {
	data, err := os.ReadFile(s.paths[col])
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", col, err)
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", col, err)
	}
	return records, nil
}

func (s *RecordStore) write(col models.Collection, records []models.Record) error {
	path := s.paths[col]
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persist %s: %w", col, err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("persist %s: %w", col, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist %s: %w", col, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("persist %s: %w", col, err)
	}
	utils.InfoLogger.Printf("Wrote %d records to %s", len(records), path)
	return nil
}

// nextID is max(existing numeric ids)+1; an empty collection starts at 1.
// Ids are never reused because records are never removed.
func nextID(records []models.Record) int64 {
	var max int64
	for i := range records {
		if records[i].ID > max {
			max = records[i].ID
		}
	}
	return max + 1
}

// Rows with non-numeric ids are skipped rather than treated as errors.
func findByID(records []models.Record, id int64) int {
	for i := range records {
		if records[i].HasID() && records[i].ID == id {
			return i
		}
	}
	return -1
}
