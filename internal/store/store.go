// Package store holds the report archive: an append-only, user-deletable
// collection of generated reports persisted through an injected backend.
package store

import (
	"crypto/rand"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

// CurrentSchemaVersion is the version tag written into the serialized
// collection. Bump this when the record shape changes.
const CurrentSchemaVersion = 1

// Backend is the injected durable store. Load reads the whole collection;
// Save rewrites it in full. There are no partial updates.
type Backend interface {
	Load() ([]report.SavedReportRecord, error)
	Save(records []report.SavedReportRecord) error
}

// Store is the in-process report collection. It is built for a single
// logical thread of control: every mutation completes its persistence write
// before returning, so a fresh Load always reflects the last mutation.
type Store struct {
	backend Backend
	records []report.SavedReportRecord
}

// Open loads the collection from the backend. An unreadable or corrupt
// backend never blocks the application: the store starts empty and the
// load failure is only logged.
func Open(backend Backend) *Store {
	records, err := backend.Load()
	if err != nil {
		log.Printf("history load failed, starting empty: %v", errors.NewStorageLoad(err))
		records = nil
	}
	return &Store{backend: backend, records: records}
}

// Append adds a record, assigning a fresh ULID when the caller has not, and
// persists the updated collection before making it visible.
func (s *Store) Append(rec report.SavedReportRecord) (report.SavedReportRecord, error) {
	if rec.ID == "" {
		id, err := generateULID()
		if err != nil {
			return report.SavedReportRecord{}, errors.NewInternal(err)
		}
		rec.ID = id
	}

	updated := append(append([]report.SavedReportRecord{}, s.records...), rec)
	if err := s.backend.Save(updated); err != nil {
		return report.SavedReportRecord{}, errors.NewInternal(err)
	}
	s.records = updated
	return rec, nil
}

// Remove deletes the record with the given id. Deletion is idempotent: an
// absent id is a no-op, not an error.
func (s *Store) Remove(id string) error {
	updated := make([]report.SavedReportRecord, 0, len(s.records))
	found := false
	for _, rec := range s.records {
		if rec.ID == id {
			found = true
			continue
		}
		updated = append(updated, rec)
	}
	if !found {
		return nil
	}
	if err := s.backend.Save(updated); err != nil {
		return errors.NewInternal(err)
	}
	s.records = updated
	return nil
}

// List returns the collection in storage (insertion) order. Display order
// is always re-derived via Sorted; storage order carries no meaning beyond
// persistence.
func (s *Store) List() []report.SavedReportRecord {
	out := make([]report.SavedReportRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Sorted returns the collection ordered by creation timestamp, newest
// first. This is the only order the archive is ever displayed in.
func (s *Store) Sorted() []report.SavedReportRecord {
	out := s.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Search returns the records whose client name or reference number contains
// the term, case-insensitively. Substring containment, nothing fuzzier.
func (s *Store) Search(term string) []report.SavedReportRecord {
	needle := strings.ToLower(term)
	out := make([]report.SavedReportRecord, 0)
	for _, rec := range s.Sorted() {
		if strings.Contains(strings.ToLower(rec.ClientName), needle) ||
			strings.Contains(strings.ToLower(rec.ReferenceNumber), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (report.SavedReportRecord, error) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return report.SavedReportRecord{}, errors.NewNotFound(id)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// historyBlob is the serialized form of the whole collection: one logical
// entry, tagged with a schema version so a future format change cannot be
// mistaken for corruption.
type historyBlob struct {
	SchemaVersion int                        `json:"schema_version"`
	Reports       []report.SavedReportRecord `json:"reports"`
}

// EncodeHistory serializes the collection for a backend.
func EncodeHistory(records []report.SavedReportRecord) ([]byte, error) {
	return json.Marshal(historyBlob{
		SchemaVersion: CurrentSchemaVersion,
		Reports:       records,
	})
}

// DecodeHistory deserializes a collection blob.
func DecodeHistory(data []byte) ([]report.SavedReportRecord, error) {
	var blob historyBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return blob.Reports, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
