package store

import (
	"testing"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(NewMemoryBackend())
}

func sampleRecord(client, ref string, ts int64) report.SavedReportRecord {
	return report.SavedReportRecord{
		ClientName:      client,
		ReferenceNumber: ref,
		Date:            "2024-03-01",
		Timestamp:       ts,
		Markdown:        "# Rapport\n\nInhoud.",
	}
}

func TestAppend_AssignsID(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Append(sampleRecord("J. Jansen", "LD-001", 1000))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("Append should assign an ID")
	}

	got, err := s.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ClientName != "J. Jansen" || got.ReferenceNumber != "LD-001" {
		t.Errorf("stored record fields do not match: %+v", got)
	}
}

func TestAppend_KeepsCallerID(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord("X", "", 1)
	rec.ID = "custom-id"

	out, err := s.Append(rec)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if out.ID != "custom-id" {
		t.Errorf("ID = %q, want custom-id", out.ID)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.Append(sampleRecord("A", "R-1", 1))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := s.Remove("does-not-exist"); err != nil {
		t.Errorf("Remove of absent id should be a no-op, got: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 after no-op remove", s.Len())
	}

	if err := s.Remove(rec.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if err := s.Remove(rec.ID); err != nil {
		t.Errorf("second Remove should be a no-op, got: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("want NotFound, got: %v", err)
	}
}

func TestList_StorageOrder_SortedByTimestampDesc(t *testing.T) {
	s := newTestStore(t)
	// Inserted out of timestamp order on purpose.
	for _, rec := range []report.SavedReportRecord{
		sampleRecord("eerste", "", 200),
		sampleRecord("tweede", "", 500),
		sampleRecord("derde", "", 100),
	} {
		if _, err := s.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	list := s.List()
	if list[0].ClientName != "eerste" || list[2].ClientName != "derde" {
		t.Error("List should return insertion order")
	}

	sorted := s.Sorted()
	if sorted[0].ClientName != "tweede" || sorted[1].ClientName != "eerste" || sorted[2].ClientName != "derde" {
		t.Errorf("Sorted order wrong: %v, %v, %v",
			sorted[0].ClientName, sorted[1].ClientName, sorted[2].ClientName)
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := newTestStore(t)
	for _, rec := range []report.SavedReportRecord{
		sampleRecord("Jan de Vries", "LD-001", 1),
		sampleRecord("MARIJAN", "LD-002", 2),
		sampleRecord("P. Pietersen", "LD-003", 3),
	} {
		if _, err := s.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got := s.Search("jan")
	if len(got) != 2 {
		t.Fatalf("Search(jan) returned %d records, want 2", len(got))
	}

	// Reference numbers match too.
	got = s.Search("ld-003")
	if len(got) != 1 || got[0].ClientName != "P. Pietersen" {
		t.Errorf("Search(ld-003) = %+v, want the Pietersen record", got)
	}

	if len(s.Search("niets")) != 0 {
		t.Error("Search with no matches should return an empty slice")
	}
}

func TestOpen_CorruptBlobStartsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Seed([]byte("{not json"))

	s := Open(backend)
	if s.Len() != 0 {
		t.Errorf("corrupt blob should yield an empty store, got %d records", s.Len())
	}

	// The store must remain usable after recovery.
	if _, err := s.Append(sampleRecord("A", "", 1)); err != nil {
		t.Fatalf("Append after recovery failed: %v", err)
	}
}

func TestHistoryBlob_SchemaVersion(t *testing.T) {
	data, err := EncodeHistory([]report.SavedReportRecord{sampleRecord("A", "R", 1)})
	if err != nil {
		t.Fatalf("EncodeHistory failed: %v", err)
	}
	records, err := DecodeHistory(data)
	if err != nil {
		t.Fatalf("DecodeHistory failed: %v", err)
	}
	if len(records) != 1 || records[0].ClientName != "A" {
		t.Errorf("round trip lost data: %+v", records)
	}
}
