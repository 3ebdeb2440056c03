package store

import (
	"testing"
)

func TestSQLite_DurabilityAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()

	backend, err := OpenSQLite(tmpDir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}

	s := Open(backend)
	rec, err := s.Append(sampleRecord("J. Jansen", "LD-001", 1234))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Simulate a process restart: a new backend over the same file.
	backend2, err := OpenSQLite(tmpDir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer backend2.Close()

	s2 := Open(backend2)
	got, err := s2.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.ClientName != "J. Jansen" || got.ReferenceNumber != "LD-001" ||
		got.Date != "2024-03-01" || got.Timestamp != 1234 || got.Markdown != rec.Markdown {
		t.Errorf("reloaded record differs: %+v", got)
	}
}

func TestSQLite_RemovePersists(t *testing.T) {
	tmpDir := t.TempDir()

	backend, err := OpenSQLite(tmpDir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	s := Open(backend)
	rec, err := s.Append(sampleRecord("A", "", 1))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Remove(rec.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	backend.Close()

	backend2, err := OpenSQLite(tmpDir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer backend2.Close()

	if s2 := Open(backend2); s2.Len() != 0 {
		t.Errorf("removed record survived restart, Len = %d", s2.Len())
	}
}

func TestSQLite_EmptyDatabaseLoadsEmpty(t *testing.T) {
	backend, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer backend.Close()

	records, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fresh database should load empty, got %d records", len(records))
	}
}

func TestSQLite_CorruptBlobRecovered(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenSQLite(tmpDir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer backend.Close()

	if _, err := backend.db.Exec(
		"INSERT INTO history (key, value) VALUES (?, ?)", historyKey, "{broken",
	); err != nil {
		t.Fatalf("seeding corrupt blob failed: %v", err)
	}

	// Load must fail, and Open must recover to an empty usable store.
	if _, err := backend.Load(); err == nil {
		t.Error("Load of corrupt blob should error")
	}
	s := Open(backend)
	if s.Len() != 0 {
		t.Errorf("store should start empty after corrupt load, Len = %d", s.Len())
	}
	if _, err := s.Append(sampleRecord("B", "", 2)); err != nil {
		t.Fatalf("Append after recovery failed: %v", err)
	}
}
