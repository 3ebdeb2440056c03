package store

import "github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"

// MemoryBackend keeps the collection in process memory only. It exists for
// tests and for running without a durable directory; the serialization
// round trip is kept so it exercises the same codec as the SQLite backend.
type MemoryBackend struct {
	blob []byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Seed overwrites the raw stored blob. Tests use it to simulate corrupt or
// legacy persisted data.
func (b *MemoryBackend) Seed(blob []byte) {
	b.blob = blob
}

// Load decodes the stored blob, or returns an empty collection.
func (b *MemoryBackend) Load() ([]report.SavedReportRecord, error) {
	if b.blob == nil {
		return nil, nil
	}
	return DecodeHistory(b.blob)
}

// Save encodes and stores the collection.
func (b *MemoryBackend) Save(records []report.SavedReportRecord) error {
	data, err := EncodeHistory(records)
	if err != nil {
		return err
	}
	b.blob = data
	return nil
}
