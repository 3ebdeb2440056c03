// Package pipeline orchestrates report generation: validate, compose the
// instruction, encode the photos, call the generator once, and archive the
// result before it is shown.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/media"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/prompt"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/store"
)

// Generator is the narrow seam to the generative service: one attempt per
// call, text out or a typed failure. Tests substitute a deterministic
// stand-in here.
type Generator interface {
	Generate(ctx context.Context, instruction string, blocks []media.Block) (string, error)
}

// GenerateInput is one generation request as captured from the form.
type GenerateInput struct {
	Metadata report.ProjectMetadata
	Notes    string
	Photos   []report.PhotoItem
}

// GenerateOutput carries the archived record and the live report.
type GenerateOutput struct {
	Record report.SavedReportRecord
	Report report.GeneratedReport
}

// Session ties one generator and one store to a single user session. Only
// one generation call may be in flight at a time; Reset abandons interest
// in an outstanding call without cancelling it.
type Session struct {
	generator Generator
	store     *store.Store
	now       func() time.Time

	mu       sync.Mutex
	inFlight bool
	epoch    uint64
}

// NewSession creates a Session.
func NewSession(generator Generator, st *store.Store) *Session {
	return &Session{
		generator: generator,
		store:     st,
		now:       time.Now,
	}
}

// Generate runs the full pipeline. On success exactly one record has been
// appended to the store before the report is returned; on any failure the
// store is untouched. A second call while one is outstanding fails
// immediately instead of queueing.
func (s *Session) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, errors.NewConflict("er wordt al een rapport gegenereerd; wacht tot het klaar is")
	}
	s.inFlight = true
	epoch := s.epoch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// Fail fast before any request is composed.
	if err := report.ValidateForGeneration(input.Metadata, len(input.Photos)); err != nil {
		return nil, err
	}

	instruction := prompt.Compose(input.Metadata, input.Notes, report.Captions(input.Photos))

	blocks, err := media.EncodeAll(ctx, input.Photos)
	if err != nil {
		return nil, err
	}

	markdown, err := s.generator.Generate(ctx, instruction, blocks)
	if err != nil {
		return nil, err
	}

	// A result that lands after a reset belongs to an abandoned session; it
	// must not be archived and must not overwrite newer state.
	s.mu.Lock()
	stale := s.epoch != epoch
	s.mu.Unlock()
	if stale {
		return nil, errors.NewConflict("de sessie is opnieuw gestart; het resultaat is vervallen")
	}

	timestamp := s.now().UnixMilli()
	record, err := s.store.Append(report.SavedReportRecord{
		ClientName:      input.Metadata.ClientName,
		ReferenceNumber: input.Metadata.ReferenceNumber,
		Date:            input.Metadata.Date,
		Timestamp:       timestamp,
		Markdown:        markdown,
	})
	if err != nil {
		return nil, err
	}

	return &GenerateOutput{
		Record: record,
		Report: report.GeneratedReport{Markdown: markdown, Timestamp: timestamp},
	}, nil
}

// Reset clears interest in any in-flight generation. The underlying request
// is not cancelled; its result is dropped when it arrives.
func (s *Session) Reset() {
	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()
}
