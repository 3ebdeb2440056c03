package report

import (
	"encoding/base64"
	"fmt"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
)

// ProjectMetadata holds the client and site details entered for one
// inspection. Date is a calendar date in ISO form (YYYY-MM-DD), no time
// component. All fields may be empty at the data-model level; the
// generation precondition lives in ValidateForGeneration.
type ProjectMetadata struct {
	ClientName      string `json:"client_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Date            string `json:"date"`
	ReferenceNumber string `json:"reference_number"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// PhotoItem is one uploaded damage photo. It owns its payload; PreviewURL
// derives a view from it that is only meaningful while the item is live.
// Order within the photo slice is significant: it drives the "Foto N"
// numbering in both the composed instruction and the rendered document.
type PhotoItem struct {
	ID       string
	Data     []byte
	MIMEType string
	Caption  string
}

// PreviewURL returns a data URL for the photo payload, suitable for
// embedding in the rendered document.
func (p *PhotoItem) PreviewURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.MIMEType, base64.StdEncoding.EncodeToString(p.Data))
}

// GeneratedReport is the transient result of one successful generation
// call. At most one instance is live per session; the next generation
// supersedes it entirely.
type GeneratedReport struct {
	Markdown  string `json:"markdown"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// SavedReportRecord is the persisted, photo-less representation of a
// generated report. Records are append-only and never mutated; deletion by
// ID is the only removal path. Client name, reference and inspection date
// are denormalized so the archive can be listed without parsing markdown.
type SavedReportRecord struct {
	ID              string `json:"id"`
	ClientName      string `json:"client_name"`
	ReferenceNumber string `json:"reference_number"`
	Date            string `json:"date"` // inspection date, YYYY-MM-DD
	Timestamp       int64  `json:"timestamp"`
	Markdown        string `json:"markdown"`
}

// ValidateForGeneration enforces the generation precondition: at least one
// photo, and a non-empty client name and address. Phone and email stay
// optional. Messages are the user-facing Dutch strings.
func ValidateForGeneration(meta ProjectMetadata, photoCount int) error {
	if photoCount == 0 {
		return errors.NewValidation("Upload ten minste één foto om een rapport te kunnen genereren.")
	}
	if meta.ClientName == "" || meta.Address == "" {
		return errors.NewValidation("Vul de naam van de klant en het adres in.")
	}
	return nil
}

// Captions returns the captions of the given photos in order.
func Captions(photos []PhotoItem) []string {
	captions := make([]string, len(photos))
	for i, p := range photos {
		captions[i] = p.Caption
	}
	return captions
}
