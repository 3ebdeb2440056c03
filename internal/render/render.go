// Package render maps a markdown report plus an ordered photo set onto a
// fixed-layout, print-stable HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/document.html
var templateFS embed.FS

// documentTmpl is parsed once; rendering is deterministic.
var documentTmpl = template.Must(template.New("document.html").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).ParseFS(templateFS, "templates/document.html"))

// Photo is one appendix entry: a viewable image reference plus its caption.
type Photo struct {
	DataURL string
	Caption string
}

// Input is everything the renderer needs. It depends only on the markdown
// text and the photo set, never on how the markdown was produced.
type Input struct {
	Markdown  string
	Photos    []Photo
	OrgName   string
	CreatedAt time.Time
}

// documentData is the template payload.
type documentData struct {
	OrgName       string
	GeneratedDate string
	Body          template.HTML
	Photos        []Photo
}

// Document renders the full printable page: the fixed header block, the
// styled markdown body, and either the photo appendix (on its own page) or
// the archived-report notice when no photos are available.
func Document(in Input) (string, error) {
	body, err := convertMarkdown(in.Markdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = documentTmpl.Execute(&buf, documentData{
		OrgName:       in.OrgName,
		GeneratedDate: FormatDutchDate(in.CreatedAt),
		Body:          template.HTML(body),
		Photos:        in.Photos,
	})
	if err != nil {
		return "", fmt.Errorf("document template failed: %w", err)
	}
	return buf.String(), nil
}

// dutchMonths holds the Dutch month names for the long date format.
var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// FormatDutchDate formats a time as a Dutch long date, e.g. "1 maart 2024".
func FormatDutchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), dutchMonths[t.Month()-1], t.Year())
}
