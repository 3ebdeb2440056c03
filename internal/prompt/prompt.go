// Package prompt composes the single instruction document sent to the
// generative service, combining project metadata, inspector notes and
// per-photo captions with the formatting directives the model must follow.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

// Disclaimer is the fixed sentence every generated report must contain
// verbatim. The composed instruction demands its literal inclusion and the
// renderer never touches it.
const Disclaimer = "Dit rapport is opgesteld op basis van een visuele inspectie en de door de opdrachtgever aangeleverde informatie; aan de inhoud kunnen geen rechten worden ontleend."

// Compose builds the instruction text for one generation attempt. It is a
// pure function: identical inputs produce byte-identical output. Every
// metadata field is embedded verbatim, empty or not, and every caption gets
// its own 1-indexed line in photo order so the model can cross-reference
// the attached images as "Foto N".
func Compose(meta report.ProjectMetadata, notes string, captions []string) string {
	var b strings.Builder

	b.WriteString("Je bent een ervaren lekdetectie-specialist van BAMAB Lekdetectie Services.\n")
	b.WriteString("Stel op basis van onderstaande projectgegevens, de notities van de inspecteur en de bijgevoegde foto's een volledig, professioneel lekdetectierapport op voor de verzekering. Schrijf het rapport in het Nederlands, in Markdown.\n")

	b.WriteString("\nPROJECTGEGEVENS:\n")
	b.WriteString(fmt.Sprintf("- Klantnaam: %s\n", meta.ClientName))
	b.WriteString(fmt.Sprintf("- Adres: %s\n", meta.Address))
	b.WriteString(fmt.Sprintf("- Plaats: %s\n", meta.City))
	b.WriteString(fmt.Sprintf("- Inspectiedatum: %s\n", meta.Date))
	b.WriteString(fmt.Sprintf("- Referentienummer: %s\n", meta.ReferenceNumber))
	b.WriteString(fmt.Sprintf("- Telefoon: %s\n", meta.Phone))
	b.WriteString(fmt.Sprintf("- E-mail: %s\n", meta.Email))

	b.WriteString("\nNOTITIES VAN DE INSPECTEUR:\n")
	b.WriteString(notes)
	b.WriteString("\n")

	b.WriteString("\nFOTO'S (in deze volgorde bijgevoegd):\n")
	for i, caption := range captions {
		b.WriteString(fmt.Sprintf("Foto %d: %s\n", i+1, caption))
	}

	b.WriteString("\nOPMAAKINSTRUCTIES (verplicht):\n")
	b.WriteString("1. Geef de projectgegevens weer als een Markdown-tabel met twee kolommen: Veld en Waarde.\n")
	b.WriteString("2. Gebruik '##' voor hoofdstukken en '###' voor subonderdelen; geen andere kopniveaus.\n")
	b.WriteString("3. Gebruik opsommingstekens (bullet lists) voor opsommingen van bevindingen en aanbevelingen.\n")
	b.WriteString("4. Markeer belangrijke vaktermen vetgedrukt met **sterretjes**.\n")
	b.WriteString("5. Verwijs naar foto's uitsluitend met hun nummer, bijvoorbeeld 'Foto 1' of 'Foto 3', nooit met bestandsnamen.\n")
	b.WriteString("6. Neem onderstaande zin letterlijk en ongewijzigd op aan het einde van het rapport:\n")
	b.WriteString(fmt.Sprintf("\"%s\"\n", Disclaimer))

	return b.String()
}
