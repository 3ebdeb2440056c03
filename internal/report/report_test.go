package report

import (
	"strings"
	"testing"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
)

func validMetadata() ProjectMetadata {
	return ProjectMetadata{
		ClientName: "J. Jansen",
		Address:    "Kerkstraat 1",
		City:       "Utrecht",
		Date:       "2024-03-01",
	}
}

func TestValidateForGeneration_OK(t *testing.T) {
	if err := ValidateForGeneration(validMetadata(), 1); err != nil {
		t.Fatalf("ValidateForGeneration failed: %v", err)
	}
}

func TestValidateForGeneration_ZeroPhotos(t *testing.T) {
	err := ValidateForGeneration(validMetadata(), 0)
	if !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("want ValidationError, got: %v", err)
	}
	if !strings.Contains(err.Error(), "foto") {
		t.Errorf("message should mention the missing photo, got: %v", err)
	}
}

func TestValidateForGeneration_MissingClientName(t *testing.T) {
	meta := validMetadata()
	meta.ClientName = ""
	if err := ValidateForGeneration(meta, 2); !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("want ValidationError, got: %v", err)
	}
}

func TestValidateForGeneration_MissingAddress(t *testing.T) {
	meta := validMetadata()
	meta.Address = ""
	if err := ValidateForGeneration(meta, 2); !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("want ValidationError, got: %v", err)
	}
}

func TestValidateForGeneration_PhoneAndEmailOptional(t *testing.T) {
	meta := validMetadata()
	meta.Phone = ""
	meta.Email = ""
	if err := ValidateForGeneration(meta, 1); err != nil {
		t.Fatalf("empty phone/email must not block generation: %v", err)
	}
}

func TestPreviewURL(t *testing.T) {
	p := PhotoItem{ID: "p1", Data: []byte{0xFF, 0xD8, 0xFF}, MIMEType: "image/jpeg"}
	url := p.PreviewURL()
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("PreviewURL = %q, want data URL prefix", url)
	}
}

func TestCaptions_PreservesOrderAndEmpties(t *testing.T) {
	photos := []PhotoItem{
		{ID: "a", Caption: "Vochtplek plafond"},
		{ID: "b", Caption: ""},
		{ID: "c", Caption: "Kitnaad douche"},
	}
	got := Captions(photos)
	want := []string{"Vochtplek plafond", "", "Kitnaad douche"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("caption[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
