// Package media converts photo payloads into transport-safe content blocks
// for the generative service and the rendered document.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

// encodeConcurrency bounds the number of photos encoded at once.
const encodeConcurrency = 4

// Block carries one photo in a text-safe encoding plus its declared media
// type. Encoding is lossless: Bytes returns the original payload exactly.
type Block struct {
	MIMEType string
	Payload  string // base64 (standard encoding)
}

// Bytes decodes the payload back to the original image bytes.
func (b Block) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(b.Payload)
}

// DataURL returns the block as a data URL for inline display.
func (b Block) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", b.MIMEType, b.Payload)
}

// Encode converts one photo into a Block. index is the photo's 0-based
// position, used only to name the photo in error messages. A nil payload
// means the upload handle went bad and is reported as an IO error.
func Encode(p report.PhotoItem, index int) (Block, error) {
	if p.Data == nil {
		return Block{}, errors.NewIO(index+1, nil)
	}
	return Block{
		MIMEType: p.MIMEType,
		Payload:  base64.StdEncoding.EncodeToString(p.Data),
	}, nil
}

// EncodeAll encodes every photo concurrently and reassembles the results in
// input order: blocks[i] always corresponds to photos[i]. A photo that
// fails does not abort the others; all per-photo failures are joined into
// one error after every photo has been attempted.
func EncodeAll(ctx context.Context, photos []report.PhotoItem) ([]Block, error) {
	blocks := make([]Block, len(photos))
	errs := make([]error, len(photos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(encodeConcurrency)
	for i, p := range photos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			blocks[i], errs[i] = Encode(p, i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, joinErrors(errs)
		}
	}
	return blocks, nil
}

// joinErrors collapses per-photo errors into a single error, keeping the
// first structured error as the representative for code-based handling.
func joinErrors(errs []error) error {
	var first error
	var msgs []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		if first == nil {
			first = err
		}
		msgs = append(msgs, err.Error())
	}
	if len(msgs) == 1 {
		return first
	}
	if rErr, ok := first.(*errors.ReportError); ok {
		return &errors.ReportError{
			Code:    rErr.Code,
			Status:  rErr.Status,
			Message: strings.Join(msgs, "; "),
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// DetectMIME determines the media type of an uploaded photo. The file
// extension wins when recognized; otherwise the payload is sniffed.
func DetectMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}
