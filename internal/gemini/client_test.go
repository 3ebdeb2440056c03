package gemini

import (
	"context"
	stderrors "errors"
	"testing"

	"google.golang.org/genai"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
)

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "gemini-1.5-pro")
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Fatalf("want ConfigurationError, got: %v", err)
	}
}

func TestClassifyError_CredentialRejection(t *testing.T) {
	for _, code := range []int{401, 403} {
		err := classifyError(genai.APIError{Code: code, Message: "denied"})
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("code %d: want ConfigurationError, got: %v", code, err)
		}
	}
}

func TestClassifyError_InvalidKeyAs400(t *testing.T) {
	err := classifyError(genai.APIError{Code: 400, Message: "API key not valid"})
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("want ConfigurationError, got: %v", err)
	}
}

func TestClassifyError_ServiceUnavailable(t *testing.T) {
	for _, code := range []int{429, 500, 503} {
		err := classifyError(genai.APIError{Code: code, Message: "unavailable"})
		if !errors.Is(err, errors.ErrTransport) {
			t.Errorf("code %d: want TransportError, got: %v", code, err)
		}
		if !errors.Retryable(err) {
			t.Errorf("code %d: transport failures must be retryable", code)
		}
	}
}

func TestClassifyError_ServiceRejection(t *testing.T) {
	err := classifyError(genai.APIError{Code: 400, Message: "unsupported image"})
	if !errors.Is(err, errors.ErrGeneration) {
		t.Errorf("want GenerationError, got: %v", err)
	}
}

func TestClassifyError_NetworkFailure(t *testing.T) {
	err := classifyError(stderrors.New("dial tcp: connection refused"))
	if !errors.Is(err, errors.ErrTransport) {
		t.Errorf("want TransportError, got: %v", err)
	}
}
