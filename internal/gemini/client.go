// Package gemini implements the generation client: one multimodal request
// per invocation against the Gemini API, no retries.
package gemini

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/media"
)

// Client wraps a genai client for report generation.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a Client. A missing API key is a configuration error: the
// session cannot generate anything without external intervention.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.NewConfiguration("GEMINI_API_KEY ontbreekt; stel de omgevingsvariabele in")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewConfiguration(fmt.Sprintf("Gemini client kon niet worden aangemaakt: %v", err))
	}

	return &Client{client: client, model: model}, nil
}

// Generate issues exactly one request carrying the composed instruction and
// every encoded photo jointly, so the model can cross-reference captions to
// "Foto N". It returns the produced markdown or a typed failure; retrying
// is the caller's call, never this client's.
func (c *Client) Generate(ctx context.Context, instruction string, blocks []media.Block) (string, error) {
	parts := make([]*genai.Part, 0, len(blocks)+1)
	parts = append(parts, &genai.Part{Text: instruction})

	for i, block := range blocks {
		data, err := block.Bytes()
		if err != nil {
			return "", errors.NewIO(i+1, err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: block.MIMEType,
				Data:     data,
			},
		})
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", classifyError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.NewGeneration("de AI gaf een leeg antwoord terug; probeer het opnieuw")
	}
	return text, nil
}

// classifyError maps a genai call failure onto the error taxonomy.
// Credential rejections are fatal configuration errors; everything the
// service answered with is a generation failure; anything that never
// reached the service is transport.
func classifyError(err error) error {
	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return errors.NewConfiguration(fmt.Sprintf("Gemini weigerde de API key: %s", apiErr.Message))
		case apiErr.Code == 400 && strings.Contains(apiErr.Message, "API key"):
			return errors.NewConfiguration(fmt.Sprintf("ongeldige API key: %s", apiErr.Message))
		case apiErr.Code == 429 || apiErr.Code >= 500:
			return errors.NewTransport(err)
		default:
			return errors.NewGeneration(fmt.Sprintf("de AI-dienst weigerde het verzoek: %s", apiErr.Message))
		}
	}
	return errors.NewTransport(err)
}
