package proxy

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"google.golang.org/genai"

	"github.com/amplistack/amplistack/pkg/errors"
)

// Completer turns a transcript into the diagram JSON object.
type Completer interface {
	Complete(ctx context.Context, transcript string) (json.RawMessage, error)
}

// SystemPrompt instructs the model to answer with the diagram schema.
const SystemPrompt = `You are an Amplitude analytics solutions architect. Given a call transcript, extract architecture-ready details for building a data/activation diagram.

Return ONLY valid JSON with this shape:
{
  "architecture": { "goal": string, "scope": string },
  "entities": [
    { "name": string, "type": "product|datasource|activation|warehouse|pipeline|other", "layer": "marketing|experiences|sources|analysis|activation", "notes": string }
  ],
  "events": [
    { "name": string, "properties": [string], "notes": string }
  ],
  "flows": [
    { "from": string, "to": string, "description": string, "direction": "uni|bi" }
  ],
  "risks": [string],
  "assumptions": [string],
  "diagramNodes": [
    { "id": string, "label": string, "layer": "marketing|experiences|sources|analysis|activation", "kind": "amplitude|warehouse|activation|custom", "notes": string }
  ],
  "diagramEdges": [
    { "sourceId": string, "targetId": string, "label": string }
  ]
}

Rules:
- JSON only; no prose.
- Use best-effort extraction even if partial.
- Prefer concise labels; derive stable ids from names (lowercase, dashes).
- Map AmpliStack layers: marketing, experiences (owned surfaces/apps), sources (ingest), analysis (warehouse/BI/Amplitude), activation (destinations/engagement).
- For flows, keep edge labels descriptive (e.g., "track events", "sync audiences").
- If something is unknown, use an empty array or empty string rather than guessing.`

// temperature keeps extraction close to the transcript.
const temperature = 0.2

// GeminiCompleter asks a Gemini model for the diagram.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a completer for model using apiKey.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeNotConfigured, "Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotConfigured, err, "create Gemini client")
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete sends transcript with [SystemPrompt] and returns the parsed
// JSON object.
func (g *GeminiCompleter) Complete(ctx context.Context, transcript string) (json.RawMessage, error) {
	var resp *genai.GenerateContentResponse
	err := retry(ctx, retryAttempts, retryDelay, func() error {
		var err error
		resp, err = g.client.Models.GenerateContent(ctx, g.model,
			genai.Text("Transcript:\n"+transcript),
			&genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
				ResponseMIMEType:  "application/json",
				Temperature:       genai.Ptr[float32](temperature),
			})
		if err != nil {
			err = upstreamError(err)
			if transientStatus(errors.StatusOf(err, 0)) {
				return &retryableError{err: err}
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ParseCompletion(resp.Text())
}

// upstreamError keeps the status of a Gemini API error so the handler can
// pass it through.
func upstreamError(err error) error {
	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		return errors.Wrap(errors.ErrCodeUpstream,
			&errors.UpstreamError{StatusCode: apiErr.Code, Message: apiErr.Message}, "%s", apiErr.Message)
	}
	return errors.Wrap(errors.ErrCodeUpstream, err, "generate content")
}

// ParseCompletion validates model output as a JSON object.
func ParseCompletion(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.ErrCodeUpstream, "Empty response from model.")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "Failed to parse model response as JSON.")
	}
	return json.RawMessage(text), nil
}
