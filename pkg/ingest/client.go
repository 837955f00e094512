package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/errors"
)

// Endpoint is the path of the transcript route on the AI service.
const Endpoint = "/api/ai/transcript"

// DefaultSource tags requests sent by this client.
const DefaultSource = "cli"

const (
	httpTimeout  = 2 * time.Minute
	maxErrorBody = 64 << 10
)

// Request is the body posted to [Endpoint].
type Request struct {
	Transcript string `json:"transcript"`
	Source     string `json:"source"`
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Defaults to one with a two minute
// timeout.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithSource sets the source tag sent with each transcript.
func WithSource(source string) Option { return func(c *Client) { c.source = source } }

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.log = l } }

// Client talks to the AI service.
type Client struct {
	baseURL string
	http    *http.Client
	source  string
	log     *log.Logger
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		source:  DefaultSource,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = log.Default()
	}
	return c
}

// Send posts transcript and parses the answer. A non-success status is
// reported as "AI request failed (status): body" with code
// errors.ErrCodeUpstream; transport failures carry errors.ErrCodeNetwork.
func (c *Client) Send(ctx context.Context, transcript string) (*Payload, error) {
	transcript = strings.TrimSpace(transcript)
	if err := errors.ValidateTranscript(transcript); err != nil {
		return nil, err
	}
	body, err := json.Marshal(Request{Transcript: transcript, Source: c.source})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	url := c.baseURL + Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("sending transcript", "url", url, "bytes", len(transcript))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "post transcript to %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		text := strings.TrimSpace(string(msg))
		if readErr != nil || text == "" {
			text = "Request failed"
		}
		return nil, errors.Wrap(errors.ErrCodeUpstream,
			&errors.UpstreamError{StatusCode: resp.StatusCode, Message: text},
			"AI request failed (%d): %s", resp.StatusCode, text)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read AI response")
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.log.Debug("received diagram", "nodes", len(p.Nodes), "edges", len(p.Edges), "malformed", p.Malformed)
	return p, nil
}
