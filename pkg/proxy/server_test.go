package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/store"
)

type fakeCompleter struct {
	got  string
	data string
	err  error
}

func (f *fakeCompleter) Complete(ctx context.Context, transcript string) (json.RawMessage, error) {
	f.got = transcript
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.data), nil
}

func newTestServer(t *testing.T, cfg Config, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	srv := httptest.NewServer(New(cfg, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestTranscript(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
		body      string
		status    int
		errMsg    string
		details   string
	}{
		{
			name:      "success",
			completer: &fakeCompleter{data: `{"diagramNodes":[]}`},
			body:      `{"transcript":"  we use Braze  ","source":"clipboard"}`,
			status:    http.StatusOK,
		},
		{
			name:      "missing transcript",
			completer: &fakeCompleter{},
			body:      `{"source":"clipboard"}`,
			status:    http.StatusBadRequest,
			errMsg:    "Transcript is required.",
		},
		{
			name:      "blank transcript",
			completer: &fakeCompleter{},
			body:      `{"transcript":"   "}`,
			status:    http.StatusBadRequest,
			errMsg:    "Transcript is required.",
		},
		{
			name:   "no model configured",
			body:   `{"transcript":"hello"}`,
			status: http.StatusInternalServerError,
			errMsg: "Missing Gemini API key on server.",
		},
		{
			name: "upstream status passthrough",
			completer: &fakeCompleter{err: errors.Wrap(errors.ErrCodeUpstream,
				&errors.UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "quota"}, "quota")},
			body:    `{"transcript":"hello"}`,
			status:  http.StatusTooManyRequests,
			errMsg:  "AI request failed",
			details: "quota",
		},
		{
			name:      "unparsable completion",
			completer: &fakeCompleter{err: errors.New(errors.ErrCodeInvalidPayload, "Failed to parse model response as JSON.")},
			body:      `{"transcript":"hello"}`,
			status:    http.StatusInternalServerError,
			errMsg:    "AI request failed",
			details:   "Failed to parse model response as JSON.",
		},
		{
			name:      "invalid json",
			completer: &fakeCompleter{},
			body:      `{"transcript":`,
			status:    http.StatusBadRequest,
			errMsg:    "Invalid request body.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.completer != nil {
				opts = append(opts, WithCompleter(tt.completer))
			}
			srv := newTestServer(t, Config{}, opts...)
			resp, out := post(t, srv.URL+"/api/ai/transcript", tt.body)

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, tt.status, out)
			}
			if tt.errMsg != "" && out["error"] != tt.errMsg {
				t.Errorf("error = %v, want %q", out["error"], tt.errMsg)
			}
			if tt.details != "" && out["details"] != tt.details {
				t.Errorf("details = %v, want %q", out["details"], tt.details)
			}
			if tt.status == http.StatusOK {
				if _, ok := out["data"].(map[string]any); !ok {
					t.Errorf("data = %v, want object", out["data"])
				}
				if tt.completer.got != "we use Braze" {
					t.Errorf("completer got %q", tt.completer.got)
				}
			}
		})
	}
}

func TestTranscriptBodyLimit(t *testing.T) {
	srv := newTestServer(t, Config{MaxBodyBytes: 64}, WithCompleter(&fakeCompleter{data: `{}`}))
	body := `{"transcript":"` + strings.Repeat("a", 128) + `"}`
	resp, _ := post(t, srv.URL+"/api/ai/transcript", body)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, Config{AllowedOrigin: "https://app.example"}, WithCompleter(&fakeCompleter{data: `{}`}))
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/ai/transcript", strings.NewReader(`{"transcript":"x"}`))
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" || body["model"] != false || body["store"] != false {
		t.Errorf("health = %v", body)
	}
}

func TestDiagramRoutes(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, Config{}, WithStore(st))

	resp, out := post(t, srv.URL+"/api/diagrams/", `{"version":1,"diagramTitle":"Shared","activeModel":null}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d (%v)", resp.StatusCode, out)
	}
	id, _ := out["id"].(string)
	if id == "" {
		t.Fatalf("no id in %v", out)
	}

	resp, err = http.Get(srv.URL + "/api/diagrams/" + id)
	if err != nil {
		t.Fatal(err)
	}
	var snap map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&snap)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || snap["diagramTitle"] != "Shared" {
		t.Errorf("get = %d %v", resp.StatusCode, snap)
	}

	resp, err = http.Get(srv.URL + "/api/diagrams/" + store.NewID())
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", resp.StatusCode)
	}
}

func TestDiagramRoutesNeedStore(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, _ := post(t, srv.URL+"/api/diagrams/", `{}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
