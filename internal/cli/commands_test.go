package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/rules"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

// run executes the root command against the diagram file at state.
func run(t *testing.T, state string, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--state", state}, args...))
	return root.ExecuteContext(context.Background())
}

func mustRun(t *testing.T, state string, args ...string) {
	t.Helper()
	if err := run(t, state, args...); err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
}

func load(t *testing.T, state string) *workspace {
	t.Helper()
	c := &CLI{Logger: quietLogger(), statePath: state}
	w, err := c.open(quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return w
}

func TestEditCommands(t *testing.T) {
	state := filepath.Join(t.TempDir(), "diagram.json")

	mustRun(t, state, "node", "add", "email", "website", "crm")
	mustRun(t, state, "conn", "add", "crm", "email")
	mustRun(t, state, "node", "move", "website", "4")
	mustRun(t, state, "node", "note", "email", "weekly", "digest")
	mustRun(t, state, "title", "Q3", "plan")
	mustRun(t, state, "entry", "add", "sources", "Billing", "DB")
	mustRun(t, state, "badge", "session-replay")

	w := load(t, state)
	for _, id := range []string{"email", "website", "crm", "custom-sources-1"} {
		if !w.Has(id) {
			t.Errorf("%s missing after edits", id)
		}
	}
	if got := w.CustomConnections(); len(got) != 1 || got[0] != rules.CustomKey("crm", "email") {
		t.Errorf("CustomConnections() = %v", got)
	}
	if got := w.Note("email"); got != "weekly digest" {
		t.Errorf("Note(email) = %q", got)
	}
	if got := w.Title(); got != "Q3 plan" {
		t.Errorf("Title() = %q", got)
	}
	if got := w.Badges(); len(got) != 1 || got[0] != "session-replay" {
		t.Errorf("Badges() = %v", got)
	}
	for _, p := range w.LiveNodes() {
		if p.ID == "website" && p.Slot != 4 {
			t.Errorf("website slot = %d, want 4", p.Slot)
		}
	}

	mustRun(t, state, "node", "rm", "crm")
	if got := load(t, state).CustomConnections(); len(got) != 0 {
		t.Errorf("CustomConnections() after rm = %v, want none", got)
	}
}

func TestConnCommands(t *testing.T) {
	state := filepath.Join(t.TempDir(), "diagram.json")
	mustRun(t, state, "node", "add", "email", "website")
	key := rules.RuleKey("email", "website", rules.GlobalTag(0))

	mustRun(t, state, "conn", "dotted", key)
	mustRun(t, state, "conn", "annotate", key, "nightly")
	w := load(t, state)
	if !w.IsDotted(key) {
		t.Error("connection not dotted")
	}
	if got := w.Annotation(key, "email", "website"); got != "nightly" {
		t.Errorf("Annotation = %q, want nightly", got)
	}

	mustRun(t, state, "conn", "dismiss", key)
	if !load(t, state).IsDismissed(key) {
		t.Error("connection not dismissed")
	}
	if err := run(t, state, "conn", "add", "email", "email"); err == nil {
		t.Error("self connection accepted")
	}
	if err := run(t, state, "conn", "dismiss", "not-a-key"); err == nil {
		t.Error("malformed key accepted")
	}
}

func TestModelCommands(t *testing.T) {
	state := filepath.Join(t.TempDir(), "diagram.json")
	mustRun(t, state, "model", "set", rules.ModelAmplitudeToWarehouse)

	w := load(t, state)
	if w.ActiveModel() != rules.ModelAmplitudeToWarehouse {
		t.Errorf("ActiveModel() = %q", w.ActiveModel())
	}
	if !w.Has(catalog.Snowflake) {
		t.Error("model did not add snowflake")
	}

	mustRun(t, state, "model", "clear")
	if got := load(t, state).ActiveModel(); got != "" {
		t.Errorf("ActiveModel() after clear = %q", got)
	}
	if err := run(t, state, "model", "set", "nope"); err == nil {
		t.Error("unknown model accepted")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "diagram.json")
	mustRun(t, state, "node", "add", "email", "website")

	svgPath := filepath.Join(dir, "out.svg")
	mustRun(t, state, "render", "-o", svgPath)
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `data-connection-source="email"`) {
		t.Errorf("SVG has no email connection:\n%s", svg)
	}

	jsonPath := filepath.Join(dir, "out.json")
	mustRun(t, state, "render", "-f", "json", "-o", jsonPath)
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Connections []struct {
			Key string `json:"key"`
		} `json:"connections"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("render JSON: %v", err)
	}
	if len(out.Connections) != 1 {
		t.Errorf("len(connections) = %d, want 1", len(out.Connections))
	}

	if err := run(t, state, "render", "-f", "pdf"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestExportDotCommand(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "diagram.json")
	mustRun(t, state, "node", "add", "email", "website")

	path := filepath.Join(dir, "out.dot")
	mustRun(t, state, "export", "dot", "--detailed", "-o", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"email" -> "website"`) {
		t.Errorf("DOT missing edge:\n%s", data)
	}
}

func TestSnapshotPushPull(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "diagram.json")
	shared := filepath.Join(dir, "shared")
	const id = "3f1c6a52-8f0e-4a8e-9a55-0c9a4f3b7d21"

	mustRun(t, state, "node", "add", "email", "website")
	mustRun(t, state, "title", "Shared")
	mustRun(t, state, "snapshot", "push", "--dir", shared, "--id", id)
	mustRun(t, state, "clear")
	if load(t, state).Len() != 0 {
		t.Fatal("clear left nodes behind")
	}

	mustRun(t, state, "snapshot", "pull", id, "--dir", shared)
	w := load(t, state)
	if !w.Has("email") || !w.Has("website") || w.Title() != "Shared" {
		t.Errorf("pulled diagram = %d nodes, title %q", w.Len(), w.Title())
	}

	if err := run(t, state, "snapshot", "pull", "missing", "--dir", shared); err == nil {
		t.Error("pull of a missing id succeeded")
	}
	if err := run(t, state, "snapshot", "push", "--backend", "tape"); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestSnapshotDecode(t *testing.T) {
	state := filepath.Join(t.TempDir(), "diagram.json")

	snap := snapshot.New()
	snap.Title = "From a link"
	snap.AddedItems[catalog.Marketing] = []string{"email"}
	payload, err := snapshot.EncodeURL(snap)
	if err != nil {
		t.Fatal(err)
	}
	link, err := snapshot.ShareURL("https://diagrams.example/", snap)
	if err != nil {
		t.Fatal(err)
	}

	for _, arg := range []string{payload, link} {
		got, err := decodeShared(arg)
		if err != nil {
			t.Fatalf("decodeShared(%q): %v", arg, err)
		}
		if got.Title != "From a link" {
			t.Errorf("decodeShared(%q).Title = %q", arg, got.Title)
		}
	}

	mustRun(t, state, "snapshot", "decode", link)
	w := load(t, state)
	if !w.Has("email") || w.Title() != "From a link" {
		t.Errorf("decoded diagram = %d nodes, title %q", w.Len(), w.Title())
	}
}
