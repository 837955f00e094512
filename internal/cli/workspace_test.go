package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestWorkspaceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "diagram.json")
	c := &CLI{Logger: quietLogger(), statePath: path}

	w, err := c.open(quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if w.Len() != 0 {
		t.Fatalf("new workspace has %d nodes", w.Len())
	}
	if err := w.AddItem("email"); err != nil {
		t.Fatal(err)
	}
	if err := w.SetNote("email", "weekly newsletter"); err != nil {
		t.Fatal(err)
	}
	if err := w.saved(); err != nil {
		t.Fatalf("saved: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("diagram file not written: %v", err)
	}

	again, err := c.open(quietLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !again.Has("email") {
		t.Error("reopened workspace lost email")
	}
	if got := again.Note("email"); got != "weekly newsletter" {
		t.Errorf("Note(email) = %q", got)
	}
}

func TestWorkspaceCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &CLI{Logger: quietLogger(), statePath: path}
	if _, err := c.open(quietLogger()); err == nil {
		t.Error("open of a corrupt file succeeded")
	}
}

func TestWorkspaceRulesFile(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.toml")
	data := `
[[rules]]
from = { categories = ["marketing"] }
to = { categories = ["experiences"] }

[[models]]
id = "lean"
name = "Lean"
`
	if err := os.WriteFile(rulesPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &CLI{Logger: quietLogger(), statePath: filepath.Join(dir, "d.json"), rulesPath: rulesPath}
	w, err := c.open(quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(w.Rules().Global) != 1 {
		t.Errorf("len(Global) = %d, want 1", len(w.Rules().Global))
	}
	if _, ok := w.Rules().Model("lean"); !ok {
		t.Error("model lean not loaded")
	}
}
