package export

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/geometry"
	"github.com/amplistack/amplistack/pkg/render"
	"github.com/amplistack/amplistack/pkg/rules"
)

func newDiagram(t *testing.T, ids ...string) (*diagram.State, render.Scene) {
	t.Helper()
	quiet := log.New(io.Discard)
	d := diagram.New(diagram.WithLogger(quiet))
	for _, id := range ids {
		if err := d.AddItem(id); err != nil {
			t.Fatalf("AddItem(%q): %v", id, err)
		}
	}
	return d, scene(d)
}

func scene(d *diagram.State) render.Scene {
	frame := geometry.Build(d.LiveNodes(), geometry.DefaultConfig())
	return render.New(render.WithLogger(log.New(io.Discard))).Render(context.Background(), d, frame)
}

func TestToDOT(t *testing.T) {
	d, sc := newDiagram(t, "email", "website", catalog.AmplitudeSDK)
	dot := ToDOT(d, sc, Options{})

	for _, want := range []string{
		"digraph G",
		`label="Untitled Diagram"`,
		`subgraph "cluster_marketing"`,
		`subgraph "cluster_experiences"`,
		`"email" -> "website"`,
		`"website" -> "amplitude-sdk"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "cluster_activation") {
		t.Error("ToDOT() emitted a cluster for an empty layer")
	}
}

func TestToDOTEdgeStyles(t *testing.T) {
	d, _ := newDiagram(t, "email", "website", "crm")
	key := rules.RuleKey("email", "website", rules.GlobalTag(0))
	if _, err := d.ToggleDotted(key); err != nil {
		t.Fatalf("ToggleDotted: %v", err)
	}
	if err := d.SetAnnotation(key, "weekly"); err != nil {
		t.Fatalf("SetAnnotation: %v", err)
	}
	if _, err := d.AddCustomConnection("crm", "email"); err != nil {
		t.Fatalf("AddCustomConnection: %v", err)
	}
	dot := ToDOT(d, scene(d), Options{})

	tests := []struct {
		name string
		want string
	}{
		{"dotted", `"email" -> "website" [label="weekly", style=dashed]`},
		{"custom", `"crm" -> "email" [color="#2563eb"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("ToDOT() missing %q\n%s", tt.want, dot)
			}
		})
	}
}

func TestFmtLabel(t *testing.T) {
	n := diagram.Node{ID: "crm", Name: "CRM"}

	if got := fmtLabel(n, 2, "", false); got != "CRM" {
		t.Errorf("fmtLabel() simple = %q, want %q", got, "CRM")
	}
	got := fmtLabel(n, 2, "owned by sales", true)
	if want := "CRM\nslot: 2\nnote: owned by sales"; got != want {
		t.Errorf("fmtLabel() detailed = %q, want %q", got, want)
	}
	if got := fmtLabel(diagram.Node{ID: "x"}, 0, "", false); got != "x" {
		t.Errorf("fmtLabel() without name = %q, want %q", got, "x")
	}
}

func TestFmtAttrsCustom(t *testing.T) {
	attrs := strings.Join(fmtAttrs(diagram.Node{ID: "custom-sources-1", Custom: true}, "Mine"), ", ")
	if !strings.Contains(attrs, "dashed") {
		t.Errorf("fmtAttrs() custom = %q, want dashed style", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	d, sc := newDiagram(t, "email", "website")
	svg, err := RenderSVG(context.Background(), ToDOT(d, sc, Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
