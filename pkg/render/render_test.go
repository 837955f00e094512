package render

import (
	"context"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/geometry"
	"github.com/amplistack/amplistack/pkg/rules"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func newDiagram(t *testing.T, ids ...string) *diagram.State {
	t.Helper()
	s := diagram.New(diagram.WithLogger(quiet()))
	for _, id := range ids {
		if err := s.AddItem(id); err != nil {
			t.Fatalf("AddItem(%q): %v", id, err)
		}
	}
	return s
}

func render(s *diagram.State) Scene {
	frame := geometry.Build(s.LiveNodes(), geometry.DefaultConfig())
	return New(WithLogger(quiet())).Render(context.Background(), s, frame)
}

func keys(sc Scene) []string {
	out := make([]string, len(sc.Connections))
	for i, c := range sc.Connections {
		out[i] = c.Key
	}
	return out
}

func TestRenderRuleConnections(t *testing.T) {
	s := newDiagram(t, "email", "website", catalog.AmplitudeSDK, catalog.AmplitudeAnalytics)
	sc := render(s)

	want := []string{
		rules.RuleKey("email", "website", rules.GlobalTag(0)),
		rules.RuleKey("website", catalog.AmplitudeSDK, rules.GlobalTag(1)),
		rules.RuleKey(catalog.AmplitudeSDK, catalog.AmplitudeAnalytics, rules.GlobalTag(3)),
	}
	if diff := cmp.Diff(want, keys(sc)); diff != "" {
		t.Errorf("connection keys mismatch (-want +got):\n%s", diff)
	}
	for _, c := range sc.Connections {
		if c.Kind != KindRule {
			t.Errorf("%s: Kind = %q, want %q", c.Key, c.Kind, KindRule)
		}
		if c.D == "" || len(c.Points) < 2 {
			t.Errorf("%s: empty path", c.Key)
		}
	}
	if len(sc.Labels) != 0 {
		t.Errorf("Labels = %v, want none", sc.Labels)
	}
}

func TestRenderSkipsDismissed(t *testing.T) {
	s := newDiagram(t, "email", "website")
	key := rules.RuleKey("email", "website", rules.GlobalTag(0))
	if err := s.Dismiss(key); err != nil {
		t.Fatal(err)
	}
	if sc := render(s); len(sc.Connections) != 0 {
		t.Errorf("Connections = %v, want none", keys(sc))
	}
}

func TestRenderCustomConnections(t *testing.T) {
	s := newDiagram(t, "crm", "braze", "email")
	first, err := s.AddCustomConnection("crm", "braze")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.AddCustomConnection("braze", "email")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleDotted(second); err != nil {
		t.Fatal(err)
	}

	sc := render(s)
	if diff := cmp.Diff([]string{first, second}, keys(sc)); diff != "" {
		t.Fatalf("connection keys mismatch (-want +got):\n%s", diff)
	}
	c, _ := sc.Connection(second)
	if !c.Dotted || c.Kind != KindCustom {
		t.Errorf("second = {Dotted:%v Kind:%v}, want dotted custom", c.Dotted, c.Kind)
	}

	if err := s.Dismiss(first); err != nil {
		t.Fatal(err)
	}
	if got := keys(render(s)); !slices.Equal(got, []string{second}) {
		t.Errorf("after dismiss = %v, want [%s]", got, second)
	}
}

func TestRenderPaidAdsBypass(t *testing.T) {
	s := newDiagram(t, catalog.PaidAds, catalog.AmplitudeAnalytics)
	sc := render(s)

	c, ok := sc.Connection(rules.PaidAdsDirectKey)
	if !ok {
		t.Fatalf("bypass missing, got %v", keys(sc))
	}
	if c.Kind != KindBypass {
		t.Errorf("Kind = %q, want %q", c.Kind, KindBypass)
	}
	l, ok := sc.Label(rules.PaidAdsDirectKey)
	if !ok {
		t.Fatal("bypass label missing")
	}
	if want := []string{"Views,", "Clicks,", "Spend"}; !slices.Equal(l.Lines, want) {
		t.Errorf("Lines = %q, want %q", l.Lines, want)
	}

	if err := s.Dismiss(rules.PaidAdsDirectKey); err != nil {
		t.Fatal(err)
	}
	if _, ok := render(s).Connection(rules.PaidAdsDirectKey); ok {
		t.Error("dismissed bypass still rendered")
	}
}

func TestRenderLabels(t *testing.T) {
	aa := catalog.AmplitudeAnalytics
	s := newDiagram(t, aa, catalog.Snowflake, catalog.LLM, "braze", "iterable")
	sc := render(s)

	tests := []struct {
		key  string
		want string
	}{
		{rules.RuleKey(aa, catalog.LLM, rules.GlobalTag(6)), LabelMCP},
		{rules.RuleKey(aa, catalog.Snowflake, rules.GlobalTag(7)), LabelBatchEvents},
		{rules.RuleKey(aa, "braze", rules.GlobalTag(8)), LabelEventStream},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			l, ok := sc.Label(tt.key)
			if !ok {
				t.Fatalf("no label on %s", tt.key)
			}
			if l.Text != tt.want {
				t.Errorf("Text = %q, want %q", l.Text, tt.want)
			}
		})
	}
	if _, ok := sc.Label(rules.RuleKey(aa, "iterable", rules.GlobalTag(8))); ok {
		t.Error("event stream label repeated on iterable")
	}
	if n := len(sc.Labels); n != 3 {
		t.Errorf("len(Labels) = %d, want 3", n)
	}
}

func TestRenderWarehouseModelLabel(t *testing.T) {
	s := newDiagram(t)
	if err := s.SetActiveModel(rules.ModelWarehouseToAmplitude); err != nil {
		t.Fatal(err)
	}
	sc := render(s)

	key := rules.RuleKey(catalog.Snowflake, catalog.AmplitudeAnalytics, rules.ModelTag(rules.ModelWarehouseToAmplitude, 0))
	if _, ok := sc.Connection(key); !ok {
		t.Fatalf("no connection %s in %v", key, keys(sc))
	}
	l, ok := sc.Label(key)
	if !ok {
		t.Fatalf("no label on %s", key)
	}
	if l.Text != LabelBatchEvents || l.Annotation {
		t.Errorf("label = {%q annotation:%v}, want auto %q", l.Text, l.Annotation, LabelBatchEvents)
	}
	for _, c := range sc.Connections {
		if c.Source == catalog.AmplitudeAnalytics && c.Target == catalog.Snowflake {
			t.Errorf("suppressed connection %s rendered", c.Key)
		}
	}
}

func TestRenderAnnotationWins(t *testing.T) {
	aa := catalog.AmplitudeAnalytics
	s := newDiagram(t, aa, "braze", "iterable")
	braze := rules.RuleKey(aa, "braze", rules.GlobalTag(8))
	iterable := rules.RuleKey(aa, "iterable", rules.GlobalTag(8))
	if err := s.SetAnnotation(braze, "Audiences"); err != nil {
		t.Fatal(err)
	}

	sc := render(s)
	l, _ := sc.Label(braze)
	if l.Text != "Audiences" || !l.Annotation {
		t.Errorf("braze label = %+v, want annotation %q", l, "Audiences")
	}
	l, _ = sc.Label(iterable)
	if l.Text != LabelEventStream {
		t.Errorf("iterable label = %q, want %q", l.Text, LabelEventStream)
	}
}

func TestLabelPosition(t *testing.T) {
	s := newDiagram(t, catalog.PaidAds, catalog.AmplitudeAnalytics)
	sc := render(s)
	c, _ := sc.Connection(rules.PaidAdsDirectKey)
	l, _ := sc.Label(rules.PaidAdsDirectKey)

	mid := c.curve.Midpoint()
	if l.At.X != mid.X {
		t.Errorf("At.X = %v, want %v", l.At.X, mid.X)
	}
	if want := mid.Y - 8 - 6; l.At.Y != want {
		t.Errorf("At.Y = %v, want %v", l.At.Y, want)
	}
}

func TestRenderHighlights(t *testing.T) {
	s := newDiagram(t, catalog.AmplitudeSDK, catalog.Segment)
	if len(render(s).Highlights) != 0 {
		t.Error("highlight without a connection")
	}
	if _, err := s.AddCustomConnection(catalog.AmplitudeSDK, catalog.Segment); err != nil {
		t.Fatal(err)
	}

	sc := render(s)
	if len(sc.Highlights) != 1 {
		t.Fatalf("len(Highlights) = %d, want 1", len(sc.Highlights))
	}
	frame := geometry.Build(s.LiveNodes(), geometry.DefaultConfig())
	a, _ := frame.NodeBox(catalog.AmplitudeSDK)
	b, _ := frame.NodeBox(catalog.Segment)
	want := a.Union(b).Expand(HighlightPadX, HighlightPadY)
	if got := sc.Highlights[0].Rect; got != want {
		t.Errorf("Rect = %+v, want %+v", got, want)
	}

	if _, err := s.MoveToSlot(catalog.Segment, 3); err != nil {
		t.Fatal(err)
	}
	if n := len(render(s).Highlights); n != 0 {
		t.Errorf("len(Highlights) after move = %d, want 0", n)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := newDiagram(t, catalog.PaidAds, "website", catalog.AmplitudeSDK, catalog.Segment, catalog.AmplitudeAnalytics, "braze")
	a, b := render(s), render(s)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Connection{})); diff != "" {
		t.Errorf("scenes differ (-first +second):\n%s", diff)
	}
}
