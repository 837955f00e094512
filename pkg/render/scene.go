package render

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geom"
	"github.com/amplistack/amplistack/pkg/layout"
	"github.com/amplistack/amplistack/pkg/observability"
	"github.com/amplistack/amplistack/pkg/route"
	"github.com/amplistack/amplistack/pkg/rules"
)

// Source is the diagram state the renderer reads.
type Source interface {
	Rules() *rules.Set
	ActiveModel() string
	LiveNodes() []layout.Placement
	CustomConnections() []string
	IsDismissed(key string) bool
	IsDotted(key string) bool
	Annotation(key, src, dst string) string
	OccupiedBetween(layer catalog.Layer, a, b int) bool
}

// Geometry locates nodes and layers on the canvas.
type Geometry interface {
	Canvas() geom.Size
	NodeBox(id string) (geom.Rect, bool)
	LayerBox(layer catalog.Layer) (geom.Rect, bool)
}

// Kind tells where a connection comes from.
type Kind string

const (
	KindRule   Kind = "rule"
	KindCustom Kind = "custom"
	KindBypass Kind = "bypass"
)

// Connection is a routed connector.
type Connection struct {
	Key    string
	Source string
	Target string
	Kind   Kind
	Tag    string
	Points []geom.Point
	Radius float64
	D      string
	Dotted bool

	curve route.Curve
}

// Label is text anchored on a connection. At is the anchor of the first
// line; further lines follow 1.1em below.
type Label struct {
	Key        string
	Text       string
	Lines      []string
	At         geom.Point
	Annotation bool
}

// Highlight marks two connected, visually adjacent nodes.
type Highlight struct {
	Source string
	Target string
	Rect   geom.Rect
}

// Scene is the complete connection layer of a diagram.
type Scene struct {
	Canvas      geom.Size
	Connections []Connection
	Labels      []Label
	Highlights  []Highlight
}

// Connection returns the connection with the given key.
func (s Scene) Connection(key string) (Connection, bool) {
	for _, c := range s.Connections {
		if c.Key == key {
			return c, true
		}
	}
	return Connection{}, false
}

// Label returns the label of the connection with the given key.
func (s Scene) Label(key string) (Label, bool) {
	for _, l := range s.Labels {
		if l.Key == key {
			return l, true
		}
	}
	return Label{}, false
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.log = l } }

// Renderer builds scenes.
type Renderer struct {
	log *log.Logger
}

// New returns a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = log.Default()
	}
	return r
}

// pass holds the working data of one Render call.
type pass struct {
	src    Source
	geo    Geometry
	router *route.Router
	canvas geom.Size
	nodes  map[string]layout.Placement
	order  []layout.Placement
	scene  Scene
	pairs  map[string]bool
}

// Render rebuilds the scene of src laid out by geo.
func (r *Renderer) Render(ctx context.Context, src Source, geo Geometry) Scene {
	start := time.Now()
	p := &pass{
		src:    src,
		geo:    geo,
		router: route.New(src),
		canvas: geo.Canvas(),
		nodes:  make(map[string]layout.Placement),
		pairs:  make(map[string]bool),
	}
	p.scene.Canvas = p.canvas
	p.order = src.LiveNodes()
	for _, n := range p.order {
		p.nodes[n.ID] = n
	}

	p.ruleConnections()
	p.customConnections()
	p.bypass()
	p.labels()
	p.highlights()

	r.log.Debug("rendered connections",
		"connections", len(p.scene.Connections),
		"labels", len(p.scene.Labels),
		"highlights", len(p.scene.Highlights))
	observability.Render().OnRender(ctx, len(p.scene.Connections), len(p.scene.Labels), time.Since(start))
	return p.scene
}

func (p *pass) endpoint(id string) (route.Endpoint, bool) {
	n, ok := p.nodes[id]
	if !ok {
		return route.Endpoint{}, false
	}
	box, ok := p.geo.NodeBox(id)
	if !ok {
		return route.Endpoint{}, false
	}
	layerBox, _ := p.geo.LayerBox(n.Layer)
	return route.Endpoint{ID: id, Layer: n.Layer, Slot: n.Slot, Box: box, LayerBox: layerBox}, true
}

func (p *pass) ruleConnections() {
	nodes := make([]rules.Node, len(p.order))
	for i, n := range p.order {
		nodes[i] = rules.Node{ID: n.ID, Layer: n.Layer}
	}
	for _, m := range p.src.Rules().Resolve(p.src.ActiveModel(), nodes, p.src.IsDismissed) {
		p.connect(m.Key, m.Source, m.Target, KindRule, m.Tag)
	}
}

func (p *pass) customConnections() {
	for _, key := range p.src.CustomConnections() {
		if p.src.IsDismissed(key) {
			continue
		}
		src, dst, ok := rules.ParseCustomKey(key)
		if !ok {
			continue
		}
		p.connect(key, src, dst, KindCustom, "")
	}
}

func (p *pass) connect(key, srcID, dstID string, kind Kind, tag string) {
	src, ok := p.endpoint(srcID)
	if !ok {
		return
	}
	dst, ok := p.endpoint(dstID)
	if !ok {
		return
	}
	path, ok := p.router.Route(src, dst, p.canvas)
	if !ok {
		return
	}
	p.add(key, srcID, dstID, kind, tag, path)
	p.pairs[rules.PairKey(srcID, dstID)] = true
	p.pairs[rules.PairKey(dstID, srcID)] = true
}

func (p *pass) bypass() {
	key := rules.PaidAdsDirectKey
	if p.src.IsDismissed(key) {
		return
	}
	paid, ok := p.endpoint(catalog.PaidAds)
	if !ok {
		return
	}
	amp, ok := p.endpoint(catalog.AmplitudeAnalytics)
	if !ok {
		return
	}
	path, ok := route.PaidAdsBypass(paid, amp)
	if !ok {
		return
	}
	p.add(key, paid.ID, amp.ID, KindBypass, "", path)
}

func (p *pass) add(key, src, dst string, kind Kind, tag string, path route.Path) {
	curve := path.Curve()
	d := curve.D()
	if d == "" {
		return
	}
	p.scene.Connections = append(p.scene.Connections, Connection{
		Key:    key,
		Source: src,
		Target: dst,
		Kind:   kind,
		Tag:    tag,
		Points: path.Points,
		Radius: path.Radius,
		D:      d,
		Dotted: p.src.IsDotted(key),
		curve:  curve,
	})
}
