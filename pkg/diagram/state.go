package diagram

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/layout"
	"github.com/amplistack/amplistack/pkg/rules"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

// DefaultTitle is the title of a new or cleared diagram.
const DefaultTitle = "Untitled Diagram"

// CustomIcon is the icon key of user-defined entries.
const CustomIcon = "custom"

// Node is a diagram node definition.
type Node struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Icon   string        `json:"icon"`
	Layer  catalog.Layer `json:"layer"`
	Custom bool          `json:"custom,omitempty"`
}

// Persister receives a snapshot after every mutation.
type Persister interface {
	Persist(snap *snapshot.Snapshot) error
}

// PersisterFunc adapts a function to [Persister].
type PersisterFunc func(snap *snapshot.Snapshot) error

// Persist calls f(snap).
func (f PersisterFunc) Persist(snap *snapshot.Snapshot) error { return f(snap) }

// Option configures a [State].
type Option func(*State)

// WithCatalog sets the item catalog. Defaults to [catalog.Default].
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *State) { s.catalog = c }
}

// WithRules sets the rule set. Defaults to [rules.Default].
func WithRules(r *rules.Set) Option {
	return func(s *State) { s.rules = r }
}

// WithPersister sets the persister invoked after each mutation.
func WithPersister(p Persister) Option {
	return func(s *State) { s.persister = p }
}

// WithClock sets the time source used for the last-edited timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *State) { s.log = l }
}

// State is the editable diagram.
type State struct {
	catalog   *catalog.Catalog
	rules     *rules.Set
	persister Persister
	now       func() time.Time
	log       *log.Logger

	nodes   map[string]Node
	added   map[catalog.Layer][]string
	entries map[catalog.Layer][]snapshot.Entry
	custom  map[string]catalog.Layer
	counter int
	slots   *layout.Model

	connections *keySet
	dismissed   *keySet
	dotted      *keySet
	annotations map[string]string
	notes       map[string]string
	badges      *keySet

	activeModel    string
	activeCategory catalog.Layer
	title          string
	lastEdited     time.Time
	pending        string
}

// New returns an empty diagram.
func New(opts ...Option) *State {
	s := &State{
		nodes:       make(map[string]Node),
		added:       make(map[catalog.Layer][]string),
		entries:     make(map[catalog.Layer][]snapshot.Entry),
		custom:      make(map[string]catalog.Layer),
		slots:       layout.New(),
		connections: newKeySet(),
		dismissed:   newKeySet(),
		dotted:      newKeySet(),
		annotations: make(map[string]string),
		notes:       make(map[string]string),
		badges:      newKeySet(),

		activeCategory: catalog.Marketing,
		title:          DefaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.rules == nil {
		s.rules = rules.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = log.Default()
	}
	return s
}

// Catalog returns the item catalog.
func (s *State) Catalog() *catalog.Catalog { return s.catalog }

// Rules returns the rule set.
func (s *State) Rules() *rules.Set { return s.rules }

// Title returns the diagram title.
func (s *State) Title() string { return s.title }

// LastEditedAt returns the time of the last mutation, or the zero time.
func (s *State) LastEditedAt() time.Time { return s.lastEdited }

// ActiveModel returns the active model id, or "".
func (s *State) ActiveModel() string { return s.activeModel }

// ActiveCategory returns the layer selected in the catalog browser.
func (s *State) ActiveCategory() catalog.Layer { return s.activeCategory }

// Pending returns the source node of a connection being drawn, or "".
func (s *State) Pending() string { return s.pending }

// Len returns the number of live nodes.
func (s *State) Len() int { return len(s.nodes) }

// Node returns the live node with the given id.
func (s *State) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Has reports whether id is live.
func (s *State) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Definition resolves id against the catalog and the custom entries,
// whether or not the node is live.
func (s *State) Definition(id string) (Node, bool) {
	if it, ok := s.catalog.Item(id); ok {
		return Node{ID: it.ID, Name: it.Name, Icon: it.Icon, Layer: it.Layer}, true
	}
	layer, ok := s.custom[id]
	if !ok {
		return Node{}, false
	}
	for _, e := range s.entries[layer] {
		if e.ID == id {
			return Node{ID: e.ID, Name: e.Name, Icon: e.Icon, Layer: layer, Custom: true}, true
		}
	}
	return Node{}, false
}

// Known reports whether id resolves to a catalog item or custom entry.
func (s *State) Known(id string) bool {
	_, ok := s.Definition(id)
	return ok
}

// Available lists the definitions offered for layer: catalog items first,
// then custom entries in creation order.
func (s *State) Available(layer catalog.Layer) []Node {
	var out []Node
	for _, it := range s.catalog.Items(layer) {
		out = append(out, Node{ID: it.ID, Name: it.Name, Icon: it.Icon, Layer: layer})
	}
	for _, e := range s.entries[layer] {
		out = append(out, Node{ID: e.ID, Name: e.Name, Icon: e.Icon, Layer: layer, Custom: true})
	}
	return out
}

// Entries returns the custom entries of layer.
func (s *State) Entries(layer catalog.Layer) []snapshot.Entry {
	return slices.Clone(s.entries[layer])
}

// Placements returns the visual order of layer.
func (s *State) Placements(layer catalog.Layer) []layout.Placement {
	return s.slots.Reorder(layer, s.added[layer], catalog.Priority)
}

// LiveNodes returns every live node in live order: layer sequence first,
// then each layer's visual order.
func (s *State) LiveNodes() []layout.Placement {
	var out []layout.Placement
	for _, layer := range catalog.Sequence {
		out = append(out, s.Placements(layer)...)
	}
	return out
}

// Nodes returns the live node definitions in live order.
func (s *State) Nodes() []Node {
	live := s.LiveNodes()
	out := make([]Node, 0, len(live))
	for _, p := range live {
		out = append(out, s.nodes[p.ID])
	}
	return out
}

// Slots returns the slot array of layer; "" marks a free slot.
func (s *State) Slots(layer catalog.Layer) []string { return s.slots.Slots(layer) }

// OccupiedBetween reports whether a slot strictly between a and b of layer
// is occupied.
func (s *State) OccupiedBetween(layer catalog.Layer, a, b int) bool {
	return s.slots.OccupiedBetween(layer, a, b)
}

// CustomConnections returns the custom connection keys in insertion order.
func (s *State) CustomConnections() []string { return s.connections.Keys() }

// Dismissed returns the dismissed connection keys in insertion order.
func (s *State) Dismissed() []string { return s.dismissed.Keys() }

// Dotted returns the dotted connection keys in insertion order.
func (s *State) Dotted() []string { return s.dotted.Keys() }

// IsDismissed reports whether key was dismissed.
func (s *State) IsDismissed(key string) bool { return s.dismissed.Has(key) }

// IsDotted reports whether key is drawn dotted.
func (s *State) IsDotted(key string) bool { return s.dotted.Has(key) }

// Annotation returns the annotation of a connection, looked up by key first
// and then by the src->dst pair key.
func (s *State) Annotation(key, src, dst string) string {
	if v := s.annotations[key]; v != "" {
		return v
	}
	if src == "" || dst == "" {
		return ""
	}
	return s.annotations[rules.PairKey(src, dst)]
}

// Annotations returns a copy of the annotation map.
func (s *State) Annotations() map[string]string {
	out := make(map[string]string, len(s.annotations))
	for k, v := range s.annotations {
		out[k] = v
	}
	return out
}

// Note returns the note attached to a node.
func (s *State) Note(id string) string { return s.notes[id] }

// Badges returns the selected Amplitude SDK badges in selection order.
func (s *State) Badges() []string { return s.badges.Keys() }

// HasBadge reports whether badge is selected.
func (s *State) HasBadge(badge string) bool { return s.badges.Has(badge) }

// changed stamps the edit time and persists.
func (s *State) changed(msg string, keyvals ...any) {
	s.lastEdited = s.now()
	s.log.Debug(msg, keyvals...)
	s.save()
}

func (s *State) save() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Persist(s.Snapshot()); err != nil {
		s.log.Warn("failed to persist diagram", "err", err)
	}
}
