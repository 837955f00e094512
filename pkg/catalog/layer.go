package catalog

import "strings"

// Layer identifies one of the five fixed diagram tiers.
type Layer string

const (
	Marketing   Layer = "marketing"
	Experiences Layer = "experiences"
	Sources     Layer = "sources"
	Analysis    Layer = "analysis"
	Activation  Layer = "activation"
)

// Sequence lists the layers top to bottom.
var Sequence = []Layer{Marketing, Experiences, Sources, Analysis, Activation}

var layerTitles = map[Layer]string{
	Marketing:   "Marketing Channels",
	Experiences: "Owned Experiences",
	Sources:     "Data Sources",
	Analysis:    "Analysis / Warehouse",
	Activation:  "Activation",
}

// Valid reports whether l is one of the five known layers.
func (l Layer) Valid() bool {
	_, ok := layerTitles[l]
	return ok
}

// Index returns the position of l in [Sequence], or -1 when l is unknown.
func (l Layer) Index() int {
	for i, s := range Sequence {
		if s == l {
			return i
		}
	}
	return -1
}

// Title returns the human readable heading of the layer.
func (l Layer) Title() string {
	if t, ok := layerTitles[l]; ok {
		return t
	}
	return string(l)
}

// ParseLayer normalises s (trimmed, lower-cased) and reports whether it names
// a known layer.
func ParseLayer(s string) (Layer, bool) {
	l := Layer(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}
