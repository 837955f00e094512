package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/amplistack/amplistack/pkg/catalog"
)

// Version is the snapshot format version written by this package.
const Version = 1

const (
	// StorageKey names the saved diagram in key/value stores.
	StorageKey = "amplistack-diagram-state-v1"
	// URLParam is the query parameter carrying an encoded snapshot.
	URLParam = "state"
)

// Entry is a user-defined catalog entry.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
}

// Slots is a layer's slot array. The empty string marks a free slot and is
// encoded as null.
type Slots []string

// MarshalJSON implements json.Marshaler.
func (s Slots) MarshalJSON() ([]byte, error) {
	out := make([]*string, len(s))
	for i := range s {
		if s[i] != "" {
			out[i] = &s[i]
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Slots) UnmarshalJSON(data []byte) error {
	var in []*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Slots, len(in))
	for i, v := range in {
		if v != nil {
			out[i] = *v
		}
	}
	*s = out
	return nil
}

// OptionalID is an id that encodes as null when empty.
type OptionalID string

// MarshalJSON implements json.Marshaler.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(o))
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = ""
	if v != nil {
		*o = OptionalID(*v)
	}
	return nil
}

// Snapshot is the persisted state of a diagram.
type Snapshot struct {
	Version               int                        `json:"version"`
	ActiveCategory        catalog.Layer              `json:"activeCategory,omitempty"`
	ActiveModel           OptionalID                 `json:"activeModel"`
	AddedItems            map[catalog.Layer][]string `json:"addedItems"`
	CustomEntries         map[catalog.Layer][]Entry  `json:"customEntries"`
	LayerOrder            map[catalog.Layer]Slots    `json:"layerOrder"`
	CustomConnections     []string                   `json:"customConnections"`
	DismissedConnections  []string                   `json:"dismissedConnections"`
	DottedConnections     []string                   `json:"dottedConnections"`
	ConnectionAnnotations map[string]string          `json:"connectionAnnotations"`
	SelectedBadges        []string                   `json:"amplitudeSdkSelectedBadges"`
	NodeNotes             map[string]string          `json:"nodeNotes"`
	Title                 string                     `json:"diagramTitle,omitempty"`
	LastEditedAt          *time.Time                 `json:"lastEditedAt,omitempty"`
}

// New returns an empty snapshot of the current version with every
// collection initialised.
func New() *Snapshot {
	return &Snapshot{
		Version:               Version,
		AddedItems:            make(map[catalog.Layer][]string),
		CustomEntries:         make(map[catalog.Layer][]Entry),
		LayerOrder:            make(map[catalog.Layer]Slots),
		CustomConnections:     []string{},
		DismissedConnections:  []string{},
		DottedConnections:     []string{},
		ConnectionAnnotations: make(map[string]string),
		SelectedBadges:        []string{},
		NodeNotes:             make(map[string]string),
	}
}

// Marshal returns the JSON form of s.
func Marshal(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON snapshot. Missing collections are initialised
// and a missing version is treated as the current one.
func Unmarshal(data []byte) (*Snapshot, error) {
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	s.fill()
	return s, nil
}

func (s *Snapshot) fill() {
	if s.Version == 0 {
		s.Version = Version
	}
	if s.AddedItems == nil {
		s.AddedItems = make(map[catalog.Layer][]string)
	}
	if s.CustomEntries == nil {
		s.CustomEntries = make(map[catalog.Layer][]Entry)
	}
	if s.LayerOrder == nil {
		s.LayerOrder = make(map[catalog.Layer]Slots)
	}
	if s.ConnectionAnnotations == nil {
		s.ConnectionAnnotations = make(map[string]string)
	}
	if s.NodeNotes == nil {
		s.NodeNotes = make(map[string]string)
	}
}
