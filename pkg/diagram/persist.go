package diagram

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

var customIDPattern = regexp.MustCompile(`custom-[a-z-]+-(\d+)`)

// Snapshot captures the persisted state of the diagram.
func (s *State) Snapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.ActiveCategory = s.activeCategory
	snap.ActiveModel = snapshot.OptionalID(s.activeModel)
	snap.Title = s.title
	if !s.lastEdited.IsZero() {
		t := s.lastEdited
		snap.LastEditedAt = &t
	}
	for _, layer := range catalog.Sequence {
		snap.AddedItems[layer] = append([]string{}, s.added[layer]...)
		snap.CustomEntries[layer] = append([]snapshot.Entry{}, s.entries[layer]...)
		if slots := s.slots.Slots(layer); slots != nil {
			snap.LayerOrder[layer] = slots
		}
	}
	snap.CustomConnections = append(snap.CustomConnections, s.connections.Keys()...)
	snap.DismissedConnections = append(snap.DismissedConnections, s.dismissed.Keys()...)
	snap.DottedConnections = append(snap.DottedConnections, s.dotted.Keys()...)
	for k, v := range s.annotations {
		snap.ConnectionAnnotations[k] = v
	}
	snap.SelectedBadges = append(snap.SelectedBadges, s.badges.Keys()...)
	for k, v := range s.notes {
		snap.NodeNotes[k] = v
	}
	return snap
}

// Restore replaces the diagram with snap. Unknown layers, items and models
// are skipped. Restore does not invoke the persister.
func (s *State) Restore(snap *snapshot.Snapshot) error {
	if snap == nil {
		return errors.New(errors.ErrCodeInvalidState, "nil snapshot")
	}
	if snap.Version > snapshot.Version {
		return errors.New(errors.ErrCodeUnsupported, "snapshot version %d is newer than %d", snap.Version, snapshot.Version)
	}
	s.reset()

	s.title = strings.TrimSpace(snap.Title)
	if s.title == "" {
		s.title = DefaultTitle
	}
	if snap.LastEditedAt != nil {
		s.lastEdited = *snap.LastEditedAt
	}
	for _, b := range snap.SelectedBadges {
		if catalog.IsBadge(b) {
			s.badges.Add(b)
		}
	}

	for _, layer := range catalog.Sequence {
		for _, e := range snap.CustomEntries[layer] {
			if e.ID == "" || s.Known(e.ID) {
				continue
			}
			if e.Icon == "" {
				e.Icon = CustomIcon
			}
			e.IsCustom = true
			s.entries[layer] = append(s.entries[layer], e)
			s.custom[e.ID] = layer
			if m := customIDPattern.FindStringSubmatch(e.ID); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					s.counter = max(s.counter, n)
				}
			}
		}
	}

	for layer, slots := range snap.LayerOrder {
		if !layer.Valid() {
			continue
		}
		kept := make([]string, len(slots))
		for i, id := range slots {
			if def, ok := s.Definition(id); ok && def.Layer == layer {
				kept[i] = id
			}
		}
		s.slots.SetSlots(layer, kept)
	}

	if id := string(snap.ActiveModel); id != "" {
		if _, ok := s.rules.Model(id); ok {
			s.activeModel = id
		} else {
			s.log.Warn("ignoring unknown model in snapshot", "model", id)
		}
	}
	if snap.ActiveCategory.Valid() {
		s.activeCategory = snap.ActiveCategory
	}

	// Slots are already in place, so insertion order only decides the slots
	// of nodes the snapshot left unslotted.
	for _, layer := range catalog.Sequence {
		for _, id := range snap.AddedItems[layer] {
			s.restoreItem(id)
		}
		for _, id := range s.slots.Slots(layer) {
			s.restoreItem(id)
		}
	}

	for id, text := range snap.NodeNotes {
		if s.Has(id) && strings.TrimSpace(text) != "" {
			s.notes[id] = text
		}
	}
	for _, key := range snap.CustomConnections {
		s.connections.Add(key)
	}
	for _, key := range snap.DismissedConnections {
		s.dismissed.Add(key)
	}
	for _, key := range snap.DottedConnections {
		s.dotted.Add(key)
	}
	for key, text := range snap.ConnectionAnnotations {
		if strings.TrimSpace(text) != "" {
			s.annotations[key] = text
		}
	}
	s.log.Debug("restored diagram", "nodes", len(s.nodes), "connections", s.connections.Len())
	return nil
}

func (s *State) restoreItem(id string) {
	if id == "" || s.Has(id) {
		return
	}
	if def, ok := s.Definition(id); ok {
		s.insert(def)
	}
}
