package diagram

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/geom"
	"github.com/amplistack/amplistack/pkg/layout"
	"github.com/amplistack/amplistack/pkg/rules"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

// AddItem adds the catalog item or custom entry id to its layer. Adding a
// live node is a no-op.
func (s *State) AddItem(id string) error {
	if s.Has(id) {
		return nil
	}
	def, ok := s.Definition(id)
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "unknown item %q", id)
	}
	slot := s.insert(def)
	s.changed("added node", "id", id, "layer", def.Layer, "slot", slot)
	return nil
}

// EnsureItem adds id when it resolves to a definition and reports whether
// the node is live afterwards.
func (s *State) EnsureItem(id string) bool {
	if s.Has(id) {
		return true
	}
	if err := s.AddItem(id); err != nil {
		s.log.Debug("skipped unknown item", "id", id)
		return false
	}
	return true
}

func (s *State) insert(n Node) int {
	s.nodes[n.ID] = n
	s.added[n.Layer] = append(s.added[n.Layer], n.ID)
	return s.slots.Assign(n.Layer, n.ID)
}

// RemoveItem removes a live node. Its slot is freed, its note deleted, and
// every custom connection touching it is dropped along with its dismissed
// mark. Dismissed rule connections are kept.
func (s *State) RemoveItem(id string) error {
	if !s.remove(id) {
		return errors.New(errors.ErrCodeNotFound, "node %q is not in the diagram", id)
	}
	s.changed("removed node", "id", id)
	return nil
}

func (s *State) remove(id string) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	delete(s.nodes, id)
	s.added[n.Layer] = slices.DeleteFunc(s.added[n.Layer], func(v string) bool { return v == id })
	s.slots.Release(n.Layer, id)
	delete(s.notes, id)
	for _, key := range s.connections.Keys() {
		src, dst, ok := rules.ParseCustomKey(key)
		if !ok || (src != id && dst != id) {
			continue
		}
		s.connections.Delete(key)
		s.dismissed.Delete(key)
	}
	if s.pending == id {
		s.pending = ""
	}
	return true
}

// AddCustomEntry registers a user-defined entry named name in layer and
// returns it. The entry is offered by [State.Available] but not added to
// the diagram.
func (s *State) AddCustomEntry(layer catalog.Layer, name string) (snapshot.Entry, error) {
	if !layer.Valid() {
		return snapshot.Entry{}, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return snapshot.Entry{}, errors.New(errors.ErrCodeInvalidInput, "entry name is required")
	}
	s.counter++
	e := snapshot.Entry{
		ID:       fmt.Sprintf("custom-%s-%d", layer, s.counter),
		Name:     name,
		Icon:     CustomIcon,
		IsCustom: true,
	}
	s.entries[layer] = append(s.entries[layer], e)
	s.custom[e.ID] = layer
	s.changed("added custom entry", "id", e.ID, "layer", layer)
	return e, nil
}

// Upsert makes id a live node of layer, registering a custom entry named
// name when id is not yet known. An id already known in another layer is a
// conflict.
func (s *State) Upsert(layer catalog.Layer, id, name string) error {
	if !layer.Valid() {
		return errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if def, ok := s.Definition(id); ok {
		if def.Layer != layer {
			return errors.New(errors.ErrCodeIDConflict, "%q already belongs to %s", id, def.Layer)
		}
	} else {
		if name == "" {
			name = id
		}
		s.entries[layer] = append(s.entries[layer], snapshot.Entry{ID: id, Name: name, Icon: CustomIcon, IsCustom: true})
		s.custom[id] = layer
	}
	return s.AddItem(id)
}

// Drop moves a live node to the slot under the pointer position (x, y)
// within content, the content box of layer. Nodes cannot change layers.
func (s *State) Drop(id string, layer catalog.Layer, content geom.Rect, x, y float64) (int, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "node %q is not in the diagram", id)
	}
	if n.Layer != layer {
		return 0, errors.New(errors.ErrCodeInvalidLayer, "%q cannot move from %s to %s", id, n.Layer, layer)
	}
	slot := s.slots.Relocate(layer, id, layout.SlotIndexFromPoint(content, x, y, s.slots.MaxOccupied(layer)))
	s.changed("dropped node", "id", id, "slot", slot)
	return slot, nil
}

// MoveToSlot moves a live node to slot within its layer and returns the
// slot it took. Out-of-range slots are clamped as by [layout.Model.Relocate].
func (s *State) MoveToSlot(id string, slot int) (int, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "node %q is not in the diagram", id)
	}
	slot = s.slots.Relocate(n.Layer, id, slot)
	s.changed("moved node", "id", id, "slot", slot)
	return slot, nil
}

// SetActiveModel activates model id and applies its auto-configuration:
// its add list is ensured, then its remove list is removed. The adjustment
// runs even when the model is already active.
func (s *State) SetActiveModel(id string) error {
	m, ok := s.rules.Model(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown model %q", id)
	}
	s.activeModel = m.ID
	for _, item := range m.Add {
		if !s.Has(item) {
			if def, ok := s.Definition(item); ok {
				s.insert(def)
			}
		}
	}
	for _, item := range m.Remove {
		s.remove(item)
	}
	s.changed("activated model", "model", m.ID)
	return nil
}

// ClearModel deactivates the active model. Nodes are left untouched.
func (s *State) ClearModel() {
	if s.activeModel == "" {
		return
	}
	s.activeModel = ""
	s.changed("cleared model")
}

// SetActiveCategory selects the layer shown in the catalog browser.
func (s *State) SetActiveCategory(layer catalog.Layer) error {
	if !layer.Valid() {
		return errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
	}
	s.activeCategory = layer
	s.changed("selected category", "layer", layer)
	return nil
}

// SetNote attaches a note to a live node. A blank note deletes it.
func (s *State) SetNote(id, text string) error {
	if !s.Has(id) {
		return errors.New(errors.ErrCodeNotFound, "node %q is not in the diagram", id)
	}
	if strings.TrimSpace(text) == "" {
		delete(s.notes, id)
	} else {
		s.notes[id] = text
	}
	s.changed("updated note", "id", id)
	return nil
}

// ToggleBadge flips an Amplitude SDK badge and reports whether it is now
// selected.
func (s *State) ToggleBadge(badge string) (bool, error) {
	if !catalog.IsBadge(badge) {
		return false, errors.New(errors.ErrCodeInvalidInput, "unknown badge %q", badge)
	}
	on := s.badges.Add(badge)
	if !on {
		s.badges.Delete(badge)
	}
	s.changed("toggled badge", "badge", badge, "on", on)
	return on, nil
}

// SetTitle sets the diagram title. A blank title restores [DefaultTitle].
func (s *State) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	s.title = title
	s.changed("renamed diagram", "title", title)
}

// Clear resets the diagram to its initial state, forgetting custom entries
// and every dismissal.
func (s *State) Clear() {
	s.reset()
	s.log.Debug("cleared diagram")
	s.save()
}

func (s *State) reset() {
	clear(s.nodes)
	clear(s.added)
	clear(s.entries)
	clear(s.custom)
	s.counter = 0
	s.slots.Reset()
	s.connections.Reset()
	s.dismissed.Reset()
	s.dotted.Reset()
	clear(s.annotations)
	clear(s.notes)
	s.badges.Reset()
	s.activeModel = ""
	s.activeCategory = catalog.Marketing
	s.title = DefaultTitle
	s.lastEdited = time.Time{}
	s.pending = ""
}
