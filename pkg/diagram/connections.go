package diagram

import (
	"strings"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/rules"
)

// Context menu options offered on a rendered connection.
const (
	MenuDotted   = "dotted"
	MenuAnnotate = "add-annotation"
)

// MenuOption is an entry of the connection context menu.
type MenuOption struct {
	ID    string
	Label string
}

// ContextMenu lists the options of the connection context menu.
func ContextMenu() []MenuOption {
	return []MenuOption{
		{ID: MenuDotted, Label: "Dotted"},
		{ID: MenuAnnotate, Label: "Annotate"},
	}
}

// StartConnection begins drawing a custom connection from a live node.
// Starting again from the pending node cancels the drawing.
func (s *State) StartConnection(id string) error {
	if !s.Has(id) {
		return errors.New(errors.ErrCodeNotFound, "node %q is not in the diagram", id)
	}
	if s.pending == id {
		s.pending = ""
		return nil
	}
	s.pending = id
	return nil
}

// CancelConnection abandons the connection being drawn.
func (s *State) CancelConnection() { s.pending = "" }

// ClickNode completes a pending connection on node id. It returns the new
// custom connection key, or "" when nothing was pending or id is the
// pending node itself. The pending state is cleared either way.
func (s *State) ClickNode(id string) (string, error) {
	src := s.pending
	if src == "" {
		return "", nil
	}
	s.pending = ""
	if src == id {
		return "", nil
	}
	return s.AddCustomConnection(src, id)
}

// AddCustomConnection stores a custom connection from src to dst and
// clears any earlier dismissal of it. Both ids must be known.
func (s *State) AddCustomConnection(src, dst string) (string, error) {
	if err := s.addCustom(src, dst); err != nil {
		return "", err
	}
	key := rules.CustomKey(src, dst)
	s.changed("added connection", "key", key)
	return key, nil
}

func (s *State) addCustom(src, dst string) error {
	if src == "" || dst == "" || src == dst {
		return errors.New(errors.ErrCodeInvalidInput, "a connection needs two distinct nodes")
	}
	for _, id := range []string{src, dst} {
		if !s.Known(id) {
			return errors.New(errors.ErrCodeUnknownNode, "unknown node %q", id)
		}
	}
	key := rules.CustomKey(src, dst)
	s.connections.Add(key)
	s.dismissed.Delete(key)
	return nil
}

// RemoveCustomConnection deletes a custom connection together with its
// dismissed and dotted marks and its annotation.
func (s *State) RemoveCustomConnection(key string) error {
	if !s.connections.Delete(key) {
		return errors.New(errors.ErrCodeNotFound, "no custom connection %q", key)
	}
	s.dismissed.Delete(key)
	s.dotted.Delete(key)
	s.clearAnnotation(key)
	s.changed("removed connection", "key", key)
	return nil
}

// Dismiss hides a rendered connection. The dotted mark and the annotation
// of the key are dropped. Dismissal of rule connections lasts until the
// diagram is cleared.
func (s *State) Dismiss(key string) error {
	if _, _, ok := rules.Endpoints(key); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "malformed connection key %q", key)
	}
	s.dismissed.Add(key)
	s.dotted.Delete(key)
	s.clearAnnotation(key)
	s.changed("dismissed connection", "key", key)
	return nil
}

// ToggleDotted flips the dotted style of key and reports the new state.
func (s *State) ToggleDotted(key string) (bool, error) {
	if _, _, ok := rules.Endpoints(key); !ok {
		return false, errors.New(errors.ErrCodeInvalidInput, "malformed connection key %q", key)
	}
	on := s.dotted.Add(key)
	if !on {
		s.dotted.Delete(key)
	}
	s.changed("toggled dotted", "key", key, "dotted", on)
	return on, nil
}

// SetAnnotation stores a trimmed annotation under key and under the pair
// key of its endpoints. Blank text clears both, restoring the auto label.
func (s *State) SetAnnotation(key, text string) error {
	src, dst, ok := rules.Endpoints(key)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "malformed connection key %q", key)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.clearAnnotation(key)
	} else {
		s.annotations[key] = text
		s.annotations[rules.PairKey(src, dst)] = text
	}
	s.changed("annotated connection", "key", key)
	return nil
}

func (s *State) clearAnnotation(key string) {
	delete(s.annotations, key)
	if src, dst, ok := rules.Endpoints(key); ok {
		delete(s.annotations, rules.PairKey(src, dst))
	}
}

// ApplyMenu runs a context menu option on key. text is the annotation for
// [MenuAnnotate] and ignored otherwise.
func (s *State) ApplyMenu(key, option, text string) error {
	switch option {
	case MenuDotted:
		_, err := s.ToggleDotted(key)
		return err
	case MenuAnnotate:
		return s.SetAnnotation(key, text)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown menu option %q", option)
	}
}
