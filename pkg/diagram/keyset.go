package diagram

import "slices"

// keySet is an insertion-ordered set of strings.
type keySet struct {
	keys  []string
	index map[string]struct{}
}

func newKeySet() *keySet {
	return &keySet{index: make(map[string]struct{})}
}

func (k *keySet) Has(key string) bool {
	_, ok := k.index[key]
	return ok
}

// Add inserts key and reports whether it was absent.
func (k *keySet) Add(key string) bool {
	if k.Has(key) {
		return false
	}
	k.index[key] = struct{}{}
	k.keys = append(k.keys, key)
	return true
}

// Delete removes key and reports whether it was present.
func (k *keySet) Delete(key string) bool {
	if !k.Has(key) {
		return false
	}
	delete(k.index, key)
	k.keys = slices.DeleteFunc(k.keys, func(s string) bool { return s == key })
	return true
}

func (k *keySet) Keys() []string {
	return slices.Clone(k.keys)
}

func (k *keySet) Len() int { return len(k.keys) }

func (k *keySet) Reset() {
	k.keys = nil
	clear(k.index)
}
