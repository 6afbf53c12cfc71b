package omap

// Map is a map that remembers insertion order. Setting an existing key keeps
// its original position.
type Map[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		index: make(map[K]int),
	}
}

func (m *Map[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.values[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.values = append(m.values, v)
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.index[k]
	if ok {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

func (m *Map[K, V]) Each(cb func(k K, v V)) {
	for i, k := range m.keys {
		cb(k, m.values[i])
	}
}
