package ck

import "errors"

var (
	// ErrKeyNotFound is returned when an operation requires a key that is not stored.
	ErrKeyNotFound = errors.New("ck: key not found")
	// ErrInvalidCapacity is returned when a map is created or resized with no buckets.
	ErrInvalidCapacity = errors.New("ck: hash map capacity must be positive")
)

// HashMap is a chained hash table keyed by 64-bit integers.
// It backs both the glyph cache of a Font and the sender registry of a Bus.
//
// Insert does not check for duplicates. A duplicate insert shadows the older
// entry: Get and Remove always see the most recently inserted value for a key.
// The table never grows on its own; callers decide when to Resize.
type HashMap[V any] struct {
	buckets []*bucket[V]
	count   int
}

type bucket[V any] struct {
	key   int64
	value V
	next  *bucket[V]
}

// NewHashMap creates a map with a fixed number of buckets.
func NewHashMap[V any](capacity int) (*HashMap[V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &HashMap[V]{buckets: make([]*bucket[V], capacity)}, nil
}

// sdbm hashes the little-endian bytes of key.
func sdbm(key int64) uint64 {
	var h uint64
	k := uint64(key)
	for i := 0; i < 8; i++ {
		c := k & 0xFF
		h = c + (h << 6) + (h << 16) - h
		k >>= 8
	}
	return h
}

// defaultBuckets is the table size a zero HashMap gets on first Insert.
const defaultBuckets = 64

func (m *HashMap[V]) index(key int64) int {
	return int(sdbm(key) % uint64(len(m.buckets)))
}

// Insert prepends a new entry for key. A zero HashMap allocates
// defaultBuckets buckets first.
func (m *HashMap[V]) Insert(key int64, value V) {
	if len(m.buckets) == 0 {
		ckLogger.Warn("insert into uninitialized hash map", "buckets", defaultBuckets)
		m.buckets = make([]*bucket[V], defaultBuckets)
	}
	i := m.index(key)
	m.buckets[i] = &bucket[V]{key: key, value: value, next: m.buckets[i]}
	m.count++
}

// Get returns the most recently inserted value for key.
func (m *HashMap[V]) Get(key int64) (V, bool) {
	var zero V
	if len(m.buckets) == 0 {
		return zero, false
	}
	for b := m.buckets[m.index(key)]; b != nil; b = b.next {
		if b.key == key {
			return b.value, true
		}
	}
	return zero, false
}

// Remove deletes the first entry found for key.
func (m *HashMap[V]) Remove(key int64) error {
	if len(m.buckets) == 0 {
		return ErrKeyNotFound
	}
	i := m.index(key)
	var prev *bucket[V]
	for b := m.buckets[i]; b != nil; b = b.next {
		if b.key == key {
			if prev != nil {
				prev.next = b.next
			} else {
				m.buckets[i] = b.next
			}
			m.count--
			return nil
		}
		prev = b
	}
	return ErrKeyNotFound
}

// Replace swaps the value stored for key and returns the previous one.
func (m *HashMap[V]) Replace(key int64, value V) (V, error) {
	var zero V
	if len(m.buckets) == 0 {
		return zero, ErrKeyNotFound
	}
	for b := m.buckets[m.index(key)]; b != nil; b = b.next {
		if b.key == key {
			old := b.value
			b.value = value
			return old, nil
		}
	}
	return zero, ErrKeyNotFound
}

// Resize rehashes every entry into capacity buckets.
// Shadowed duplicates keep their order, so Get results do not change.
func (m *HashMap[V]) Resize(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	old := m.buckets
	m.buckets = make([]*bucket[V], capacity)

	var chain []*bucket[V]
	for _, head := range old {
		chain = chain[:0]
		for b := head; b != nil; b = b.next {
			chain = append(chain, b)
		}
		// Oldest first, so prepending restores newest-at-head.
		for i := len(chain) - 1; i >= 0; i-- {
			b := chain[i]
			j := m.index(b.key)
			b.next = m.buckets[j]
			m.buckets[j] = b
		}
	}
	return nil
}

// Len returns the number of live entries, duplicates included.
func (m *HashMap[V]) Len() int {
	return m.count
}

// Cap returns the bucket count.
func (m *HashMap[V]) Cap() int {
	return len(m.buckets)
}

// Range calls fn for every entry until fn returns false.
func (m *HashMap[V]) Range(fn func(key int64, value V) bool) {
	for _, head := range m.buckets {
		for b := head; b != nil; b = b.next {
			if !fn(b.key, b.value) {
				return
			}
		}
	}
}

// Clear drops every entry and keeps the bucket count.
func (m *HashMap[V]) Clear() {
	clear(m.buckets)
	m.count = 0
}
