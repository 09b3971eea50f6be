package wire

// Map is a chained hash map keyed by a uint64 and sized at construction.
// Keys are distributed by simple modulo, matching the reference
// implementation's bucket scheme; chains are doubly linked so Remove is
// O(1) once the pair is found.
type Map[V any] struct {
	buckets []*pair[V]
	size    uint64
}

type pair[V any] struct {
	key        uint64
	value      V
	prev, next *pair[V]
}

// NewMap allocates a map with the given bucket count.
func NewMap[V any](buckets uint64) *Map[V] {
	if buckets == 0 {
		buckets = 1
	}
	return &Map[V]{buckets: make([]*pair[V], buckets), size: buckets}
}

func (m *Map[V]) bucket(key uint64) uint64 { return key % m.size }

// Set inserts or replaces the value stored under key.
func (m *Map[V]) Set(key uint64, value V) {
	n := m.bucket(key)
	if existing := m.find(n, key); existing != nil {
		existing.value = value
		return
	}
	head := m.buckets[n]
	p := &pair[V]{key: key, value: value, next: head}
	if head != nil {
		head.prev = p
	}
	m.buckets[n] = p
}

func (m *Map[V]) find(bucket, key uint64) *pair[V] {
	for p := m.buckets[bucket]; p != nil; p = p.next {
		if p.key == key {
			return p
		}
	}
	return nil
}

// Get returns the value stored under key, if any.
func (m *Map[V]) Get(key uint64) (V, bool) {
	var zero V
	n := m.bucket(key)
	p := m.find(n, key)
	if p == nil {
		return zero, false
	}
	return p.value, true
}

// Remove deletes the pair stored under key, unlinking it from its chain.
func (m *Map[V]) Remove(key uint64) {
	n := m.bucket(key)
	p := m.find(n, key)
	if p == nil {
		return
	}
	switch {
	case p.prev == nil && p.next == nil:
		m.buckets[n] = nil
	case p.prev == nil:
		p.next.prev = nil
		m.buckets[n] = p.next
	case p.next == nil:
		p.prev.next = nil
	default:
		p.prev.next = p.next
		p.next.prev = p.prev
	}
}

// Each calls fn for every live pair, in bucket then chain order. fn must
// not mutate the map.
func (m *Map[V]) Each(fn func(key uint64, value V)) {
	for _, head := range m.buckets {
		for p := head; p != nil; p = p.next {
			fn(p.key, p.value)
		}
	}
}

// StringMap hashes its keys with djb2 (h = 5381; h = h*33 + c) and
// delegates to Map.
type StringMap[V any] struct {
	m *Map[V]
}

// NewStringMap allocates a string-keyed map with the given bucket count.
func NewStringMap[V any](buckets uint64) *StringMap[V] {
	return &StringMap[V]{m: NewMap[V](buckets)}
}

// HashString computes the djb2 hash of s.
func HashString(s string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		h = h*33 + uint64(s[i])
	}
	return h
}

func (m *StringMap[V]) Set(key string, value V)    { m.m.Set(HashString(key), value) }
func (m *StringMap[V]) Get(key string) (V, bool)   { return m.m.Get(HashString(key)) }
func (m *StringMap[V]) Remove(key string)          { m.m.Remove(HashString(key)) }
func (m *StringMap[V]) Each(fn func(key uint64, v V)) { m.m.Each(fn) }

// List is a doubly linked list of owned values, used where insertion order
// matters more than lookup by key. Get and Remove walk from the head to
// position n, so both take O(n) steps.
type List[V any] struct {
	head, tail *node[V]
	len        int
}

type node[V any] struct {
	value      V
	prev, next *node[V]
}

// NewList returns an empty list.
func NewList[V any]() *List[V] { return &List[V]{} }

// Push appends value to the end of the list.
func (l *List[V]) Push(value V) {
	n := &node[V]{value: value, prev: l.tail}
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.len++
}

// Get returns the value at position n, or an error if n is out of range.
func (l *List[V]) Get(n int) (V, error) {
	var zero V
	if n < 0 || n >= l.len {
		return zero, newErr(CodeOutOfRange, "list: %d is out of range", n)
	}
	cur := l.head
	for i := 0; i < n; i++ {
		cur = cur.next
	}
	return cur.value, nil
}

// Remove deletes the element at position n.
func (l *List[V]) Remove(n int) {
	if n < 0 || n >= l.len {
		return
	}
	cur := l.head
	for i := 0; i < n; i++ {
		cur = cur.next
	}
	if cur.prev != nil {
		cur.prev.next = cur.next
	} else {
		l.head = cur.next
	}
	if cur.next != nil {
		cur.next.prev = cur.prev
	} else {
		l.tail = cur.prev
	}
	l.len--
}

// Len returns the number of elements in the list.
func (l *List[V]) Len() int { return l.len }
