package arraypool

import "sync"

// bucket is a bounded LIFO of arrays sharing one exact length.
//
// The lock only covers the slot swap. Allocation and clearing happen
// outside of it.
type bucket[T any] struct {
	mu     sync.Mutex
	length int
	slots  [][]T
	count  int
}

func newBucket[T any](length, depth int) *bucket[T] {
	return &bucket[T]{
		length: length,
		slots:  make([][]T, depth),
	}
}

func (b *bucket[T]) tryPop() ([]T, bool) {
	b.mu.Lock()
	if b.count == 0 {
		b.mu.Unlock()
		return nil, false
	}
	b.count--
	buf := b.slots[b.count]
	b.slots[b.count] = nil
	b.mu.Unlock()
	return buf, true
}

// tryPush panics if buf does not have the bucket's length.
func (b *bucket[T]) tryPush(buf []T) bool {
	if len(buf) != b.length {
		panic("arraypool: array length does not match bucket")
	}
	b.mu.Lock()
	if b.count == len(b.slots) {
		b.mu.Unlock()
		return false
	}
	b.slots[b.count] = buf
	b.count++
	b.mu.Unlock()
	return true
}

func (b *bucket[T]) retained() int {
	b.mu.Lock()
	n := b.count
	b.mu.Unlock()
	return n
}
