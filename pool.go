package arraypool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Pool represents a pool of reusable []T arrays.
//
// Arrays are grouped into power-of-two size classes. Each class keeps at most
// MaxArraysPerBucket arrays; requests above MaxTrackedLength bypass the pool.
//
// Distinct pools may be used for distinct workloads. Properly sized pools
// help reducing memory waste.
type Pool[T any] struct {
	classes            sizeClasses
	maxTrackedLength   int
	maxArraysPerBucket int

	buckets []*bucket[T]
	empty   []T

	logger *zap.Logger
	stats  counters
}

// New creates a pool serving arrays of up to maxTrackedLength elements from
// buckets holding at most maxArraysPerBucket arrays each.
func New[T any](maxTrackedLength, maxArraysPerBucket int, opts ...Option) (*Pool[T], error) {
	if maxTrackedLength <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "max tracked length must be positive, got %d", maxTrackedLength)
	}
	if maxArraysPerBucket <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "max arrays per bucket must be positive, got %d", maxArraysPerBucket)
	}
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool[T]{
		classes:            newSizeClasses(cfg.minClassLength, maxTrackedLength),
		maxTrackedLength:   maxTrackedLength,
		maxArraysPerBucket: maxArraysPerBucket,
		empty:              make([]T, 0),
		logger:             cfg.logger,
	}
	p.buckets = make([]*bucket[T], p.classes.count())
	for i := range p.buckets {
		p.buckets[i] = newBucket[T](p.classes.capacityOf(i), maxArraysPerBucket)
	}
	return p, nil
}

// NewDefault creates a pool with DefaultMaxTrackedLength and
// DefaultMaxArraysPerBucket.
//
// It panics if opts carry an invalid setting.
func NewDefault[T any](opts ...Option) *Pool[T] {
	p, err := New[T](DefaultMaxTrackedLength, DefaultMaxArraysPerBucket, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// MaxTrackedLength returns the largest length served from the buckets.
func (p *Pool[T]) MaxTrackedLength() int { return p.maxTrackedLength }

// MaxArraysPerBucket returns the depth of every bucket.
func (p *Pool[T]) MaxArraysPerBucket() int { return p.maxArraysPerBucket }

// Acquire returns an array with len >= minimumLength.
//
// In-range lengths are rounded up to their size class and served from the
// matching bucket when possible. Longer requests get a fresh array of exactly
// minimumLength elements. The contents of a reused array are whatever the
// previous owner left there unless it was released with clear set.
//
// The array may be returned to the pool via Release after the use
// in order to minimize GC overhead.
func (p *Pool[T]) Acquire(minimumLength int) ([]T, error) {
	if minimumLength < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative minimum length %d", minimumLength)
	}
	return p.get(minimumLength), nil
}

// MustAcquire is like Acquire but panics on a negative length.
func (p *Pool[T]) MustAcquire(minimumLength int) []T {
	buf, err := p.Acquire(minimumLength)
	if err != nil {
		panic(err)
	}
	return buf
}

// get expects minimumLength >= 0.
func (p *Pool[T]) get(minimumLength int) []T {
	c := p.classes.classify(minimumLength)
	switch c.kind {
	case emptyClass:
		return p.empty
	case oversized:
		p.stats.oversizedAllocs.Add(1)
		p.logger.Debug("allocating array above tracked length",
			zap.Int("length", minimumLength),
			zap.Int("max-tracked-length", p.maxTrackedLength))
		return make([]T, minimumLength)
	}

	if buf, ok := p.buckets[c.index].tryPop(); ok {
		p.stats.hits.Add(1)
		return buf
	}
	p.stats.misses.Add(1)
	return make([]T, c.capacity)
}

// Release returns array to the pool, zeroing it first when clear is set.
//
// Arrays above the class ceiling and arrays meeting a full bucket are
// discarded without error. An array whose length is not a size class of the
// pool is rejected with ErrProtocolViolation.
//
// The array mustn't be accessed after returning it to the pool.
// Otherwise another Acquire caller may observe or overwrite its contents.
func (p *Pool[T]) Release(array []T, clear bool) error {
	if array == nil {
		return errors.Wrap(ErrNilArray, "release")
	}
	if len(array) == 0 {
		return nil
	}

	c := p.classes.validateExisting(len(array))
	switch c.kind {
	case invalid:
		p.stats.violations.Add(1)
		p.logger.Warn("released array is not a size class of the pool",
			zap.Int("length", len(array)),
			zap.Int("min-class-length", p.classes.minLength()),
			zap.Int("class-ceiling", p.classes.ceiling()))
		return errors.Wrapf(ErrProtocolViolation, "array length %d", len(array))
	case oversized:
		p.stats.droppedOversized.Add(1)
		p.logger.Debug("discarding array above class ceiling",
			zap.Int("length", len(array)))
		return nil
	}

	if clear {
		zero(array)
	}
	if !p.buckets[c.index].tryPush(array) {
		p.stats.droppedFull.Add(1)
		p.logger.Debug("discarding array, bucket is full",
			zap.Int("length", len(array)),
			zap.Int("max-arrays-per-bucket", p.maxArraysPerBucket))
		return nil
	}
	p.stats.returned.Add(1)
	return nil
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	s := p.stats.snapshot()
	for _, b := range p.buckets {
		s.Retained += b.retained()
	}
	return s
}

// zero is the clear builtin, which the Release parameter shadows.
func zero[T any](array []T) {
	clear(array)
}
