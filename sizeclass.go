package arraypool

import "math/bits"

const (
	minBitSize = 4 // 2**4=16 elements is the smallest size class

	// Class capacities must fit into an int on 32-bit platforms.
	maxBitSize = 30

	// DefaultMinClassLength is the capacity of the smallest size class.
	DefaultMinClassLength = 1 << minBitSize

	// MaxClassLength is the largest capacity a size class may have.
	// Larger tracking ceilings are clamped to it.
	MaxClassLength = 1 << maxBitSize
)

type classKind uint8

const (
	emptyClass classKind = iota
	inRange
	oversized
	invalid
)

func (k classKind) String() string {
	switch k {
	case emptyClass:
		return "empty"
	case inRange:
		return "in-range"
	case oversized:
		return "oversized"
	default:
		return "invalid"
	}
}

type sizeClass struct {
	kind     classKind
	capacity int
	index    int
}

// sizeClasses maps lengths onto the power-of-two classes of a single pool.
// It is immutable once built.
type sizeClasses struct {
	minBits     uint
	ceilingBits uint
	maxTracked  int
}

// newSizeClasses expects minClassLength to be a power of two and
// maxTrackedLength to be positive.
func newSizeClasses(minClassLength, maxTrackedLength int) sizeClasses {
	if maxTrackedLength > MaxClassLength {
		maxTrackedLength = MaxClassLength
	}
	minBits := log2Ceil(minClassLength)
	ceilingBits := log2Ceil(maxTrackedLength)
	if ceilingBits < minBits {
		ceilingBits = minBits
	}
	return sizeClasses{
		minBits:     minBits,
		ceilingBits: ceilingBits,
		maxTracked:  maxTrackedLength,
	}
}

func (sc sizeClasses) count() int {
	return int(sc.ceilingBits-sc.minBits) + 1
}

func (sc sizeClasses) minLength() int {
	return 1 << sc.minBits
}

func (sc sizeClasses) ceiling() int {
	return 1 << sc.ceilingBits
}

func (sc sizeClasses) capacityOf(index int) int {
	return 1 << (sc.minBits + uint(index))
}

// classify rounds a requested length up to its size class.
func (sc sizeClasses) classify(n int) sizeClass {
	switch {
	case n == 0:
		return sizeClass{kind: emptyClass}
	case n > sc.maxTracked:
		return sizeClass{kind: oversized, capacity: n}
	}
	if n < sc.minLength() {
		n = sc.minLength()
	}
	b := log2Ceil(n)
	return sizeClass{
		kind:     inRange,
		capacity: 1 << b,
		index:    int(b - sc.minBits),
	}
}

// validateExisting classifies the length of an array handed back by a caller.
// Only exact class capacities are accepted for storage. Lengths above the
// tracked length that are not a class capacity are the exact-length arrays
// classify hands out for oversized requests.
func (sc sizeClasses) validateExisting(length int) sizeClass {
	aligned := length&(length-1) == 0
	switch {
	case length > sc.ceiling(), length > sc.maxTracked && !aligned:
		return sizeClass{kind: oversized, capacity: length}
	case length < sc.minLength() || !aligned:
		return sizeClass{kind: invalid, capacity: length}
	}
	b := uint(bits.TrailingZeros(uint(length)))
	return sizeClass{
		kind:     inRange,
		capacity: length,
		index:    int(b - sc.minBits),
	}
}

// log2Ceil returns the smallest b such that 1<<b >= n, for n >= 1.
func log2Ceil(n int) uint {
	return uint(bits.Len(uint(n - 1)))
}
