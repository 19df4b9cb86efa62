package arraypool

import "sync/atomic"

// Stats describes pool activity since the pool was created.
type Stats struct {
	// Hits counts acquires served from a bucket.
	Hits uint64
	// Misses counts in-range acquires that had to allocate.
	Misses uint64
	// OversizedAllocs counts acquires above the tracking ceiling.
	OversizedAllocs uint64
	// Returned counts releases stored in a bucket.
	Returned uint64
	// DroppedFull counts releases discarded because the bucket was full.
	DroppedFull uint64
	// DroppedOversized counts releases discarded because the array was above the class ceiling.
	DroppedOversized uint64
	// Violations counts releases rejected with ErrProtocolViolation.
	Violations uint64
	// Retained is the number of arrays currently held by the pool.
	Retained int
}

type counters struct {
	hits             atomic.Uint64
	misses           atomic.Uint64
	oversizedAllocs  atomic.Uint64
	returned         atomic.Uint64
	droppedFull      atomic.Uint64
	droppedOversized atomic.Uint64
	violations       atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:             c.hits.Load(),
		Misses:           c.misses.Load(),
		OversizedAllocs:  c.oversizedAllocs.Load(),
		Returned:         c.returned.Load(),
		DroppedFull:      c.droppedFull.Load(),
		DroppedOversized: c.droppedOversized.Load(),
		Violations:       c.violations.Load(),
	}
}
