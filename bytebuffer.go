package arraypool

import (
	"io"
	"sync"
	"sync/atomic"
)

const (
	calibrateCallsThreshold = 42000

	minReadSize = 512
)

// ByteBuffer provides byte buffer, which can be used for minimizing
// memory allocations.
//
// The backing array comes from a Pool[byte] and is moved to a larger size
// class when the buffer grows. The array it leaves behind goes back to the pool.
//
// Use AcquireByteBuffer for obtaining an empty byte buffer.
type ByteBuffer struct {
	buf []byte

	// backing is the array obtained from pool, nil when buf was supplied by the caller.
	backing []byte
	pool    *Pool[byte]
}

// NewByteBuffer creates and initializes a new ByteBuffer using buf as its initial
// contents. buf is never released to a pool.
func NewByteBuffer(buf []byte) *ByteBuffer { return &ByteBuffer{buf: buf} }

// Len returns the size of the byte buffer.
func (b *ByteBuffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the buffer's underlying byte slice.
func (b *ByteBuffer) Cap() int {
	return cap(b.buf)
}

func (b *ByteBuffer) arrays() *Pool[byte] {
	if b.pool == nil {
		b.pool = Shared[byte]()
	}
	return b.pool
}

// grow makes room for at least n more bytes.
func (b *ByteBuffer) grow(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	need := len(b.buf) + n
	if c := 2 * cap(b.buf); c > need {
		need = c
	}
	backing := b.arrays().get(need)
	buf := backing[:len(b.buf)]
	copy(buf, b.buf)
	b.releaseBacking()
	b.buf = buf
	b.backing = backing
}

func (b *ByteBuffer) releaseBacking() {
	if b.backing != nil {
		_ = b.pool.Release(b.backing, false)
	}
	b.backing = nil
}

// ReadFrom implements io.ReaderFrom.
//
// The function appends all the data read from r to b.
func (b *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var n int64
	for {
		b.grow(minReadSize)
		m, err := r.Read(b.buf[len(b.buf):cap(b.buf)])
		b.buf = b.buf[:len(b.buf)+m]
		n += int64(m)
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
	}
}

// WriteTo implements io.WriterTo.
func (b *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// Bytes returns all the bytes accumulated in the buffer.
//
// The returned slice is only valid until the next write or release.
func (b *ByteBuffer) Bytes() []byte {
	return b.buf
}

// Write implements io.Writer - it appends p to the buffer.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	b.grow(len(p))
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends the byte c to the buffer.
//
// The purpose of this function is bytes.Buffer compatibility.
//
// The function always returns nil.
func (b *ByteBuffer) WriteByte(c byte) error {
	b.grow(1)
	b.buf = append(b.buf, c)
	return nil
}

// WriteString appends s to the buffer.
func (b *ByteBuffer) WriteString(s string) (int, error) {
	b.grow(len(s))
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// Set sets the buffer contents to p.
func (b *ByteBuffer) Set(p []byte) {
	b.buf = b.buf[:0]
	b.grow(len(p))
	b.buf = append(b.buf, p...)
}

// SetString sets the buffer contents to s.
func (b *ByteBuffer) SetString(s string) {
	b.buf = b.buf[:0]
	b.grow(len(s))
	b.buf = append(b.buf, s...)
}

// String returns string representation of the buffer contents.
func (b *ByteBuffer) String() string {
	return string(b.buf)
}

// Reset makes the buffer empty. The backing array is kept.
func (b *ByteBuffer) Reset() {
	b.buf = b.buf[:0]
}

// ByteBufferPool recycles ByteBuffers and their backing arrays.
//
// It counts the lengths of released buffers per size class and
// periodically picks the most frequent class as the initial capacity of
// buffers it hands out.
type ByteBufferPool struct {
	pool *Pool[byte]

	calls       []atomic.Uint64
	calibrating atomic.Bool
	defaultSize atomic.Int64

	buffers sync.Pool
}

// NewByteBufferPool creates a ByteBufferPool backed by p.
func NewByteBufferPool(p *Pool[byte]) *ByteBufferPool {
	return &ByteBufferPool{
		pool:  p,
		calls: make([]atomic.Uint64, p.classes.count()),
	}
}

var defaultByteBufferPool = sync.OnceValue(func() *ByteBufferPool {
	return NewByteBufferPool(Shared[byte]())
})

// AcquireByteBuffer returns an empty byte buffer from the shared pool.
//
// Got byte buffer may be returned to the pool via ReleaseByteBuffer call.
// This reduces the number of memory allocations required for byte buffer
// management.
func AcquireByteBuffer() *ByteBuffer { return defaultByteBufferPool().Get() }

// ReleaseByteBuffer returns byte buffer to the shared pool.
//
// ByteBuffer contents mustn't be touched after returning it to the pool.
// Otherwise data races will occur.
func ReleaseByteBuffer(b *ByteBuffer) { defaultByteBufferPool().Put(b) }

// Get returns new byte buffer with zero length.
//
// The byte buffer may be returned to the pool via Put after the use
// in order to minimize GC overhead.
func (bp *ByteBufferPool) Get() *ByteBuffer {
	b, _ := bp.buffers.Get().(*ByteBuffer)
	if b == nil {
		b = &ByteBuffer{}
	}
	b.pool = bp.pool
	if n := bp.defaultSize.Load(); n > 0 {
		b.grow(int(n))
	}
	return b
}

// Put releases byte buffer obtained via Get to the pool.
//
// The buffer mustn't be accessed after returning to the pool.
func (bp *ByteBufferPool) Put(b *ByteBuffer) {
	if c := bp.pool.classes.classify(len(b.buf)); c.kind == inRange {
		if bp.calls[c.index].Add(1) > calibrateCallsThreshold {
			bp.calibrate()
		}
	}
	b.releaseBacking()
	b.buf = nil
	bp.buffers.Put(b)
}

// DefaultSize returns the calibrated initial capacity of new buffers,
// zero until the first calibration.
func (bp *ByteBufferPool) DefaultSize() int {
	return int(bp.defaultSize.Load())
}

func (bp *ByteBufferPool) calibrate() {
	if !bp.calibrating.CompareAndSwap(false, true) {
		return
	}

	best, bestCalls := 0, uint64(0)
	for i := range bp.calls {
		calls := bp.calls[i].Swap(0)
		if calls > bestCalls {
			best, bestCalls = i, calls
		}
	}
	bp.defaultSize.Store(int64(bp.pool.classes.capacityOf(best)))

	bp.calibrating.Store(false)
}
