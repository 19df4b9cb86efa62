package arraypool_test

import (
	"fmt"

	"github.com/valyala/arraypool"
)

func ExamplePool() {
	p, err := arraypool.New[byte](1024, 4)
	if err != nil {
		panic(err)
	}

	buf, _ := p.Acquire(100)
	n := copy(buf, "scratch space")
	fmt.Printf("len=%d contents=%q\n", len(buf), buf[:n])

	// It is safe to release the array now, since it is no longer used.
	if err := p.Release(buf, true); err != nil {
		panic(err)
	}

	again, _ := p.Acquire(120)
	fmt.Printf("reused=%v first=%d\n", &again[0] == &buf[0], again[0])

	// Output:
	// len=128 contents="scratch space"
	// reused=true first=0
}

func ExampleShared() {
	ints := arraypool.Shared[int]()
	buf := ints.MustAcquire(10)
	fmt.Println(len(buf) >= 10, ints == arraypool.Shared[int]())
	_ = ints.Release(buf, false)

	// Output:
	// true true
}

func ExampleByteBuffer() {
	bb := arraypool.AcquireByteBuffer()

	bb.WriteString("first line\n")
	bb.Write([]byte("second line\n"))

	fmt.Printf("bytebuffer contents=%q", bb.Bytes())

	// It is safe to release byte buffer now, since it is
	// no longer used.
	arraypool.ReleaseByteBuffer(bb)

	// Output:
	// bytebuffer contents="first line\nsecond line\n"
}
