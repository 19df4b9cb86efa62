package arraypool

import "io"

const copyBufferSize = 32 * 1024

// Copy copies from src to dst like io.Copy, using a scratch buffer from the
// shared byte pool.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	return CopyWithPool(dst, src, Shared[byte]())
}

// CopyWithPool is like Copy but takes the scratch buffer from p.
func CopyWithPool(dst io.Writer, src io.Reader, p *Pool[byte]) (int64, error) {
	buf := p.get(copyBufferSize)
	n, err := io.CopyBuffer(dst, src, buf)
	_ = p.Release(buf, false)
	return n, err
}
