package image

import "sync"

// Pool recycles ImageBuf instances of identical dimensions.
//
// The layer stack recomposites into a fresh buffer after every edit; the
// previous composite goes back to the pool so steady-state painting does not
// allocate a canvas-sized buffer per frame.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
	maxSize int // max buffers per bucket, 0 = unlimited
}

type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each size.
// A maxPerBucket of 0 or less means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*ImageBuf),
		maxSize: maxPerBucket,
	}
}

// Get returns a transparent width x height buffer, reusing a pooled one
// when available. Returns nil for non-positive dimensions.
func (p *Pool) Get(width, height int) *ImageBuf {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()

	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil
	}
	return buf
}

// Put clears buf and keeps it for reuse. Nil buffers and buffers beyond the
// bucket limit are dropped.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil {
		return
	}
	buf.Clear()

	key := poolKey{width: buf.width, height: buf.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// defaultPool is the package-level pool.
var defaultPool = NewPool(4)

// GetFromDefault retrieves a buffer from the package-level pool.
func GetFromDefault(width, height int) *ImageBuf {
	return defaultPool.Get(width, height)
}

// PutToDefault returns a buffer to the package-level pool.
func PutToDefault(buf *ImageBuf) {
	defaultPool.Put(buf)
}
