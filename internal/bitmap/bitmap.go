package bitmap

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a set of non-negative int indices backed by a Roaring bitmap.
type Bitmap struct {
	rb *roaring.Bitmap
}

// bitmapPool reuses bitmaps across short-lived selection operations.
var bitmapPool = sync.Pool{
	New: func() any {
		return &Bitmap{rb: roaring.New()}
	},
}

// New creates an empty bitmap.
func New() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Of creates a bitmap holding values.
func Of(values ...int) *Bitmap {
	b := New()
	for _, v := range values {
		b.Add(v)
	}
	return b
}

// Get gets a cleared bitmap from the pool. Call Put when done.
func Get() *Bitmap {
	b := bitmapPool.Get().(*Bitmap)
	b.rb.Clear()
	return b
}

// Put returns a bitmap to the pool.
func Put(b *Bitmap) {
	if b == nil {
		return
	}
	b.rb.Clear()
	bitmapPool.Put(b)
}

// Add adds v. v must be in [0, 2^32); callers narrow untrusted input with
// conv.FitsUint32.
func (b *Bitmap) Add(v int) { b.rb.Add(uint32(v)) }

// AddRange adds every value in [lo, hi).
func (b *Bitmap) AddRange(lo, hi int) {
	if hi > lo {
		b.rb.AddRange(uint64(lo), uint64(hi))
	}
}

// Contains reports whether v is present.
func (b *Bitmap) Contains(v int) bool {
	return v >= 0 && b.rb.Contains(uint32(v))
}

// Or adds every value of o.
func (b *Bitmap) Or(o *Bitmap) { b.rb.Or(o.rb) }

// Len returns the number of values.
func (b *Bitmap) Len() int { return int(b.rb.GetCardinality()) }

// IsEmpty reports whether b has no values.
func (b *Bitmap) IsEmpty() bool { return b.rb.IsEmpty() }

// Min returns the smallest value. b must not be empty.
func (b *Bitmap) Min() int { return int(b.rb.Minimum()) }

// Max returns the largest value. b must not be empty.
func (b *Bitmap) Max() int { return int(b.rb.Maximum()) }

// AppendTo appends the values in ascending order to dst.
func (b *Bitmap) AppendTo(dst []int) []int {
	it := b.rb.Iterator()
	for it.HasNext() {
		dst = append(dst, int(it.Next()))
	}
	return dst
}

// ForEach calls fn on every value in ascending order until fn returns false.
func (b *Bitmap) ForEach(fn func(v int) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			return
		}
	}
}
