package symbol

// pool is a fixed-size block allocator for one symbol kind. Blocks are
// carved blockSize entries at a time and recycled through a local free
// list, so allocate and release are O(1) and freed entries never move.
// Not safe for concurrent use; a pool belongs to exactly one Table.
type pool[T any] struct {
	name      string
	blockSize int
	free      []*T
	live      int
	allocated int // total entries ever carved, for diagnostics
}

const defaultPoolBlockSize = 256

func newPool[T any](name string) *pool[T] {
	return &pool[T]{name: name, blockSize: defaultPoolBlockSize}
}

// allocate returns a zeroed entry, reusing the free list when possible.
func (p *pool[T]) allocate() *T {
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		*item = zero
		p.live++
		return item
	}
	p.grow()
	return p.allocate()
}

// release returns an entry to the free list.
func (p *pool[T]) release(item *T) {
	var zero T
	*item = zero
	p.free = append(p.free, item)
	p.live--
}

// grow carves one more block onto the free list.
func (p *pool[T]) grow() {
	block := make([]T, p.blockSize)
	for i := range block {
		p.free = append(p.free, &block[i])
	}
	p.allocated += p.blockSize
}

// Live returns the number of entries currently handed out.
func (p *pool[T]) Live() int { return p.live }
