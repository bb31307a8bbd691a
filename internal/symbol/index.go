package symbol

// bucketIndex is a resizable bucketed hash index mapping a compressed
// hash value to a chain of entries. One instance backs each symbol kind.
//
// The hash callback must produce a value < 2^log2 for the given bucket
// width; compress guarantees that. The index doubles when the entry
// count exceeds twice the bucket count and never shrinks.
type bucketIndex[T comparable] struct {
	hash    func(item T, log2 uint32) uint32
	log2    uint32
	count   int
	buckets [][]T
}

const initialIndexLog2 = 4

func newBucketIndex[T comparable](hash func(T, uint32) uint32) *bucketIndex[T] {
	return &bucketIndex[T]{
		hash:    hash,
		log2:    initialIndexLog2,
		buckets: make([][]T, 1<<initialIndexLog2),
	}
}

// lookup scans the chain for the key's bucket and returns the first
// entry accepted by match.
func (ix *bucketIndex[T]) lookup(h uint32, match func(T) bool) (T, bool) {
	for _, item := range ix.buckets[h] {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// insert adds an entry, resizing first if the load factor demands it.
// The caller guarantees the entry is not already present.
func (ix *bucketIndex[T]) insert(item T) {
	if ix.count >= 2*len(ix.buckets) {
		ix.resize(ix.log2 + 1)
	}
	h := ix.hash(item, ix.log2)
	ix.buckets[h] = append(ix.buckets[h], item)
	ix.count++
}

// remove deletes an entry by identity. Returns false if the entry is
// not present, which indicates a broken table invariant upstream.
func (ix *bucketIndex[T]) remove(item T) bool {
	h := ix.hash(item, ix.log2)
	chain := ix.buckets[h]
	for i, existing := range chain {
		if existing == item {
			chain[i] = chain[len(chain)-1]
			var zero T
			chain[len(chain)-1] = zero
			ix.buckets[h] = chain[:len(chain)-1]
			ix.count--
			return true
		}
	}
	return false
}

// forEach visits every live entry. Visiting order is unspecified.
// The callback must not insert or remove entries.
func (ix *bucketIndex[T]) forEach(fn func(T)) {
	for _, chain := range ix.buckets {
		for _, item := range chain {
			fn(item)
		}
	}
}

// resize rebuilds the buckets at the new width.
func (ix *bucketIndex[T]) resize(log2 uint32) {
	old := ix.buckets
	ix.log2 = log2
	ix.buckets = make([][]T, 1<<log2)
	for _, chain := range old {
		for _, item := range chain {
			h := ix.hash(item, ix.log2)
			ix.buckets[h] = append(ix.buckets[h], item)
		}
	}
}

// Len returns the number of live entries.
func (ix *bucketIndex[T]) Len() int { return ix.count }
