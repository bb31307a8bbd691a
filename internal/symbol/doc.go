// Package symbol implements the interned-symbol store that underlies the
// engine's working memory. Every atomic value used by the matching,
// learning, and memory subsystems passes through a Table so that
// structurally-equal values share exactly one canonical, reference-counted
// instance (hash-consing).
//
// A Table owns five typed hash indexes, one per symbol kind, each backed
// by a free-list pool. Symbols are created with the Make* methods
// (find-or-create plus one reference), shared via AddRef, and destroyed
// synchronously by RemoveRef the instant the last reference drops.
//
// Thread-safety model: a Table is exclusively owned by one engine
// instance and all mutations run on that instance's single logical
// thread of control. No method locks, blocks, or yields; independent
// Tables in one process need no cross-instance synchronization.
package symbol
