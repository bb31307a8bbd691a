// Package lti provides the SQLite-backed long-term identifier store.
//
// A long-term identifier (LTI) is a working-memory identifier mirrored
// into persistent storage so it survives agent re-initialization. The
// symbol table itself never consults this store except through one
// capability query — "is this identifier long-term-linked?" — used by
// the numbering reset's leak check; everything else here serves the
// semantic-memory layer.
//
// The store also persists the per-letter numbering counters across
// re-initializations, so rehydrated identifiers never collide with
// freshly minted ones.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - Single writer connection to avoid SQLITE_BUSY
//   - Schema versioned via PRAGMA user_version
package lti
