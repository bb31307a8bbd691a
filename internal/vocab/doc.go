// Package vocab loads subsystem vocabulary manifests.
//
// A manifest is a YAML file declaring the protocol symbols a subsystem
// (episodic memory, semantic memory, reinforcement learning, or an
// external extension) needs interned for the agent's lifetime. The raw
// document is validated against an embedded CUE schema before any
// symbol is created, so a malformed manifest never half-populates the
// table.
//
// Seeding goes through the ordinary symbol.Table Make path: seeded
// symbols are structurally indistinguishable from user-created ones,
// and releasing the seed drops exactly one reference per entry.
package vocab
