// Package store is a SQLite registry of generated sine tables.
//
// Every generation records its parameters, target and manifest digest.
// Regenerating with the same parameters must reproduce the same digest;
// CheckDrift reports when it does not.
//
// # Ordering
//
// Records carry a seq INTEGER assigned on insert. Queries order by seq,
// never by created_at, so listings are stable when wall clocks disagree.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
