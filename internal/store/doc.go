// Package store provides the read-only SQLite property store.
//
// The store loads every user table of a compound database into memory once
// and exposes the result as an immutable Snapshot:
//   - Raw tables: every table keyed by name, rows in rowid order
//   - Typed relations: compounds, names, physical states, density, Antoine
//     coefficients, phase points, transition enthalpies and tabulated fusion
//     volume changes
//
// # Critical Patterns
//
// Read-only access
//   - The database is opened with mode=ro and query_only=ON
//   - The store never creates, migrates or writes tables
//
// Deterministic row order
//   - Tables are enumerated ORDER BY name and read ORDER BY rowid
//   - Ordinal selection in the lookup layer depends on this order
//
// Referential integrity at load
//   - Every dependent row must reference an existing compound id
//   - Density rows must reference an existing physical state id
//   - Violations fail the load with a *LoadError
//
// Copy-on-write reload
//   - Holder publishes snapshots through an atomic pointer
//   - Readers keep the snapshot they started with; a failed reload leaves
//     the previous snapshot in place
package store
