// Package lookup resolves compound identifiers and reads unit-tagged
// properties from a store snapshot.
//
// A Catalog binds every operation to one immutable snapshot:
//
//	cat := lookup.NewCatalog(snap)
//	id, err := cat.Resolve("H2O")
//	liquid, err := cat.StateID("liquid")
//	rho, err := cat.Density(id, liquid, 0) // 0.9998 g/cm³
//
// # Resolution
//
// Candidates runs two passes over the snapshot: compounds whose CAS number
// or formula equals the query, then names whose name or alternate names
// equal it, each in table order. PreferStructural picks the winner:
// formula/CAS matches take priority over free-text names. Strings are
// compared after NFC normalization and whitespace trimming.
//
// # Property access
//
// Every property kind has a plural accessor returning all matching rows
// (Densities, AntoineSets, Points, Enthalpies, TabulatedVolumeChanges) and
// a separate selection step, Select, that picks one by ordinal index.
//
// # Errors
//
// Lookup failures are *Error values carrying a Code; use the Is* helpers or
// errors.As to inspect them. The fusion calculation may also return a
// *units.MismatchError, which indicates mis-tagged operands.
package lookup
