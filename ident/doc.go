// Package ident implements the four packed identifier types that make BCC
// lattice coordinates storable and sortable: Index64 (Morton-ordered
// in-memory key), Route64 (compact routing key), Galactic128 (frame-scoped
// archival key), and Hilbert64 (locality-ordered scan key).
//
// All four are value types over fixed-width integers. Construction validates
// the lattice parity invariant, the coordinate range, and the LOD bound of
// the concrete type; every violation is a structured, recoverable error.
// Hierarchy and neighbor enumeration are raw bit arithmetic on the packed
// form plus the lattice stencils, so identifiers can be traversed without
// touching any global state.
//
// Each type also has a checksummed textual form (Bech32m with a
// type-identifying prefix); see the String methods and Parse.
package ident
