// Package aggregates contains infrastructure implementations of the shop
// aggregate contracts.
//
// Implementations compose table-level repos from internal/data/repos and own
// the transaction boundary for every invariant-critical write.
package aggregates
