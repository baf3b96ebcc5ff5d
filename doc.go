// Package spreadsheet implements an in-memory, single-sheet table of
// cells holding arithmetic formulas over cell references.
//
// A Sheet stores cells sparsely, keyed by Position. Each Cell holds one of
// three variants - Empty, Text, or Formula - and Formula cells memoize
// their evaluated result until an edit anywhere in their dependency chain
// invalidates it. Sheet.SetCell runs a probe/cycle-check/commit/invalidate
// transaction on every edit: a candidate formula is parsed and checked for
// circular references before any cell is mutated, and only a successful
// commit triggers invalidation of dependent caches.
package spreadsheet
