// Package sema holds the semantic analyses that run on a parsed translation
// unit between parsing and code emission:
//
//   - Collector: gathers the unit's declarations into the shared
//     symtab.Table (Cinder dialect).
//   - CallAnalyzer: define-before-use enforcement for function calls, with
//     the exemption ladder for intrinsics, included library functions,
//     imported symbols, callable variables, and implicit container calls.
//   - InitAnalyzer: control-flow-sensitive definite-assignment checking for
//     variables and individual struct fields.
//
// Both analyzers are read-only with respect to the tree and the symbol
// table; each Analyze call fully resets the analyzer's own state, so a
// fresh instance per translation unit is safe to run in parallel against a
// shared, already-built table.
package sema
