// Package diag defines the diagnostic model shared by all front-end phases.
//
// Diagnostic is the central record: severity, a stable numeric code with an
// "E%04d" string form, a human message, the primary source.Span, optional
// notes (secondary spans such as "declared here"), and optional fix
// suggestions as structured edits.
//
// Semantic errors are collected, never thrown: phases append into a Bag so a
// single pass over a translation unit reports every problem it finds. A
// non-empty bag with error severity blocks code generation downstream.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt.
package diag
