// Package ast declares the abstract syntax tree for Cinder translation
// units. Nodes are plain owned structs linked by pointers; the analyzers in
// internal/sema walk them with a recursive descent and never mutate them.
package ast
