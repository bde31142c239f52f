// Package fuzztests hosts fuzz targets for the lexer and parser.
//
// The targets assert that arbitrary byte input never panics the front
// end; diagnostics are the only acceptable failure mode.
package fuzztests
