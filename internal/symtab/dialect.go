package symtab

// Dialect identifies which source-language family a symbol came from.
// The table keeps one independent collection per dialect and merges them
// into a single namespace at query time.
type Dialect uint8

const (
	// DialectCinder is the Cinder language itself.
	DialectCinder Dialect = iota
	// DialectC covers symbols imported from C headers.
	DialectC
	// DialectCPP covers symbols imported from C++ headers.
	DialectCPP

	dialectCount
)

// Dialects lists every dialect in lookup-priority order.
var Dialects = [dialectCount]Dialect{DialectCinder, DialectC, DialectCPP}

func (d Dialect) String() string {
	switch d {
	case DialectCinder:
		return "cinder"
	case DialectC:
		return "c"
	case DialectCPP:
		return "c++"
	default:
		return "invalid"
	}
}
