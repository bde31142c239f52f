package sema

// Intrinsic names the compiler resolves itself; calls to these never need a
// prior definition.
const (
	intrinsicSizeof   = "sizeof"
	intrinsicLengthof = "lengthof"
)

func isIntrinsic(name string) bool {
	return name == intrinsicSizeof || name == intrinsicLengthof
}

// stdlibHeader maps a C standard-library function to the header that
// declares it. A call is exempt from define-before-use only when its owning
// header is actually included by the unit; otherwise the name is still
// recognized so the diagnostic can suggest `global.name()`.
var stdlibHeader = map[string]string{
	"printf":   "stdio.h",
	"sprintf":  "stdio.h",
	"snprintf": "stdio.h",
	"puts":     "stdio.h",
	"putchar":  "stdio.h",
	"getchar":  "stdio.h",
	"fopen":    "stdio.h",
	"fclose":   "stdio.h",
	"fread":    "stdio.h",
	"fwrite":   "stdio.h",

	"malloc":  "stdlib.h",
	"calloc":  "stdlib.h",
	"realloc": "stdlib.h",
	"free":    "stdlib.h",
	"abs":     "stdlib.h",
	"atoi":    "stdlib.h",
	"atol":    "stdlib.h",
	"rand":    "stdlib.h",
	"srand":   "stdlib.h",
	"exit":    "stdlib.h",

	"memcpy":  "string.h",
	"memmove": "string.h",
	"memset":  "string.h",
	"memcmp":  "string.h",
	"strlen":  "string.h",
	"strcpy":  "string.h",
	"strncpy": "string.h",
	"strcat":  "string.h",
	"strncat": "string.h",
	"strcmp":  "string.h",
	"strncmp": "string.h",
	"strchr":  "string.h",
	"strstr":  "string.h",

	"isalpha": "ctype.h",
	"isdigit": "ctype.h",
	"isspace": "ctype.h",
	"tolower": "ctype.h",
	"toupper": "ctype.h",

	"sqrt":  "math.h",
	"pow":   "math.h",
	"fabs":  "math.h",
	"floor": "math.h",
	"ceil":  "math.h",
	"sin":   "math.h",
	"cos":   "math.h",
	"tan":   "math.h",

	"assert": "assert.h",
}

// StdlibHeaderFor returns the owning header of a known C library function.
func StdlibHeaderFor(name string) (string, bool) {
	h, ok := stdlibHeader[name]
	return h, ok
}
