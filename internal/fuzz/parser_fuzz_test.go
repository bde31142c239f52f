package fuzztests

import (
	"context"
	"testing"
	"time"

	"cinder/internal/diag"
	"cinder/internal/parser"
	"cinder/internal/source"
	"cinder/internal/testkit"
)

const parseTimeout = 5 * time.Second

func FuzzParseFile(f *testing.F) {
	addCorpusSeeds(f)

	// Edge cases around recovery points.
	f.Add([]byte("void f() { u8 x = 1\nu8 y = 2; }"))          // missing semicolon
	f.Add([]byte("struct P { u8 x\nu8 y; }"))                  // field without semicolon
	f.Add([]byte("enum E : { A }"))                            // bit width missing
	f.Add([]byte("void f() { { { { } } } }"))                  // deeply nested blocks
	f.Add([]byte("void f() { for (i = 0 i < 10 i = i + 1) }")) // for without semicolons
	f.Add([]byte("scope S { scope T { } }"))                   // nested containers
	f.Add([]byte("#include <"))                                // unterminated include

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.cn", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			unit := parser.ParseFile(file, bag)
			done <- testkit.CheckSpanInvariants(unit, file)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("span invariant violated: %v\ninput (%d bytes): %q",
					err, len(input), truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}
