package fuzztests

import (
	"testing"
)

const maxSeedBytes = 64 << 10

func addCorpusSeeds(f *testing.F) {
	f.Add([]byte{})
	for _, src := range languageSeeds {
		f.Add(clampSeed([]byte(src)))
	}
}

// languageSeeds covers every declaration and statement form so the fuzzer
// starts from structurally interesting inputs.
var languageSeeds = []string{
	"void main() {}\n",
	"u8 counter = 0;\n",
	"#include <stdio.h>\nvoid main() { printf(\"hi\"); }\n",
	"struct Point { u8 x; u8 y; }\n",
	"enum Color : 8 { Red, Green, Blue, }\n",
	"type byte = u8;\n",
	"scope Motor {\n    u16 rpm;\n    void start() { rpm = 100; }\n}\n",
	"const u8 BUF_SIZE = 32;\nu8 buf[BUF_SIZE];\n",
	"string<16> name = \"boot\";\n",
	"void blink(isr handler) { handler(); }\n",
	"u8 add(u8 a, u8 b) { return a + b; }\nvoid main() { u8 r = add(1, 2); }\n",
	"void main() {\n    u8 i;\n    for (i = 0; i < 10; i = i + 1) {\n    }\n}\n",
	"void main() {\n    while (true) {\n        global.HAL_Delay(100);\n    }\n}\n",
	"void main() { u8 n = sizeof(u8); }\n",
	"u8 sum(u8 vals[], u8 n);\n",
	"// comment\n/* block */\nvoid main() {}\n",
	"void main() { if (1 < 2) { } else { } }\n",
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
