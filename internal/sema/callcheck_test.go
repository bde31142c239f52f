package sema

import (
	"testing"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/parser"
	"cinder/internal/source"
	"cinder/internal/symtab"
)

// parseSnippet builds a unit and a populated table from inline source.
func parseSnippet(t *testing.T, src string) (*symtab.Table, *source.FileSet, *ast.Unit) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cn", []byte(src))
	bag := diag.NewBag(64)
	unit := parser.ParseFile(fs.Get(id), bag)
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("parse: %s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("snippet does not parse")
	}
	table := symtab.NewTable()
	NewCollector(table, fs).Collect(unit)
	return table, fs, unit
}

func runCallAnalyzer(t *testing.T, src string) (*diag.Bag, CallResult) {
	t.Helper()
	table, fs, unit := parseSnippet(t, src)
	bag := diag.NewBag(64)
	res := NewCallAnalyzer(table, fs).Analyze(unit, bag)
	return bag, res
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func wantCodes(t *testing.T, bag *diag.Bag, code diag.Code, want int) {
	t.Helper()
	if got := countCode(bag, code); got != want {
		for _, d := range bag.Items() {
			t.Logf("diag: %s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("got %d %s diagnostics, want %d", countCode(bag, code), code.ID(), want)
	}
}

func TestCallBeforeDefinition(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void main() {
    helper();
}
void helper() {
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 1)

	d := bag.Items()[0]
	if d.Symbol != "helper" {
		t.Fatalf("symbol = %q, want helper", d.Symbol)
	}
	if len(d.Notes) == 0 {
		t.Fatalf("expected a note pointing at the later definition")
	}
	if len(d.Fixes) == 0 {
		t.Fatalf("expected the raw escape fix suggestion")
	}
}

func TestCallAfterDefinition(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void helper() {
}
void main() {
    helper();
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestPrototypeSatisfiesOrder(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void helper();
void main() {
    helper();
}
void helper() {
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestSelfRecursion(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
u32 fact(u32 n) {
    return fact(n - 1);
}
`)
	wantCodes(t, bag, diag.SemaSelfRecursion, 1)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestIntrinsicsAlwaysResolve(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
u8 buf[16];
u32 main() {
    return sizeof(buf) + lengthof(buf);
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestStdlibNeedsInclude(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void main() {
    printf("hi");
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 1)
	if len(bag.Items()[0].Notes) == 0 {
		t.Fatalf("expected a note naming the missing header")
	}
}

func TestStdlibWithInclude(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
#include <stdio.h>
void main() {
    printf("hi");
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestGlobalEscapeSkipsChecks(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void main() {
    global.printf("hi");
    global.weird_vendor_call(1, 2);
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestCallbackParameterIsCallable(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void dispatch(isr handler) {
    handler();
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestCallbackAliasIsCallable(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
type TickHandler = isr;
void dispatch(TickHandler handler) {
    handler();
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestForeignDialectSymbolResolves(t *testing.T) {
	table, fs, unit := parseSnippet(t, `
void main() {
    HAL_GPIO_TogglePin();
}
`)
	table.AddSymbol(&symtab.Symbol{
		Name:    "HAL_GPIO_TogglePin",
		Kind:    symtab.SymbolFunction,
		Dialect: symtab.DialectC,
		File:    "stm32f4xx_hal_gpio.h",
		Line:    312,
	})
	bag := diag.NewBag(64)
	NewCallAnalyzer(table, fs).Analyze(unit, bag)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestContainerSiblingCalls(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
scope Motor {
    void stop() {
    }
    void start() {
        stop();
        this.stop();
    }
}
void main() {
    Motor.start();
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestContainerSiblingOrderApplies(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
scope Motor {
    void start() {
        stop();
        this.stop();
    }
    void stop() {
    }
}
`)
	// Both spellings of the sibling call are ahead of stop's definition.
	wantCodes(t, bag, diag.SemaCallBeforeDef, 2)
}

func TestContainerSiblingPrototypeSatisfiesOrder(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
scope Motor {
    void stop();
    void start() {
        this.stop();
    }
    void stop() {
    }
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestImportedFunctionResolves(t *testing.T) {
	table, fs, unit := parseSnippet(t, `
void main() {
    blinkLed();
}
`)
	// Collected from another unit of the project, any dialect qualifies.
	table.AddSymbol(&symtab.Symbol{
		Name:    "blinkLed",
		Kind:    symtab.SymbolFunction,
		Dialect: symtab.DialectCinder,
		File:    "led.cn",
		Line:    7,
	})
	bag := diag.NewBag(64)
	NewCallAnalyzer(table, fs).Analyze(unit, bag)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestLocalFunctionShadowingHeaderStaysOrdered(t *testing.T) {
	table, fs, unit := parseSnippet(t, `
void main() {
    delay();
}
void delay() {
}
`)
	table.AddSymbol(&symtab.Symbol{
		Name:    "delay",
		Kind:    symtab.SymbolFunction,
		Dialect: symtab.DialectC,
		File:    "util.h",
		Line:    30,
	})
	bag := diag.NewBag(64)
	NewCallAnalyzer(table, fs).Analyze(unit, bag)
	// The unit defines its own delay, so the header symbol does not
	// excuse calling it ahead of the definition.
	wantCodes(t, bag, diag.SemaCallBeforeDef, 1)
}

func TestContainerMemberBeforeDefinitionFromOutside(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void main() {
    Motor.start();
}
scope Motor {
    void start() {
    }
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 1)
	if sym := bag.Items()[0].Symbol; sym != "Motor_start" {
		t.Fatalf("symbol = %q, want mangled Motor_start", sym)
	}
}

func TestContainerSelfRecursionThroughThis(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
scope Motor {
    void spin() {
        this.spin();
    }
}
`)
	wantCodes(t, bag, diag.SemaSelfRecursion, 1)
}

func TestCallbackBindingRecorded(t *testing.T) {
	_, res := runCallAnalyzer(t, `
void onTick() {
}
void main() {
    isr handler;
    handler = onTick;
}
`)
	if got := res.CallbackBindings["onTick"]; got != "isr" {
		t.Fatalf("binding for onTick = %q, want isr", got)
	}
}

func TestCallbackBindingAtDeclaration(t *testing.T) {
	_, res := runCallAnalyzer(t, `
void onTick() {
}
void main() {
    isr handler = onTick;
    handler();
}
`)
	if got := res.CallbackBindings["onTick"]; got != "isr" {
		t.Fatalf("binding for onTick = %q, want isr", got)
	}
}

func TestCallbackBindingThroughArgument(t *testing.T) {
	bag, res := runCallAnalyzer(t, `
void onTick() {
}
void attach(isr handler) {
}
void main() {
    attach(onTick);
}
`)
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
	if got := res.CallbackBindings["onTick"]; got != "isr" {
		t.Fatalf("binding for onTick = %q, want isr", got)
	}
}

func TestFunctionNameIsCallbackType(t *testing.T) {
	bag, _ := runCallAnalyzer(t, `
void main() {
    tick t;
    t();
}
void tick() {
}
`)
	// A definition implies a pointer typedef of the same name, and a
	// variable of that type is callable regardless of order.
	wantCodes(t, bag, diag.SemaCallBeforeDef, 0)
}

func TestAnalyzerReusableAcrossUnits(t *testing.T) {
	table, fs, unit := parseSnippet(t, `
void main() {
    helper();
}
void helper() {
}
`)
	a := NewCallAnalyzer(table, fs)
	bag1 := diag.NewBag(64)
	a.Analyze(unit, bag1)
	bag2 := diag.NewBag(64)
	a.Analyze(unit, bag2)
	if bag1.Len() != bag2.Len() {
		t.Fatalf("second run produced %d diagnostics, first %d", bag2.Len(), bag1.Len())
	}
}
