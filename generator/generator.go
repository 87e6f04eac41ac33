// Package generator translates a stream of annotated top-level
// declarations into a self-contained C header. Declarations outside the
// C boundary's contract (private, missing #[repr(C)]/#[no_mangle], non-C
// ABI) are skipped silently; declarations that claim eligibility but are
// not representable in C are dropped with a diagnostic; a non-returning
// function exposed over the boundary aborts the whole translation.
package generator

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cheddargen/cheddar/parser"
)

// Config controls header finalization.
type Config struct {
	// File is the header file name whose stem derives the include guard.
	// Defaults to cheddar.h.
	File string
}

// Diagnostic is one reported translation failure with its source location.
type Diagnostic struct {
	Pos     lexer.Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Generator accumulates translated declarations into an ordered buffer.
// It is single-use: construct, Translate once over the full stream, then
// read Header and Diagnostics.
type Generator struct {
	cfg   Config
	buf   bytes.Buffer
	diags []Diagnostic
}

func New(cfg Config) *Generator {
	if cfg.File == "" {
		cfg.File = "cheddar.h"
	}
	return &Generator{cfg: cfg}
}

// Diagnostics returns the local failures recorded so far, in source order.
func (g *Generator) Diagnostics() []Diagnostic {
	return g.diags
}

// Translate walks the declaration stream in order, dispatching each
// public item to its emitter. Local failures are recorded and skipped;
// the returned error is non-nil only for a boundary-safety violation,
// which aborts the remaining stream.
func (g *Generator) Translate(items []*parser.Item) error {
	for _, item := range items {
		// If it's not visible it can't be called from C.
		if !item.Public() {
			continue
		}

		switch {
		case item.Alias != nil:
			g.emitAlias(item)
		case item.Enum != nil:
			g.emitEnum(item)
		case item.Struct != nil:
			g.emitStruct(item)
		case item.Fn != nil:
			if err := g.emitFn(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) errorf(pos lexer.Position, format string, args ...any) {
	g.diags = append(g.diags, Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (g *Generator) emitAlias(item *parser.Item) {
	_, docs := parseAttrs(item.Attributes(), anyAttr, retrieveDocstring)

	alias := item.Alias
	if alias.Generics.Parameterized() {
		return
	}

	g.buf.WriteString(docs)
	fmt.Fprintf(&g.buf, "typedef %s %s;\n\n", rustToC(alias.Type.String()), alias.Name)
}

func (g *Generator) emitEnum(item *parser.Item) {
	reprC, docs := parseAttrs(item.Attributes(), checkReprC, retrieveDocstring)
	// If it's not #[repr(C)] then it can't be called from C.
	if !reprC {
		return
	}

	enum := item.Enum
	if enum.Generics.Parameterized() {
		g.errorf(item.Pos, "cannot translate parameterized #[repr(C)] enum %s", enum.Name)
		return
	}

	var decl bytes.Buffer
	decl.WriteString(docs)
	fmt.Fprintf(&decl, "typedef enum %s {\n", enum.Name)

	for _, variant := range enum.Variants {
		if !variant.Unit() {
			g.errorf(variant.Pos, "cannot translate #[repr(C)] enum %s: variant %s carries data", enum.Name, variant.Name)
			return
		}

		_, docs := parseAttrs(variant.Attributes(), anyAttr, retrieveDocstring)
		decl.WriteString(docs)
		fmt.Fprintf(&decl, "\t%s,\n", variant.Text())
	}

	fmt.Fprintf(&decl, "} %s;\n\n", enum.Name)
	g.buf.Write(decl.Bytes())
}

func (g *Generator) emitStruct(item *parser.Item) {
	reprC, docs := parseAttrs(item.Attributes(), checkReprC, retrieveDocstring)
	// If it's not #[repr(C)] then it can't be called from C.
	if !reprC {
		return
	}

	strct := item.Struct
	if strct.Generics.Parameterized() {
		g.errorf(item.Pos, "cannot translate parameterized #[repr(C)] struct %s", strct.Name)
		return
	}
	if strct.Body == nil {
		g.errorf(item.Pos, "cannot translate #[repr(C)] struct %s: not a field struct", strct.Name)
		return
	}

	var decl bytes.Buffer
	decl.WriteString(docs)
	fmt.Fprintf(&decl, "typedef struct %s {\n", strct.Name)

	for _, field := range strct.Body.Fields {
		_, docs := parseAttrs(field.Attributes(), anyAttr, retrieveDocstring)
		decl.WriteString(docs)
		fmt.Fprintf(&decl, "\t%s %s;\n", rustToC(field.Type.String()), field.Name)
	}

	fmt.Fprintf(&decl, "} %s;\n\n", strct.Name)
	g.buf.Write(decl.Bytes())
}

func (g *Generator) emitFn(item *parser.Item) error {
	noMangle, docs := parseAttrs(item.Attributes(), checkNoMangle, retrieveDocstring)
	// If it's not #[no_mangle] the symbol name is not stable.
	if !noMangle {
		return nil
	}

	fn := item.Fn
	if !cCompatibleABI(fn) {
		return nil
	}
	if fn.Generics.Parameterized() {
		g.errorf(item.Pos, "cannot translate parameterized extern function %s", fn.Name)
		return nil
	}

	ret := "void"
	switch {
	case fn.Never:
		g.errorf(item.Pos, "function %s never returns: a panic must not cross the C boundary", fn.Name)
		return fmt.Errorf("%s: non-returning function %s exposed to C", item.Pos, fn.Name)
	case fn.Ret != nil:
		ret = rustToC(fn.Ret.String())
	}

	var decl bytes.Buffer
	decl.WriteString(docs)
	fmt.Fprintf(&decl, "%s %s(", ret, fn.Name)

	for i, param := range fn.Params {
		if i > 0 {
			decl.WriteString(", ")
		}
		fmt.Fprintf(&decl, "%s %s", rustToC(param.Type.String()), param.Name)
	}

	decl.WriteString(");\n\n")
	g.buf.Write(decl.Bytes())
	return nil
}

// cCompatibleABI reports whether the function's calling convention can be
// invoked from C. The system ABI is assumed C-compatible, which holds on
// the platforms this tool targets.
func cCompatibleABI(fn *parser.FnDecl) bool {
	if !fn.Extern {
		// A bare fn has the Rust ABI.
		return false
	}
	if fn.Abi == nil {
		// extern with no ABI string defaults to "C".
		return true
	}
	switch *fn.Abi {
	case "C", "cdecl", "stdcall", "fastcall", "system":
		return true
	default:
		return false
	}
}

// Header finalizes the translation: the accumulated declarations wrapped
// in an include guard, a C++ extern "C" block and the fixed-width
// integer/bool includes. It does not mutate the generator.
func (g *Generator) Header() string {
	stem := guardStem(g.cfg.File)

	var out bytes.Buffer
	fmt.Fprintf(&out, "#ifndef cheddar_gen_%s_h\n#define cheddar_gen_%s_h\n\n", stem, stem)
	out.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	out.WriteString("#include <stdint.h>\n#include <stdbool.h>\n\n")
	out.Write(g.buf.Bytes())
	out.WriteString("#ifdef __cplusplus\n}\n#endif\n\n#endif")
	return out.String()
}

func guardStem(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "default"
	}
	return stem
}
