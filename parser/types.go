package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is one parsed source file: inner attributes followed by top-level items.
type File struct {
	Inner []*InnerAttr `parser:"@@*"`
	Items []*Item      `parser:"@@*"`
}

// InnerAttr is a file-level attribute such as #![feature(...)]. It is
// recognized so real sources parse, but carries no meaning here.
type InnerAttr struct {
	Tokens []string `parser:"'#' '!' '[' @~']'* ']'"`
}

// Item is a top-level declaration with its doc comments, attributes and
// visibility. Exactly one of the kind fields is set.
type Item struct {
	Pos lexer.Position

	Docs  []string    `parser:"@DocComment*"`
	Attrs []*Attr     `parser:"@@*"`
	Vis   *Visibility `parser:"@@?"`

	Use         *UseDecl         `parser:"( @@"`
	ExternCrate *ExternCrateDecl `parser:"| @@"`
	Const       *ConstDecl       `parser:"| @@"`
	Mod         *ModDecl         `parser:"| @@"`
	Impl        *ImplDecl        `parser:"| @@"`
	Trait       *TraitDecl       `parser:"| @@"`
	Alias       *AliasDecl       `parser:"| @@"`
	Enum        *EnumDecl        `parser:"| @@"`
	Struct      *StructDecl      `parser:"| @@"`
	Fn          *FnDecl          `parser:"| @@ )"`
}

// Public reports whether the item is visible outside the crate. Restricted
// forms such as pub(crate) do not count.
func (i *Item) Public() bool {
	return i.Vis != nil && i.Vis.Restrict == ""
}

// Attributes returns the item's doc comments folded into its attribute
// list, docs first, preserving encounter order.
func (i *Item) Attributes() []*Attr {
	return docAttrs(i.Docs, i.Attrs)
}

// Visibility is a pub marker, optionally restricted as in pub(crate).
type Visibility struct {
	Pub      bool   `parser:"@'pub'"`
	Restrict string `parser:"( '(' @Ident ')' )?"`
}

// Attr is an outer attribute: #[name], #[name(args)] or #[name = "value"].
type Attr struct {
	Pos lexer.Position

	Name  string   `parser:"'#' '[' @Ident"`
	Args  []string `parser:"( '(' @~')'* ')'"`
	Value *string  `parser:"| '=' @String )? ']'"`
}

// UseDecl is a use declaration; ignored by translation.
type UseDecl struct {
	Path []string `parser:"'use' @~';'+ ';'"`
}

// ExternCrateDecl is an extern crate declaration; ignored by translation.
type ExternCrateDecl struct {
	Name string `parser:"'extern' 'crate' @Ident ';'"`
}

// ConstDecl is a const or static item; ignored by translation.
type ConstDecl struct {
	Static bool     `parser:"( @'static' | 'const' )"`
	Mut    bool     `parser:"@'mut'?"`
	Name   string   `parser:"@Ident ':'"`
	Type   *TypeRef `parser:"@@"`
	Value  []string `parser:"'=' @~';'+ ';'"`
}

// ModDecl is a module; its body is skipped wholesale.
type ModDecl struct {
	Name string `parser:"'mod' @Ident"`
	Body *Block `parser:"( @@ | ';' )"`
}

// ImplDecl is an impl block; skipped wholesale.
type ImplDecl struct {
	Head []string `parser:"'impl' @~'{'+"`
	Body *Block   `parser:"@@"`
}

// TraitDecl is a trait definition; skipped wholesale.
type TraitDecl struct {
	Name string   `parser:"'trait' @Ident"`
	Head []string `parser:"@~'{'*"`
	Body *Block   `parser:"@@"`
}

// AliasDecl is a type alias: type Name = Ty;
type AliasDecl struct {
	Name     string    `parser:"'type' @Ident"`
	Generics *Generics `parser:"@@?"`
	Type     *TypeRef  `parser:"'=' @@ ';'"`
}

// EnumDecl is an enumeration.
type EnumDecl struct {
	Name     string     `parser:"'enum' @Ident"`
	Generics *Generics  `parser:"@@?"`
	Variants []*Variant `parser:"'{' ( @@ ( ',' @@ )* ','? )? '}'"`
}

// Variant is one enum variant, possibly carrying a payload or an explicit
// discriminant.
type Variant struct {
	Pos lexer.Position

	Docs   []string       `parser:"@DocComment*"`
	Attrs  []*Attr        `parser:"@@*"`
	Name   string         `parser:"@Ident"`
	Tuple  *TuplePayload  `parser:"( @@"`
	Struct *StructPayload `parser:"| @@"`
	Disc   *string        `parser:"| '=' @Number )?"`
}

// Attributes returns the variant's docs folded into its attribute list.
func (v *Variant) Attributes() []*Attr {
	return docAttrs(v.Docs, v.Attrs)
}

// Unit reports whether the variant carries no payload.
func (v *Variant) Unit() bool {
	return v.Tuple == nil && v.Struct == nil
}

// Text renders the variant as it appears in source: the name, plus the
// explicit discriminant when present.
func (v *Variant) Text() string {
	if v.Disc != nil {
		return v.Name + " = " + *v.Disc
	}
	return v.Name
}

// TuplePayload is the (T, U) form of a variant or struct body.
type TuplePayload struct {
	Types []*TypeRef `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
}

// StructPayload is the { name: T } form of a struct body or variant payload.
type StructPayload struct {
	Fields []*Field `parser:"'{' ( @@ ( ',' @@ )* ','? )? '}'"`
}

// StructDecl is a structure declaration in one of its three shapes:
// field-style, tuple or unit.
type StructDecl struct {
	Name     string         `parser:"'struct' @Ident"`
	Generics *Generics      `parser:"@@?"`
	Body     *StructPayload `parser:"( @@"`
	Tuple    *TuplePayload  `parser:"| @@ ';'"`
	Unit     bool           `parser:"| @';' )"`
}

// Field is a named struct field.
type Field struct {
	Pos lexer.Position

	Docs  []string    `parser:"@DocComment*"`
	Attrs []*Attr     `parser:"@@*"`
	Vis   *Visibility `parser:"@@?"`
	Name  string      `parser:"@Ident ':'"`
	Type  *TypeRef    `parser:"@@"`
}

// Attributes returns the field's docs folded into its attribute list.
func (f *Field) Attributes() []*Attr {
	return docAttrs(f.Docs, f.Attrs)
}

// FnDecl is a function declaration or definition. The body, when present,
// is skipped.
type FnDecl struct {
	Unsafe   bool      `parser:"@'unsafe'?"`
	Extern   bool      `parser:"@'extern'?"`
	Abi      *string   `parser:"@String?"`
	Name     string    `parser:"'fn' @Ident"`
	Generics *Generics `parser:"@@?"`
	Params   []*Param  `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
	Never    bool      `parser:"( '->' ( @'!'"`
	Ret      *TypeRef  `parser:"| @@ ) )?"`
	Body     *Block    `parser:"( @@ | ';' )"`
}

// Param is one function parameter: an identifier pattern and its type.
type Param struct {
	Mut  bool     `parser:"@'mut'?"`
	Name string   `parser:"@Ident ':'"`
	Type *TypeRef `parser:"@@"`
}

// Generics is an angle-bracketed type-parameter list. A nil or empty list
// means the declaration is not parameterized.
type Generics struct {
	Params []*GenericParam `parser:"'<' ( @@ ( ',' @@ )* )? '>'"`
}

// Parameterized reports whether any type parameters are present.
func (g *Generics) Parameterized() bool {
	return g != nil && len(g.Params) > 0
}

// GenericParam is a type parameter with optional bounds.
type GenericParam struct {
	Name   string   `parser:"@Ident"`
	Bounds []string `parser:"( ':' @Ident ( '+' @Ident )* )?"`
}

// TypeRef is a type in the subset the translator understands: raw
// pointers, the unit type, fixed-size arrays and (possibly ::-qualified)
// named types. Function-pointer and reference types are not part of the
// grammar.
type TypeRef struct {
	Pointer *PointerRef `parser:"( @@"`
	Array   *ArrayRef   `parser:"| @@"`
	Unit    bool        `parser:"| @'(' ')'"`
	Path    []string    `parser:"| @Ident ( '::' @Ident )* )"`
}

// String renders the type back to its source syntax. This is the form the
// type mapper consumes.
func (t *TypeRef) String() string {
	switch {
	case t.Pointer != nil:
		if t.Pointer.Const {
			return "*const " + t.Pointer.Elem.String()
		}
		return "*mut " + t.Pointer.Elem.String()
	case t.Array != nil:
		return "[" + t.Array.Elem.String() + "; " + t.Array.Len + "]"
	case t.Unit:
		return "()"
	default:
		return strings.Join(t.Path, "::")
	}
}

// PointerRef is a raw pointer: *const T or *mut T.
type PointerRef struct {
	Const bool     `parser:"'*' ( @'const'"`
	Mut   bool     `parser:"| @'mut' )"`
	Elem  *TypeRef `parser:"@@"`
}

// ArrayRef is a fixed-size array: [T; N].
type ArrayRef struct {
	Elem *TypeRef `parser:"'[' @@ ';'"`
	Len  string   `parser:"@Number ']'"`
}

// Block is a brace-delimited region whose contents are consumed but not
// interpreted. Nested braces are balanced.
type Block struct {
	Elems []*BlockElem `parser:"'{' @@* '}'"`
}

// BlockElem is either a nested block or any single non-brace token.
type BlockElem struct {
	Block *Block `parser:"@@"`
	Token string `parser:"| @~( '{' | '}' )"`
}

func docAttrs(docs []string, attrs []*Attr) []*Attr {
	out := make([]*Attr, 0, len(docs)+len(attrs))
	for _, d := range docs {
		text := d
		out = append(out, &Attr{Name: "doc", Value: &text})
	}
	return append(out, attrs...)
}
