package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "DocComment", Pattern: `///[^\n]*`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`},
	{Name: "String", Pattern: `"(\\.|[^"])*"`},
	{Name: "Number", Pattern: `[0-9][0-9_]*(\.[0-9]+)?`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "PathSep", Pattern: `::`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[-#\[\](){},;:=<>*+!&.|/%^~?']`},
})

var declParser = participle.MustBuild[File](
	participle.Lexer(declLexer),
	participle.Elide("Whitespace", "Comment", "BlockComment"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parse parses one source file into its top-level declaration stream. The
// filename is carried into every position for diagnostics.
func Parse(filename, source string) (*File, error) {
	file, err := declParser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return file, nil
}
