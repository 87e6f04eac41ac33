package generator

import (
	"strings"

	"github.com/cheddargen/cheddar/parser"
)

// parseAttrs makes one left-to-right pass over an attribute list. The
// returned flag is true if check matched any attribute; once set it is
// never cleared by a later non-match. The returned string is the
// concatenation, in encounter order, of every non-empty retrieve result.
func parseAttrs(attrs []*parser.Attr, check func(*parser.Attr) bool, retrieve func(*parser.Attr) string) (bool, string) {
	checkPassed := false
	var retrieved strings.Builder
	for _, attr := range attrs {
		if !checkPassed {
			checkPassed = check(attr)
		}
		retrieved.WriteString(retrieve(attr))
	}
	return checkPassed, retrieved.String()
}

// checkReprC matches only the list form #[repr(C)]: a repr attribute whose
// first listed word is exactly C.
func checkReprC(attr *parser.Attr) bool {
	return attr.Name == "repr" && len(attr.Args) > 0 && attr.Args[0] == "C"
}

func checkNoMangle(attr *parser.Attr) bool {
	return attr.Name == "no_mangle" && len(attr.Args) == 0 && attr.Value == nil
}

func anyAttr(*parser.Attr) bool { return true }

// retrieveDocstring extracts a documentation attribute's literal text plus
// a trailing newline. Any other attribute contributes nothing.
func retrieveDocstring(attr *parser.Attr) string {
	if attr.Name == "doc" && attr.Value != nil {
		return *attr.Value + "\n"
	}
	return ""
}
