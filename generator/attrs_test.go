package generator

import (
	"testing"

	"github.com/cheddargen/cheddar/parser"
)

func docAttr(text string) *parser.Attr {
	return &parser.Attr{Name: "doc", Value: &text}
}

func TestParseAttrsFlagLatches(t *testing.T) {
	attrs := []*parser.Attr{
		docAttr("/// first"),
		{Name: "no_mangle"},
		docAttr("/// second"),
	}

	found, _ := parseAttrs(attrs, checkNoMangle, retrieveDocstring)
	if !found {
		t.Error("expected no_mangle to be found")
	}

	// A later non-matching attribute must not clear an already-set flag.
	attrs = []*parser.Attr{
		{Name: "no_mangle"},
		{Name: "inline"},
	}
	found, _ = parseAttrs(attrs, checkNoMangle, retrieveDocstring)
	if !found {
		t.Error("flag was cleared by a later non-matching attribute")
	}
}

func TestParseAttrsDocOrder(t *testing.T) {
	attrs := []*parser.Attr{
		docAttr("/// line one"),
		{Name: "repr", Args: []string{"C"}},
		docAttr("/// line two"),
	}

	_, docs := parseAttrs(attrs, anyAttr, retrieveDocstring)
	want := "/// line one\n/// line two\n"
	if docs != want {
		t.Errorf("docs = %q, want %q", docs, want)
	}
}

func TestParseAttrsEmpty(t *testing.T) {
	found, docs := parseAttrs(nil, checkReprC, retrieveDocstring)
	if found {
		t.Error("expected no match on empty attribute list")
	}
	if docs != "" {
		t.Errorf("docs = %q, want empty", docs)
	}
}

func TestCheckReprC(t *testing.T) {
	cases := []struct {
		attr *parser.Attr
		want bool
	}{
		{&parser.Attr{Name: "repr", Args: []string{"C"}}, true},
		{&parser.Attr{Name: "repr", Args: []string{"C", ",", "u8"}}, true},
		{&parser.Attr{Name: "repr", Args: []string{"packed"}}, false},
		{&parser.Attr{Name: "repr"}, false},
		{&parser.Attr{Name: "no_mangle"}, false},
		{docAttr("/// repr"), false},
	}

	for _, c := range cases {
		if got := checkReprC(c.attr); got != c.want {
			t.Errorf("checkReprC(%s %v) = %v, want %v", c.attr.Name, c.attr.Args, got, c.want)
		}
	}
}

func TestCheckNoMangle(t *testing.T) {
	if !checkNoMangle(&parser.Attr{Name: "no_mangle"}) {
		t.Error("expected bare no_mangle to match")
	}
	if checkNoMangle(&parser.Attr{Name: "no_mangle", Args: []string{"x"}}) {
		t.Error("list-form no_mangle must not match")
	}
	if checkNoMangle(&parser.Attr{Name: "inline"}) {
		t.Error("inline must not match")
	}
}

func TestRetrieveDocstring(t *testing.T) {
	if got := retrieveDocstring(docAttr("/// docs")); got != "/// docs\n" {
		t.Errorf("retrieveDocstring = %q, want %q", got, "/// docs\n")
	}
	if got := retrieveDocstring(&parser.Attr{Name: "repr", Args: []string{"C"}}); got != "" {
		t.Errorf("non-doc attribute contributed %q, want empty", got)
	}
	if got := retrieveDocstring(&parser.Attr{Name: "doc"}); got != "" {
		t.Errorf("doc without value contributed %q, want empty", got)
	}
}
