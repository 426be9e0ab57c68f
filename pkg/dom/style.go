package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Style returns the value of a single property from n's style attribute, or
// "" if the property is not declared.
func Style(n *html.Node, prop string) string {
	for _, d := range parseStyle(Attr(n, "style")) {
		if d.prop == prop {
			return d.val
		}
	}
	return ""
}

// SetStyle sets a single property in n's style attribute, preserving other
// declarations and their order. A new property is appended at the end.
func SetStyle(n *html.Node, prop, val string) {
	decls := parseStyle(Attr(n, "style"))

	found := false
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].val = val
			found = true
			break
		}
	}
	if !found {
		decls = append(decls, styleDecl{prop: prop, val: val})
	}

	SetAttr(n, "style", formatStyle(decls))
}

type styleDecl struct {
	prop string
	val  string
}

func parseStyle(s string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, styleDecl{
			prop: strings.TrimSpace(prop),
			val:  strings.TrimSpace(val),
		})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.val)
	}
	return strings.Join(parts, "; ")
}
