package transform

import (
	"regexp"
	"strings"

	"github.com/tristendillon/iconforge/core/naming"
)

var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	openTagPattern = regexp.MustCompile(
		`<([A-Za-z][\w:.-]*)((?:\s+[^\s=/>"']+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'>/=]+))?)*)\s*(/?)>`)
	attrPattern = regexp.MustCompile(`([^\s=/>"']+)(?:\s*=\s*("[^"]*"|'[^']*'|[^\s"'>/=]+))?`)
)

// rootPattern matches the first <tag ...>...</tag> span, non-greedy.
func rootPattern(tag string) *regexp.Regexp {
	q := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?s)<` + q + `[\s/>].*?</` + q + `\s*>`)
}

// Attr is one attribute of an opening tag. Expr attributes are written
// verbatim, e.g. {...props} or className={className}.
type Attr struct {
	Name     string
	Value    string
	Quote    byte
	HasValue bool
	Expr     string
}

func (a Attr) String() string {
	if a.Expr != "" {
		return a.Expr
	}
	if !a.HasValue {
		return a.Name
	}
	q := a.Quote
	if q == 0 {
		q = '"'
	}
	return a.Name + "=" + string(q) + a.Value + string(q)
}

type Tag struct {
	Name        string
	Attrs       []Attr
	SelfClosing bool
}

func parseTag(name, attrText string, selfClosing bool) *Tag {
	tag := &Tag{Name: name, SelfClosing: selfClosing}
	for _, m := range attrPattern.FindAllStringSubmatch(attrText, -1) {
		attr := Attr{Name: m[1]}
		if raw := m[2]; raw != "" {
			attr.HasValue = true
			if raw[0] == '"' || raw[0] == '\'' {
				attr.Quote = raw[0]
				raw = raw[1 : len(raw)-1]
			}
			attr.Value = raw
		}
		tag.Attrs = append(tag.Attrs, attr)
	}
	return tag
}

func (t *Tag) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, a := range t.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	if t.SelfClosing {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
	}
	return b.String()
}

func (t *Tag) Get(name string) (Attr, bool) {
	for _, a := range t.Attrs {
		if a.Expr == "" && a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

func (t *Tag) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Remove drops every attribute named name and reports whether any existed.
func (t *Tag) Remove(name string) bool {
	kept := t.Attrs[:0]
	removed := false
	for _, a := range t.Attrs {
		if a.Expr == "" && a.Name == name {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	t.Attrs = kept
	return removed
}

func (t *Tag) Prepend(a Attr) {
	t.Attrs = append([]Attr{a}, t.Attrs...)
}

func (t *Tag) Append(a ...Attr) {
	t.Attrs = append(t.Attrs, a...)
}

// rewriteTags calls fn for each opening tag in markup and replaces the tag
// with its re-serialised form. Text, closing tags and comments are untouched.
func rewriteTags(markup string, fn func(*Tag)) string {
	return openTagPattern.ReplaceAllStringFunc(markup, func(raw string) string {
		m := openTagPattern.FindStringSubmatch(raw)
		tag := parseTag(m[1], m[2], m[3] == "/")
		fn(tag)
		return tag.String()
	})
}

// splitRoot separates the root opening tag from the rest of the span.
func splitRoot(span, rootTag string) (*Tag, string, bool) {
	loc := openTagPattern.FindStringSubmatchIndex(span)
	if loc == nil || loc[0] != 0 {
		return nil, "", false
	}
	name := span[loc[2]:loc[3]]
	if name != rootTag {
		return nil, "", false
	}
	tag := parseTag(name, span[loc[4]:loc[5]], loc[6] != loc[7])
	return tag, span[loc[1]:], true
}

var neutralPaints = map[string]struct{}{
	"none":         {},
	"currentcolor": {},
	"inherit":      {},
}

func isNeutralPaint(v string) bool {
	_, ok := neutralPaints[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

var jsxRenames = map[string]string{
	"class": "className",
	"for":   "htmlFor",
}

// jsxAttrName maps an SVG attribute name to its React prop name.
// data-* and aria-* attributes are valid JSX as written.
func jsxAttrName(name string) string {
	if renamed, ok := jsxRenames[name]; ok {
		return renamed
	}
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return name
	}
	if !strings.ContainsAny(name, "-:") {
		return name
	}
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == ':' })
	if len(parts) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(naming.Capitalize(p))
	}
	return b.String()
}
