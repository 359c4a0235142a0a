// Package naming maps icon file names to component identifiers.
//
// The same Namer must be used for a component file and its manifest entry so
// both always agree on the identifier.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultSuffix = "Icon"

// defaultReserved covers ECMAScript/TypeScript keywords plus globals a React
// component name would shadow.
var defaultReserved = []string{
	// keywords
	"break", "case", "catch", "class", "const", "continue", "debugger", "default",
	"delete", "do", "else", "enum", "export", "extends", "false", "finally", "for",
	"function", "if", "import", "in", "instanceof", "new", "null", "return", "super",
	"switch", "this", "throw", "true", "try", "typeof", "var", "void", "while", "with",
	"yield", "let", "static", "implements", "interface", "package", "private",
	"protected", "public", "await", "async", "arguments", "eval", "undefined",
	// typescript
	"any", "boolean", "declare", "keyof", "module", "namespace", "never", "number",
	"object", "readonly", "string", "symbol", "type", "unknown",
	// globals
	"array", "date", "error", "infinity", "map", "math", "nan", "promise", "proxy",
	"reflect", "set", "json", "regexp", "weakmap", "weakset",
	"image", "audio", "option", "text", "node", "element", "event", "document", "window",
	// react
	"react", "fragment", "component", "children", "props",
}

// ReservedWords is an immutable, case-insensitive word set.
type ReservedWords struct {
	words map[string]struct{}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func NewReservedWords(words ...string) ReservedWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[fold(w)] = struct{}{}
	}
	return ReservedWords{words: set}
}

// DefaultReservedWords returns the built-in set extended with extra.
func DefaultReservedWords(extra ...string) ReservedWords {
	all := make([]string, 0, len(defaultReserved)+len(extra))
	all = append(all, defaultReserved...)
	all = append(all, extra...)
	return NewReservedWords(all...)
}

func (r ReservedWords) Contains(word string) bool {
	_, ok := r.words[fold(word)]
	return ok
}

func (r ReservedWords) Len() int {
	return len(r.words)
}

// Namer derives component identifiers. It holds no mutable state.
type Namer struct {
	reserved ReservedWords
	suffix   string
}

func NewNamer(reserved ReservedWords, suffix string) *Namer {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Namer{reserved: reserved, suffix: suffix}
}

var defaultNamer = NewNamer(DefaultReservedWords(), DefaultSuffix)

// DeriveIdentifier uses the built-in reserved words and the "Icon" suffix.
func DeriveIdentifier(baseName string) string {
	return defaultNamer.Identifier(baseName)
}

// Stem strips directory and extension from a file name.
func Stem(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Identifier turns "icon-arrow-left" into "IconArrowLeft" and "class" into
// "ClassIcon".
func (n *Namer) Identifier(baseName string) string {
	var b strings.Builder
	for _, word := range SplitWords(baseName) {
		b.WriteString(Capitalize(word))
	}
	id := b.String()

	if id == "" {
		return n.suffix
	}
	if first, _ := utf8.DecodeRuneInString(id); !unicode.IsLetter(first) {
		id = n.suffix + id
	}
	if n.reserved.Contains(id) {
		id += n.suffix
	}
	return id
}

// SplitWords splits on '-', '_' and any rune that cannot appear in an
// identifier. Empty words are dropped.
func SplitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '$')
	})
}

// Capitalize uppercases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
