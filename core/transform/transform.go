// Package transform rewrites a single SVG document into component source.
package transform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tristendillon/iconforge/core/models"
	"github.com/tristendillon/iconforge/core/naming"
	"github.com/tristendillon/iconforge/core/template_engine"
)

// ErrNoRootElement means the source has no <root>...</root> span. Callers
// skip the file; it is not a batch failure.
var ErrNoRootElement = errors.New("no root element found")

const (
	DefaultRootTag   = "svg"
	DefaultFill      = "currentColor"
	DefaultImport    = "import React from 'react';"
	TemplateTSX      = "tsx"
	TemplateJSX      = "jsx"
	passthroughProps = "{...props}"
)

var DefaultStripAttributes = []string{"fill", "stroke", "style"}

type Options struct {
	RootTag         string
	StripAttributes []string
	PreserveNeutral bool
	JSXAttributes   bool
	ComponentImport string
	Template        string
	Namer           *naming.Namer
	TemplateEngine  *template_engine.TemplateEngine
}

func DefaultOptions() Options {
	return Options{
		RootTag:         DefaultRootTag,
		StripAttributes: DefaultStripAttributes,
		PreserveNeutral: true,
		JSXAttributes:   true,
		ComponentImport: DefaultImport,
		Template:        TemplateTSX,
	}
}

type Transformer struct {
	rootTag  string
	root     *regexp.Regexp
	strip    map[string]struct{}
	neutral  bool
	jsx      bool
	importLn string
	template template_engine.TemplateRef
	namer    *naming.Namer
	engine   *template_engine.TemplateEngine
}

func NewTransformer(opts Options) (*Transformer, error) {
	if opts.RootTag == "" {
		opts.RootTag = DefaultRootTag
	}
	if opts.ComponentImport == "" {
		opts.ComponentImport = DefaultImport
	}
	if opts.Namer == nil {
		opts.Namer = naming.NewNamer(naming.DefaultReservedWords(), naming.DefaultSuffix)
	}
	if opts.TemplateEngine == nil {
		opts.TemplateEngine = template_engine.NewTemplateEngine()
	}

	var ref template_engine.TemplateRef
	switch opts.Template {
	case "", TemplateTSX:
		ref = template_engine.TEMPLATES.COMPONENT_TSX
	case TemplateJSX:
		ref = template_engine.TEMPLATES.COMPONENT_JSX
	default:
		return nil, fmt.Errorf("unknown component template %q", opts.Template)
	}
	if err := opts.TemplateEngine.ValidateTemplate(ref); err != nil {
		return nil, err
	}

	strip := make(map[string]struct{}, len(opts.StripAttributes))
	for _, name := range opts.StripAttributes {
		strip[name] = struct{}{}
	}

	return &Transformer{
		rootTag:  opts.RootTag,
		root:     rootPattern(opts.RootTag),
		strip:    strip,
		neutral:  opts.PreserveNeutral,
		jsx:      opts.JSXAttributes,
		importLn: opts.ComponentImport,
		template: ref,
		namer:    opts.Namer,
		engine:   opts.TemplateEngine,
	}, nil
}

// Extract returns the first root span in raw.
func (t *Transformer) Extract(raw string) (string, bool) {
	span := t.root.FindString(raw)
	return span, span != ""
}

func StripComments(markup string) string {
	return commentPattern.ReplaceAllString(markup, "")
}

// Sanitize removes styling attributes by exact name from every element.
func (t *Transformer) Sanitize(markup string) string {
	return rewriteTags(markup, t.sanitizeTag)
}

func (t *Transformer) sanitizeTag(tag *Tag) {
	kept := tag.Attrs[:0]
	for _, a := range tag.Attrs {
		if _, ok := t.strip[a.Name]; ok && !t.keepNeutral(a) {
			continue
		}
		kept = append(kept, a)
	}
	tag.Attrs = kept
	if t.jsx {
		for i := range tag.Attrs {
			tag.Attrs[i].Name = jsxAttrName(tag.Attrs[i].Name)
		}
	}
}

func (t *Transformer) keepNeutral(a Attr) bool {
	return t.neutral && a.Name != "style" && a.HasValue && isNeutralPaint(a.Value)
}

// Markup runs extraction, comment stripping, sanitisation, colour injection
// and prop injection. defaultClass is the root's own class, if it had one.
func (t *Transformer) Markup(raw string) (markup string, defaultClass string, err error) {
	// Comments go first so a commented-out tag cannot move the root span.
	span, ok := t.Extract(StripComments(raw))
	if !ok {
		return "", "", ErrNoRootElement
	}

	root, rest, ok := splitRoot(span, t.rootTag)
	if !ok {
		return "", "", fmt.Errorf("%w: malformed <%s> tag", ErrNoRootElement, t.rootTag)
	}

	t.sanitizeTag(root)
	if !root.Has("fill") {
		root.Prepend(Attr{Name: "fill", Value: DefaultFill, Quote: '"', HasValue: true})
	}

	classAttr := "class"
	if t.jsx {
		classAttr = "className"
	}
	if a, ok := root.Get(classAttr); ok {
		defaultClass = a.Value
		root.Remove(classAttr)
	}
	// The color prop owns this attribute now.
	root.Remove("color")
	root.Append(
		Attr{Expr: "className={className}"},
		Attr{Expr: "color={color}"},
		Attr{Expr: passthroughProps},
	)

	return root.String() + t.Sanitize(rest), defaultClass, nil
}

type componentData struct {
	Identifier       string
	Import           string
	DefaultClassName string
	Markup           string
}

// Transform converts raw SVG markup into component source. baseName is the
// file stem the identifier is derived from. A file without a root element
// yields an error wrapping ErrNoRootElement.
func (t *Transformer) Transform(raw, baseName string) (*models.GeneratedComponent, error) {
	markup, defaultClass, err := t.Markup(raw)
	if err != nil {
		return nil, err
	}

	id := t.namer.Identifier(baseName)
	source, err := t.engine.Render(t.template, componentData{
		Identifier:       id,
		Import:           t.importLn,
		DefaultClassName: defaultClass,
		Markup:           normalizeNewlines(markup),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render component %s: %w", id, err)
	}

	return &models.GeneratedComponent{
		Identifier: id,
		BaseName:   baseName,
		Source:     source,
	}, nil
}

func normalizeNewlines(markup string) string {
	markup = strings.ReplaceAll(markup, "\r\n", "\n")
	return strings.TrimSpace(markup)
}
