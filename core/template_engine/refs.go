package template_engine

var TEMPLATES = struct {
	COMPONENT_TSX TemplateRef
	COMPONENT_JSX TemplateRef
	MANIFEST      TemplateRef
	INIT_CONFIG   TemplateRef
}{
	COMPONENT_TSX: TemplateRef{Path: "component/component.tsx.tmpl"},
	COMPONENT_JSX: TemplateRef{Path: "component/component.jsx.tmpl"},
	MANIFEST:      TemplateRef{Path: "manifest/index.ts.tmpl"},
	INIT_CONFIG:   TemplateRef{Path: "init/iconforge.yaml.tmpl"},
}
