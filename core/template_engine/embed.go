package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS
