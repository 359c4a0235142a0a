package template_engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesExist(t *testing.T) {
	engine := NewTemplateEngine()
	for _, ref := range []TemplateRef{
		TEMPLATES.COMPONENT_TSX,
		TEMPLATES.COMPONENT_JSX,
		TEMPLATES.MANIFEST,
		TEMPLATES.INIT_CONFIG,
	} {
		assert.NoError(t, engine.ValidateTemplate(ref), ref.Path)
	}

	assert.Error(t, engine.ValidateTemplate(TemplateRef{Path: "missing.tmpl"}))
	assert.Error(t, engine.ValidateTemplate(TemplateRef{Path: "component"}))
}

type manifestEntry struct {
	Identifier string
	ModulePath string
}

func TestRenderManifest(t *testing.T) {
	engine := NewTemplateEngine()

	out, err := engine.Render(TEMPLATES.MANIFEST, map[string]interface{}{
		"Entries": []manifestEntry{
			{Identifier: "Add", ModulePath: "./add"},
			{Identifier: "IconArrowLeft", ModulePath: "./nav/icon-arrow-left"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"export { default as Add } from './add';\n"+
			"export { default as IconArrowLeft } from './nav/icon-arrow-left';\n",
		out)

	empty, err := engine.Render(TEMPLATES.MANIFEST, map[string]interface{}{"Entries": []manifestEntry{}})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRenderMissingKeyFails(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.Render(TEMPLATES.MANIFEST, map[string]interface{}{})
	assert.Error(t, err)
}

func TestGenerateFileIsAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "index.ts")

	engine := NewTemplateEngine()
	data := map[string]interface{}{
		"Entries": []manifestEntry{{Identifier: "Home", ModulePath: "./home"}},
	}
	require.NoError(t, engine.GenerateFile(TEMPLATES.MANIFEST, target, data))
	require.NoError(t, engine.GenerateFile(TEMPLATES.MANIFEST, target, data))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "export { default as Home } from './home';\n", string(content))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
