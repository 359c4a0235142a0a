package template_engine

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/tristendillon/iconforge/core/logger"
)

type TemplateRef struct {
	Path string
}

type TemplateEngine struct {
	funcMap template.FuncMap
	parsed  map[string]*template.Template
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Go's quoting is a valid JS/YAML double-quoted string for the
		// values we emit.
		"quote":    strconv.Quote,
		"jsString": strconv.Quote,
	}
}

func NewTemplateEngine() *TemplateEngine {
	funcMap := template.FuncMap{}

	for name, fn := range getDefaultFuncMap() {
		funcMap[name] = fn
	}

	return &TemplateEngine{
		funcMap: funcMap,
		parsed:  make(map[string]*template.Template),
	}
}

func (te *TemplateEngine) load(ref TemplateRef) (*template.Template, error) {
	if tmpl, ok := te.parsed[ref.Path]; ok {
		return tmpl, nil
	}

	templatePath := path.Join("templates", ref.Path)
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(ref.Path)).
		Funcs(te.funcMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", ref.Path, err)
	}

	te.parsed[ref.Path] = tmpl
	return tmpl, nil
}

// Render executes ref against data and returns the text.
func (te *TemplateEngine) Render(ref TemplateRef, data interface{}) (string, error) {
	tmpl, err := te.load(ref)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", ref.Path, err)
	}
	return buf.String(), nil
}

// GenerateFile renders ref and writes it to outputPath atomically.
func (te *TemplateEngine) GenerateFile(ref TemplateRef, outputPath string, data interface{}) error {
	content, err := te.Render(ref, data)
	if err != nil {
		return err
	}
	return WriteFileAtomic(outputPath, []byte(content))
}

func (te *TemplateEngine) ValidateTemplate(ref TemplateRef) error {
	templatePath := path.Join("templates", ref.Path)

	info, err := fs.Stat(TemplateFS, templatePath)
	if err != nil {
		return fmt.Errorf("template not found: %s", ref.Path)
	}
	if info.IsDir() {
		return fmt.Errorf("template reference %s is a directory", ref.Path)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to outputPath and renames it
// into place, creating parent directories as needed.
func WriteFileAtomic(outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", outputPath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", outputPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outputPath, err)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", outputPath, err)
	}
	tmpName = ""

	logger.Debug("Wrote %s (%d bytes)", outputPath, len(data))
	return nil
}
