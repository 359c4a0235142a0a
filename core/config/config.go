package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tristendillon/iconforge/core/logger"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix   = "ICONFORGE_"
	DefaultFile = "iconforge.yaml"

	CollisionError = "error"
	CollisionFirst = "first"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Input           string    `yaml:"input" env:"INPUT"`
	Output          string    `yaml:"output" env:"OUTPUT"`
	Extensions      []string  `yaml:"extensions" env:"EXTENSIONS"`
	OutputExtension string    `yaml:"output_extension" env:"OUTPUT_EXTENSION"`
	IndexFile       string    `yaml:"index_file" env:"INDEX_FILE"`
	Exclude         []string  `yaml:"exclude" env:"EXCLUDE"`
	OnCollision     string    `yaml:"on_collision" env:"ON_COLLISION"`
	Transform       Transform `yaml:"transform" envPrefix:"TRANSFORM_"`
	Naming          Naming    `yaml:"naming" envPrefix:"NAMING_"`
	Watch           Watch     `yaml:"watch" envPrefix:"WATCH_"`
	Cache           Cache     `yaml:"cache" envPrefix:"CACHE_"`
}

type Transform struct {
	RootTag         string   `yaml:"root_tag" env:"ROOT_TAG"`
	StripAttributes []string `yaml:"strip_attributes" env:"STRIP_ATTRIBUTES"`
	PreserveNeutral bool     `yaml:"preserve_neutral" env:"PRESERVE_NEUTRAL"`
	JSXAttributes   bool     `yaml:"jsx_attributes" env:"JSX_ATTRIBUTES"`
	ComponentImport string   `yaml:"component_import" env:"COMPONENT_IMPORT"`
	// Template is "tsx" or "jsx"; empty picks one from OutputExtension.
	Template string `yaml:"template" env:"TEMPLATE"`
}

type Naming struct {
	Suffix        string   `yaml:"suffix" env:"SUFFIX"`
	ReservedWords []string `yaml:"reserved_words" env:"RESERVED_WORDS"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

type Cache struct {
	MaxEntries int `yaml:"max_entries" env:"MAX_ENTRIES"`
}

func Default() *Config {
	return &Config{
		Input:           "./src/app/assets/icons/ui",
		Output:          "./src/app/components/icons/ui",
		Extensions:      []string{".svg"},
		OutputExtension: ".tsx",
		IndexFile:       "index.ts",
		Exclude:         []string{},
		OnCollision:     CollisionError,
		Transform: Transform{
			RootTag:         "svg",
			StripAttributes: []string{"fill", "stroke", "style"},
			PreserveNeutral: true,
			JSXAttributes:   true,
			ComponentImport: "import React from 'react';",
		},
		Naming: Naming{
			Suffix:        "Icon",
			ReservedWords: []string{},
		},
		Watch: Watch{Debounce: 500 * time.Millisecond},
		Cache: Cache{MaxEntries: 1000},
	}
}

// Load builds the config from defaults, the config file, .env and ICONFORGE_*
// variables, in that order. An explicit path must exist; otherwise
// iconforge.yaml in the working directory is optional.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Debug("Ignoring .env: %v", err)
	}

	cfg := Default()

	filePath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
	} else {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml %s: %w", filePath, err)
		}
		logger.Debug("Config file found: %s", filePath)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	logger.Debug("Config: %+v", *cfg)
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working dir: %w", err)
	}

	for _, name := range []string{DefaultFile, "iconforge.yml"} {
		p := filepath.Join(wd, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

var tagNamePattern = regexp.MustCompile(`^[A-Za-z][\w:.-]*$`)

func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Input) == "" {
		add("input must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		add("output must not be empty")
	}
	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		add("input and output must be different directories")
	}
	if len(c.Extensions) == 0 {
		add("extensions must list at least one extension")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			add("extension %q must start with a dot", ext)
		}
	}
	if !strings.HasPrefix(c.OutputExtension, ".") {
		add("output_extension %q must start with a dot", c.OutputExtension)
	}
	if c.IndexFile == "" || filepath.Base(c.IndexFile) != c.IndexFile {
		add("index_file %q must be a plain file name", c.IndexFile)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			add("exclude pattern %q is invalid", pattern)
		}
	}
	switch c.OnCollision {
	case CollisionError, CollisionFirst:
	default:
		add("on_collision must be %q or %q, got %q", CollisionError, CollisionFirst, c.OnCollision)
	}
	if !tagNamePattern.MatchString(c.Transform.RootTag) {
		add("transform.root_tag %q is not a tag name", c.Transform.RootTag)
	}
	switch c.Transform.Template {
	case "", "tsx", "jsx":
	default:
		add("transform.template must be tsx or jsx, got %q", c.Transform.Template)
	}
	if c.Cache.MaxEntries <= 0 {
		add("cache.max_entries must be positive")
	}
	if c.Watch.Debounce < 0 {
		add("watch.debounce must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ComponentTemplate resolves the component template name.
func (c *Config) ComponentTemplate() string {
	if c.Transform.Template != "" {
		return c.Transform.Template
	}
	switch c.OutputExtension {
	case ".tsx", ".ts":
		return "tsx"
	default:
		return "jsx"
	}
}
