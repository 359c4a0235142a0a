package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tristendillon/iconforge/core/cache"
	"github.com/tristendillon/iconforge/core/config"
	"github.com/tristendillon/iconforge/core/logger"
	"github.com/tristendillon/iconforge/core/models"
	"github.com/tristendillon/iconforge/core/naming"
	"github.com/tristendillon/iconforge/core/template_engine"
	"github.com/tristendillon/iconforge/core/transform"
	"github.com/tristendillon/iconforge/core/walker"
)

// ErrIdentifierCollision means two source files derive the same component
// identifier and the collision policy is "error".
var ErrIdentifierCollision = errors.New("identifier collision")

type IconGenerator struct {
	cfg         *config.Config
	Walker      walker.IconWalker
	transformer *transform.Transformer
	engine      *template_engine.TemplateEngine
	cache       *cache.ComponentCache
	mu          sync.Mutex
}

func NewIconGenerator(cfg *config.Config) (*IconGenerator, error) {
	engine := template_engine.NewTemplateEngine()
	namer := naming.NewNamer(naming.DefaultReservedWords(cfg.Naming.ReservedWords...), cfg.Naming.Suffix)

	tr, err := transform.NewTransformer(transform.Options{
		RootTag:         cfg.Transform.RootTag,
		StripAttributes: cfg.Transform.StripAttributes,
		PreserveNeutral: cfg.Transform.PreserveNeutral,
		JSXAttributes:   cfg.Transform.JSXAttributes,
		ComponentImport: cfg.Transform.ComponentImport,
		Template:        cfg.ComponentTemplate(),
		Namer:           namer,
		TemplateEngine:  engine,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transformer: %w", err)
	}

	componentCache, err := cache.NewComponentCache(&cache.CacheConfig{
		MaxEntries:    cfg.Cache.MaxEntries,
		EnableMetrics: true,
	})
	if err != nil {
		return nil, err
	}

	return &IconGenerator{
		cfg:         cfg,
		Walker:      walker.NewIconWalker(cfg.Extensions, cfg.Exclude, cfg.Output),
		transformer: tr,
		engine:      engine,
		cache:       componentCache,
	}, nil
}

type GenerateOptions struct {
	DryRun bool
}

// Generate converts every icon under the input root and rewrites the
// manifest. Files without a root element are skipped, not fatal.
func (g *IconGenerator) Generate(opts GenerateOptions) (*models.Report, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	assets, err := g.Walker.Walk(g.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	logger.Debug("Found %d icon files in %s", len(assets), g.cfg.Input)

	if _, err := os.Stat(g.cfg.Output); os.IsNotExist(err) && g.cache.Len() > 0 {
		logger.Debug("Output %s is gone, dropping %d cached components", g.cfg.Output, g.cache.Len())
		g.cache.Clear()
	}

	report := &models.Report{
		ManifestPath: filepath.Join(g.cfg.Output, g.cfg.IndexFile),
		DryRun:       opts.DryRun,
	}

	var pending []*pendingComponent
	for _, asset := range assets {
		p, skipped, err := g.convert(asset)
		if err != nil {
			return nil, err
		}
		if skipped != nil {
			logger.Warn("Skipping %s: %s", asset.Path, skipped.Reason)
			report.Skipped = append(report.Skipped, *skipped)
			continue
		}
		pending = append(pending, p)
	}

	pending, err = g.resolveCollisions(pending, report)
	if err != nil {
		return nil, err
	}

	for _, p := range pending {
		report.Components = append(report.Components, p.component)
		if p.cached {
			report.Unchanged++
			continue
		}
		if opts.DryRun {
			logger.Info("Would write %s (%s)", p.component.OutputPath, p.component.Identifier)
			continue
		}
		if err := template_engine.WriteFileAtomic(p.component.OutputPath, []byte(p.component.Source)); err != nil {
			return nil, fmt.Errorf("failed to write component %s: %w", p.component.OutputPath, err)
		}
		g.cache.Set(p.component.SourcePath, p.hash, p.component)
		logger.Info("Converted: %s → %s", p.relPath, p.component.Identifier)
	}

	if err := g.generateManifest(report, opts.DryRun); err != nil {
		return nil, err
	}

	g.cache.LogStats()
	return report, nil
}

type pendingComponent struct {
	component *models.GeneratedComponent
	relPath   string
	hash      string
	cached    bool
}

func (g *IconGenerator) convert(asset models.SourceAsset) (*pendingComponent, *models.SkippedResult, error) {
	hash := cache.HashContent(asset.Content)

	if comp, ok := g.cache.Get(asset.Path, hash); ok {
		if _, err := os.Stat(comp.OutputPath); err == nil {
			return &pendingComponent{component: comp, relPath: asset.RelPath, hash: hash, cached: true}, nil, nil
		}
		g.cache.InvalidateFile(asset.Path)
	}

	stem := naming.Stem(asset.RelPath)
	comp, err := g.transformer.Transform(asset.Content, stem)
	if errors.Is(err, transform.ErrNoRootElement) {
		return nil, &models.SkippedResult{SourcePath: asset.Path, Reason: err.Error()}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to transform %s: %w", asset.Path, err)
	}

	relDir := filepath.Dir(asset.RelPath)
	comp.SourcePath = asset.Path
	comp.OutputPath = filepath.Join(g.cfg.Output, relDir, stem+g.cfg.OutputExtension)
	comp.ModulePath = ModulePath(relDir, stem)

	return &pendingComponent{component: comp, relPath: asset.RelPath, hash: hash}, nil, nil
}

// ModulePath is the extensionless import path of a component relative to
// the manifest, e.g. "./nav/icon-arrow-left".
func ModulePath(relDir, stem string) string {
	if relDir == "." || relDir == "" {
		return "./" + stem
	}
	return "./" + filepath.ToSlash(filepath.Join(relDir, stem))
}

// resolveCollisions applies the on_collision policy. pending is sorted by
// source path, so "first" keeps the lexicographically first file. A source
// that would shadow the manifest always loses to it.
func (g *IconGenerator) resolveCollisions(pending []*pendingComponent, report *models.Report) ([]*pendingComponent, error) {
	owners := make(map[string]*pendingComponent, len(pending))
	kept := pending[:0]
	var conflicts []string

	// A component at the output root named like the manifest would make the
	// manifest re-export itself.
	manifestModule := ModulePath(".", strings.TrimSuffix(g.cfg.IndexFile, filepath.Ext(g.cfg.IndexFile)))

	for _, p := range pending {
		var msg string
		if strings.EqualFold(p.component.ModulePath, manifestModule) {
			msg = fmt.Sprintf("%s maps to the same module as the manifest %s", p.relPath, g.cfg.IndexFile)
		} else if owner, taken := owners[p.component.Identifier]; taken {
			msg = fmt.Sprintf("%s and %s both map to %s", owner.relPath, p.relPath, p.component.Identifier)
		} else {
			owners[p.component.Identifier] = p
			kept = append(kept, p)
			continue
		}

		if g.cfg.OnCollision == config.CollisionFirst {
			logger.Warn("Skipping %s: %s", p.component.SourcePath, msg)
			report.Skipped = append(report.Skipped, models.SkippedResult{
				SourcePath: p.component.SourcePath,
				Reason:     msg,
			})
			continue
		}
		conflicts = append(conflicts, msg)
	}

	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIdentifierCollision, strings.Join(conflicts, "; "))
	}
	return kept, nil
}

type manifestData struct {
	Entries []models.ManifestEntry
}

func ManifestEntries(components []*models.GeneratedComponent) []models.ManifestEntry {
	entries := make([]models.ManifestEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, models.ManifestEntry{Identifier: c.Identifier, ModulePath: c.ModulePath})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Identifier != entries[j].Identifier {
			return entries[i].Identifier < entries[j].Identifier
		}
		return entries[i].ModulePath < entries[j].ModulePath
	})
	return entries
}

func (g *IconGenerator) generateManifest(report *models.Report, dryRun bool) error {
	data := manifestData{Entries: ManifestEntries(report.Components)}

	if dryRun {
		logger.Info("Would write %s with %d exports", report.ManifestPath, len(data.Entries))
		return nil
	}

	if err := g.engine.GenerateFile(template_engine.TEMPLATES.MANIFEST, report.ManifestPath, data); err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}

	logger.Info("%s created with %d exports at: %s", g.cfg.IndexFile, len(data.Entries), report.ManifestPath)
	return nil
}
