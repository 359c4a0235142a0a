package models

// SourceAsset is one icon file found under the input root.
type SourceAsset struct {
	Path    string // absolute or input-relative path on disk
	RelPath string // path relative to the input root, OS separators
	Content string
}

// GeneratedComponent is the result of converting one SourceAsset.
type GeneratedComponent struct {
	Identifier string
	BaseName   string
	Source     string

	// Filled in by the generator.
	SourcePath string
	OutputPath string // full path of the component file
	ModulePath string // "./nav/icon-arrow-left", used by the manifest
}

// SkippedResult records a file that produced no component.
type SkippedResult struct {
	SourcePath string
	Reason     string
}

// ManifestEntry is one re-export line of the index file.
type ManifestEntry struct {
	Identifier string
	ModulePath string
}

// Report summarises one batch run.
type Report struct {
	Components   []*GeneratedComponent
	Skipped      []SkippedResult
	Unchanged    int
	ManifestPath string
	DryRun       bool
}

func (r *Report) Converted() int {
	return len(r.Components)
}
