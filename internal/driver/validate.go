package driver

import (
	"context"
	"os"

	"nvcfg/internal/catalog"
	"nvcfg/internal/model"
	"nvcfg/internal/source"
	"nvcfg/internal/validate"
)

// Options configures a directory validation run.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Manifest       *catalog.Manifest
	Cache          *catalog.DiskCache
	// PathExists overrides the os.Stat predicate, for tests.
	PathExists func(string) bool
	// Observer receives progress events; may be nil.
	Observer Observer
}

// ValidateResult pairs the validation report with the parse artifacts
// it was computed from.
type ValidateResult struct {
	FileSet *source.FileSet
	Files   []ParseResult
	Report  *validate.Report
}

// ValidateDir parses every config file under root and runs the full
// pipeline. Extraction goes through the disk cache when one is given:
// a file whose content hash is cached skips re-extraction.
func ValidateDir(ctx context.Context, root string, opts Options) (*ValidateResult, error) {
	manifest := opts.Manifest
	if manifest == nil {
		m := catalog.DefaultManifest()
		manifest = &m
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = manifest.Validate.MaxDiagnostics
	}

	fileSet, parsed, err := parseDir(ctx, root, maxDiagnostics, opts.Jobs, opts.Observer)
	if err != nil {
		return nil, err
	}

	pathExists := opts.PathExists
	if pathExists == nil {
		pathExists = func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		}
	}

	files := make([]*validate.ParsedFile, 0, len(parsed))
	for i := range parsed {
		pr := &parsed[i]
		if pr.Chunk == nil {
			// load failure; its bag still reaches the report through
			// the syntax stage
			files = append(files, &validate.ParsedFile{
				Source: &source.File{Path: pr.Path},
				Chunk:  nil,
				Parse:  pr.Bag.Items(),
				Model:  &model.File{Path: pr.Path},
			})
			continue
		}
		f := fileSet.Get(pr.FileID)
		notify(opts.Observer, Event{File: pr.Path, Stage: StageExtract, Status: StatusWorking})
		files = append(files, &validate.ParsedFile{
			Source: f,
			Chunk:  pr.Chunk,
			Parse:  pr.Bag.Items(),
			Model:  extractCached(opts.Cache, f, pr),
		})
		notify(opts.Observer, Event{File: pr.Path, Stage: StageExtract, Status: StatusDone})
	}

	notify(opts.Observer, Event{Stage: StageValidate, Status: StatusWorking})
	report := validate.Run(validate.Input{
		Files:          files,
		Options:        catalog.NewOptions(manifest.ExtraOptions()),
		Events:         catalog.NewEvents(manifest.Validate.ExtraEvents),
		ConfigRoot:     root,
		PathExists:     pathExists,
		MaxDiagnostics: maxDiagnostics,
	})

	status := StatusDone
	if !report.Success {
		status = StatusError
	}
	notify(opts.Observer, Event{Stage: StageValidate, Status: status})

	return &ValidateResult{FileSet: fileSet, Files: parsed, Report: report}, nil
}

// extractCached fetches the extracted model from the cache by content
// hash, falling back to a fresh extraction. Cached spans carry the
// FileID of a previous run, so they are rebound to the current one.
func extractCached(cache *catalog.DiskCache, f *source.File, pr *ParseResult) *model.File {
	if cache != nil {
		if cached, hit, err := cache.Get(f.Hash); err == nil && hit {
			rebindSpans(cached, f.ID)
			cached.Path = f.Path
			return cached
		}
	}
	m := model.Extract(pr.Chunk, f.Path)
	if cache != nil {
		_ = cache.Put(f.Hash, m)
	}
	return m
}

func rebindSpans(m *model.File, id source.FileID) {
	for i := range m.Options {
		m.Options[i].Span.File = id
	}
	for i := range m.Plugins {
		m.Plugins[i].Span.File = id
	}
}
