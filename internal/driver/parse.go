package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"nvcfg/internal/ast"
	"nvcfg/internal/diag"
	"nvcfg/internal/parser"
	"nvcfg/internal/source"
)

// ParseResult is one parsed file.
type ParseResult struct {
	Path   string
	FileID source.FileID
	Chunk  *ast.Chunk
	Bag    *diag.Bag
}

// ParseDir parses every *.lua file under dir in parallel. Files that
// fail to load still produce a result, carrying an I/O diagnostic.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseResult, error) {
	return parseDir(ctx, dir, maxDiagnostics, jobs, nil)
}

func parseDir(ctx context.Context, dir string, maxDiagnostics, jobs int, obs Observer) (*source.FileSet, []ParseResult, error) {
	files, err := ListLuaFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// loading is sequential: the FileSet is not safe for concurrent Add
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// one slot per goroutine, no mutex needed
	results := make([]ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for _, path := range files {
		notify(obs, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				notify(obs, Event{File: path, Stage: StageParse, Status: StatusWorking})

				bag := diag.NewBag(maxDiagnostics)
				if loadErr, hadError := loadErrors[path]; hadError {
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = ParseResult{Path: path, Bag: bag}
					notify(obs, Event{File: path, Stage: StageParse, Status: StatusError})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				res := parser.ParseFile(file, parser.Options{
					Reporter: diag.NewBagReporter(bag),
				})

				results[i] = ParseResult{
					Path:   path,
					FileID: fileID,
					Chunk:  res.Chunk,
					Bag:    bag,
				}
				status := StatusDone
				if bag.HasErrors() {
					status = StatusError
				}
				notify(obs, Event{File: path, Stage: StageParse, Status: status})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParsePath parses a single file.
func ParsePath(path string, maxDiagnostics int) (*source.FileSet, *ParseResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	res := parser.ParseFile(fileSet.Get(fileID), parser.Options{
		Reporter: diag.NewBagReporter(bag),
	})
	return fileSet, &ParseResult{Path: path, FileID: fileID, Chunk: res.Chunk, Bag: bag}, nil
}
