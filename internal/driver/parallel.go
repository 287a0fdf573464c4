package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/source"
	"obc/internal/trace"
)

// ParseDirResult is one file of ParseDir. Exactly one of Result and Summary
// is authoritative: Result for a fresh parse, Summary alone for a cache hit.
// Bag is never nil.
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Result  *ParseResult
	Summary *Summary
	Cached  bool
	Bag     *diag.Bag
	Err     error // load error or the parse failure
}

// TokenizeDirResult is one file of TokenizeDir.
type TokenizeDirResult struct {
	Path   string
	Result *TokenizeResult // nil when the file failed to load
	Err    error
}

// ListSourceFiles returns the source files under dir in lexical order.
// Hidden directories are skipped.
func ListSourceFiles(dir string, opts Options) ([]string, error) {
	cfg := opts.config()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.HasSourceExt(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// preload читает все файлы последовательно: FileSet не потокобезопасен,
// а после загрузки воркеры его только читают.
func preload(dir string, files []string, opts Options) (*source.FileSet, []source.FileID, []error) {
	done := opts.Timer.Track("load")
	fileSet := source.NewFileSetWithBase(dir)
	ids := make([]source.FileID, len(files))
	errs := make([]error, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fileSet.Load(path)
		if err != nil {
			errs[i] = fmt.Errorf("load %s: %w", path, err)
			// пустой виртуальный файл, чтобы диагностика загрузки указывала на свой путь
			ids[i] = fileSet.AddVirtual(path, nil)
			continue
		}
		ids[i] = id
	}
	done(fmt.Sprintf("%d files", len(files)))
	return fileSet, ids, errs
}

func jobsFor(opts Options, n int) int {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func loadFailure(fileID source.FileID, err error) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, err.Error())
}

// ParseDir parses every source file under dir, up to opts.Jobs at a time.
// Each worker owns its lexer, parser and ast.Builder. Per-file failures are
// reported in the results; the returned error is for the scan itself and
// for cancellation.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	fileSet, ids, loadErrs := preload(dir, files, opts)

	span := trace.Begin(opts.tracer(), trace.ScopePass, "parse-dir:"+dir, opts.TraceParent)
	done := opts.Timer.Track("parse")
	var hits atomic.Int64

	worker := opts
	worker.Timer = nil
	worker.TraceParent = span.ID()

	results := make([]ParseDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsFor(opts, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := ParseDirResult{Path: path, FileID: ids[i]}
			if loadErrs[i] != nil {
				r.Bag = worker.newBag()
				r.Bag.Add(loadFailure(ids[i], loadErrs[i]))
				r.Err = loadErrs[i]
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: r.Err})
				results[i] = r
				return nil
			}
			file := fileSet.Get(ids[i])
			if parseCached(&r, file, worker) {
				hits.Add(1)
				results[i] = r
				return nil
			}
			parseFresh(&r, fileSet, file, worker)
			results[i] = r
			return nil
		})
	}
	err = g.Wait()
	done(fmt.Sprintf("%d files, %d cached", len(files), hits.Load()))
	span.WithExtra("files", fmt.Sprint(len(files))).End("")
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// parseCached fills r from the disk cache; false means a miss.
func parseCached(r *ParseDirResult, file *source.File, opts Options) bool {
	if opts.Cache == nil {
		return false
	}
	sum, ok, err := opts.Cache.Get(CacheKey(file.Content, opts))
	if err != nil || !ok {
		if err != nil {
			r.Bag = opts.newBag()
			r.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, err.Error()))
		}
		return false
	}
	r.Summary = sum
	r.Cached = true
	r.Bag = opts.newBag()
	for _, d := range sum.RestoreDiagnostics(file.ID) {
		r.Bag.Add(d)
	}
	status := StatusDone
	if sum.Failed() {
		status = StatusError
		if first, ok := r.Bag.First(); ok {
			r.Err = fmt.Errorf("%s: %s", first.Loc, first.Message)
		}
	}
	emit(opts.Progress, Event{File: r.Path, Stage: StageCache, Status: status, Err: r.Err})
	return true
}

func parseFresh(r *ParseDirResult, fileSet *source.FileSet, file *source.File, opts Options) {
	start := time.Now()
	emit(opts.Progress, Event{File: r.Path, Stage: StageParse, Status: StatusWorking})

	res := parseInto(file, ast.NewBuilder(ast.Hints{}, nil), opts)
	res.FileSet = fileSet
	// сводка для кэша строится до того, как в Bag попадут предупреждения о самом кэше
	summary := Summarize(res)
	if r.Bag != nil {
		res.Bag.Merge(r.Bag)
	}
	r.Result = res
	r.Bag = res.Bag
	r.Err = res.Err
	r.Summary = summary

	if opts.Cache != nil {
		if err := opts.Cache.Put(CacheKey(file.Content, opts), r.Summary); err != nil {
			r.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, err.Error()))
		}
	}

	status := StatusDone
	if r.Err != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{File: r.Path, Stage: StageParse, Status: status, Err: r.Err, Elapsed: time.Since(start)})
}

// TokenizeDir tokenizes every source file under dir concurrently.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	fileSet, ids, loadErrs := preload(dir, files, opts)

	done := opts.Timer.Track("lex")
	worker := opts
	worker.Timer = nil

	results := make([]TokenizeDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsFor(opts, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				results[i] = TokenizeDirResult{Path: path, Err: loadErrs[i]}
				return nil
			}
			res := tokenizeFile(fileSet, fileSet.Get(ids[i]), worker)
			results[i] = TokenizeDirResult{Path: path, Result: res}
			if res.Err != nil {
				results[i].Err = res.Err
			}
			return nil
		})
	}
	err = g.Wait()
	done(fmt.Sprintf("%d files", len(files)))
	return fileSet, results, err
}
