package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"obc/internal/diag"
	"obc/internal/diagfmt"
	"obc/internal/driver"
	"obc/internal/source"
	"obc/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.mod|directory|->",
	Short: "Parse Oberon modules and print their syntax trees",
	Long:  `Parse analyzes an Oberon source file, stdin ("-") or every source file in a directory and prints the syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0 = obc.toml or GOMAXPROCS)")
	parseCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

// parsedFile is one parsed module, fresh or restored from the cache.
type parsedFile struct {
	path    string
	result  *driver.ParseResult // nil for cache hits and load failures
	summary *driver.Summary
	bag     *diag.Bag
	err     error
	cached  bool
}

func (f parsedFile) failed() bool {
	return f.err != nil || (f.bag != nil && f.bag.HasErrors())
}

type astWriter func(w io.Writer, r *driver.ParseResult) error

func astFormat(format string) (astWriter, error) {
	switch format {
	case "pretty":
		return func(w io.Writer, r *driver.ParseResult) error {
			return diagfmt.FormatASTPretty(w, r.Builder, r.Module, r.FileSet)
		}, nil
	case "tree":
		return func(w io.Writer, r *driver.ParseResult) error {
			return diagfmt.FormatASTTree(w, r.Builder, r.Module, r.FileSet)
		}, nil
	case "json":
		return func(w io.Writer, r *driver.ParseResult) error {
			return diagfmt.FormatASTJSON(w, r.Builder, r.Module, r.FileSet)
		}, nil
	case "yaml":
		return func(w io.Writer, r *driver.ParseResult) error {
			return diagfmt.FormatASTYAML(w, r.Builder, r.Module, r.FileSet)
		}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	writeAST, err := astFormat(format)
	if err != nil {
		return err
	}
	mode, err := uiModeFlag(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, target)
	if err != nil {
		return err
	}
	defer func() { s.close(cmd, err != nil) }()
	if err := applyJobs(cmd, s); err != nil {
		return err
	}

	fileSet, files, isDir, err := parseTarget(cmd.Context(), s, target, mode)
	if err != nil {
		return err
	}
	reportDiagnostics(cmd.ErrOrStderr(), fileSet, files, s.prettyOpts())

	out := cmd.OutOrStdout()
	failed := false
	for _, f := range files {
		if f.failed() || f.result == nil || !f.result.OK() {
			failed = true
			continue
		}
		if isDir {
			switch format {
			case "pretty", "tree":
				fmt.Fprintf(out, "== %s ==\n", f.path) //nolint:errcheck
			case "yaml":
				fmt.Fprintln(out, "---") //nolint:errcheck
			}
		}
		if err := writeAST(out, f.result); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func uiModeFlag(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return "", fmt.Errorf("failed to get ui flag: %w", err)
	}
	return readUIMode(value)
}

// applyJobs: флаг --jobs важнее [parse].jobs из obc.toml.
func applyJobs(cmd *cobra.Command, s *session) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		return fmt.Errorf("invalid --jobs value %d", jobs)
	}
	if jobs > 0 {
		s.opts.Jobs = jobs
	}
	return nil
}

// parseTarget parses a file, stdin or a directory and returns the results in
// path order together with the file set every span refers to.
func parseTarget(ctx context.Context, s *session, target string, mode uiMode) (*source.FileSet, []parsedFile, bool, error) {
	if target != "-" {
		st, err := os.Stat(target)
		if err != nil {
			return nil, nil, false, fmt.Errorf("failed to stat path: %w", err)
		}
		if st.IsDir() {
			fileSet, files, err := parseDirectory(ctx, s, target, mode)
			return fileSet, files, true, err
		}
	}

	var (
		res *driver.ParseResult
		err error
	)
	if target == "-" {
		res, err = driver.ParseReader(ctx, "<stdin>", os.Stdin, s.opts)
	} else {
		res, err = driver.Parse(ctx, target, s.opts)
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("parsing failed: %w", err)
	}
	f := parsedFile{path: target, result: res, summary: driver.Summarize(res), bag: res.Bag, err: res.Err}
	return res.FileSet, []parsedFile{f}, false, nil
}

func parseDirectory(ctx context.Context, s *session, dir string, mode uiMode) (*source.FileSet, []parsedFile, error) {
	var (
		fileSet *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if shouldUseTUI(mode) {
		fileSet, results, err = parseDirWithUI(ctx, dir, s.opts)
	} else {
		fileSet, results, err = driver.ParseDir(ctx, dir, s.opts)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parsing failed: %w", err)
	}

	files := make([]parsedFile, len(results))
	for i, r := range results {
		files[i] = parsedFile{
			path:    r.Path,
			result:  r.Result,
			summary: r.Summary,
			bag:     r.Bag,
			err:     r.Err,
			cached:  r.Cached,
		}
	}
	return fileSet, files, nil
}

// parseDirWithUI runs ParseDir in the background and shows its events in the
// progress view until the run is over.
func parseDirWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
	paths, err := driver.ListSourceFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}

	type outcome struct {
		fileSet *source.FileSet
		results []driver.ParseDirResult
		err     error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink(events)
		fileSet, results, err := driver.ParseDir(ctx, dir, o)
		outcomeCh <- outcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	uiErr := ui.Run("obc parse "+dir, paths, events, os.Stderr)
	// вью могла выйти раньше (q / ctrl+c); воркеры не должны залипнуть на полном канале
	go func() {
		for range events { //nolint:revive
		}
	}()
	res := <-outcomeCh
	if uiErr != nil && res.err == nil {
		return res.fileSet, res.results, uiErr
	}
	return res.fileSet, res.results, res.err
}

// reportDiagnostics prints every file's diagnostics in path order.
func reportDiagnostics(w io.Writer, fileSet *source.FileSet, files []parsedFile, opts diagfmt.PrettyOpts) {
	for _, f := range files {
		if f.bag == nil || f.bag.Len() == 0 {
			continue
		}
		f.bag.Sort()
		diagfmt.Pretty(w, f.bag, fileSet, opts)
	}
}
