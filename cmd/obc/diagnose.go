package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"obc/internal/diag"
	"obc/internal/diagfmt"
	"obc/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.mod|directory|->",
	Short: "Report lexical and syntax errors",
	Long:  `Diag parses the input only for its diagnostics; it exits with status 1 when any file has errors`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0 = obc.toml or GOMAXPROCS)")
	diagCmd.Flags().String("ui", "off", "progress view for directories (auto|on|off)")
	diagCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache (directories only)")
	diagCmd.Flags().Bool("clear-cache", false, "drop the disk cache before running")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runDiagnose executes the "diag" command: it parses the target, prints the
// diagnostics in the chosen format and fails when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) (err error) {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
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

	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("obc")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if useCache {
			s.opts.Cache = cache
		}
	}

	fileSet, files, _, err := parseTarget(cmd.Context(), s, target, mode)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	errOut := cmd.ErrOrStderr()
	switch format {
	case "json":
		bag := mergeBags(files, s.opts.MaxDiagnostics)
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, IncludeNotes: true}
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, fileSet, opts); err != nil {
			return err
		}
	default:
		opts := s.prettyOpts()
		opts.PathMode = pathMode
		reportDiagnostics(cmd.OutOrStdout(), fileSet, files, opts)
	}
	writeDiagSummary(errOut, files)

	for _, f := range files {
		if f.failed() {
			return errReported
		}
	}
	return nil
}

// mergeBags собирает диагностики всех файлов в один Bag для JSON-вывода.
func mergeBags(files []parsedFile, perFile int) *diag.Bag {
	if perFile <= 0 {
		perFile = 100
	}
	total := 0
	for _, f := range files {
		if f.bag != nil {
			total += f.bag.Len()
		}
	}
	bag := diag.NewBag(min(max(total, perFile), math.MaxUint16))
	for _, f := range files {
		if f.bag != nil {
			bag.Merge(f.bag)
		}
	}
	bag.Sort()
	return bag
}

func writeDiagSummary(w io.Writer, files []parsedFile) {
	var failed, cached, diags, decls int
	for _, f := range files {
		if f.summary != nil {
			decls += f.summary.Decls.Total()
		}
		if f.failed() {
			failed++
		}
		if f.cached {
			cached++
		}
		if f.bag != nil {
			diags += f.bag.Len()
		}
	}
	line := fmt.Sprintf("%d file(s), %d declaration(s), %d with errors, %d diagnostic(s)", len(files), decls, failed, diags)
	if cached > 0 {
		line += fmt.Sprintf(", %d cached", cached)
	}
	fmt.Fprintln(w, line) //nolint:errcheck
}
