package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"obc/internal/version"
)

// errReported означает, что причина уже напечатана (обычно диагностиками);
// main только выставляет код выхода.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "obc",
	Short:         "Oberon front end: tokenizer and parser",
	Long:          `obc tokenizes and parses Oberon-family modules and reports lexical and syntax errors`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "", "colorize output (auto|on|off); default from obc.toml")
	pf.String("config", "", "path to obc.toml (default: search upwards from the input)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to keep per file (0 = obc.toml or 100)")
	pf.Bool("nested-comments", false, "let (* ... *) comments nest")
	pf.String("trace", "off", "trace level (off|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace mode (stream|ring)")
	pf.String("trace-output", "", "trace output file (default stderr; .ndjson selects NDJSON)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command; any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "obc: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
