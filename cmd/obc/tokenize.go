package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"obc/internal/diagfmt"
	"obc/internal/driver"
	"obc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.mod|->",
	Short: "Tokenize an Oberon source file",
	Long:  `Tokenize breaks an Oberon source file (or stdin with "-") into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().StringSlice("kinds", nil, "print only tokens of these kinds (e.g. identifier,relation)")
}

// parseKinds переводит значения --kinds в множество; пустой список — без фильтра.
func parseKinds(names []string) (map[token.Kind]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[token.Kind]bool, len(names))
	for _, name := range names {
		k, ok := token.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown token kind %q", name)
		}
		set[k] = true
	}
	return set, nil
}

// filterTokens returns a copy of r holding only tokens whose kind is in set.
func filterTokens(r *driver.TokenizeResult, set map[token.Kind]bool) *driver.TokenizeResult {
	if set == nil {
		return r
	}
	out := *r
	out.Tokens = make([]token.Token, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		if set[tok.Kind] {
			out.Tokens = append(out.Tokens, tok)
		}
	}
	return &out
}

func runTokenize(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	writeAll, err := tokenWriter(format)
	if err != nil {
		return err
	}
	kindNames, err := cmd.Flags().GetStringSlice("kinds")
	if err != nil {
		return fmt.Errorf("failed to get kinds flag: %w", err)
	}
	kinds, err := parseKinds(kindNames)
	if err != nil {
		return err
	}
	writeTokens := func(w io.Writer, r *driver.TokenizeResult) error {
		return writeAll(w, filterTokens(r, kinds))
	}

	s, err := openSession(cmd, filePath)
	if err != nil {
		return err
	}
	defer func() { s.close(cmd, err != nil) }()

	if filePath != "-" {
		if st, statErr := os.Stat(filePath); statErr == nil && st.IsDir() {
			return tokenizeDir(cmd, s, filePath, format, writeTokens)
		}
	}

	var result *driver.TokenizeResult
	if filePath == "-" {
		result, err = driver.TokenizeReader("<stdin>", cmd.InOrStdin(), s.opts)
	} else {
		result, err = driver.Tokenize(filePath, s.opts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Диагностика в stderr, токены в stdout
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.prettyOpts())
	}
	if err := writeTokens(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if result.Err != nil {
		return errReported
	}
	return nil
}

func tokenWriter(format string) (func(io.Writer, *driver.TokenizeResult) error, error) {
	switch format {
	case "pretty":
		return func(w io.Writer, r *driver.TokenizeResult) error {
			return diagfmt.FormatTokensPretty(w, r.Tokens, r.FileSet)
		}, nil
	case "json":
		return func(w io.Writer, r *driver.TokenizeResult) error {
			return diagfmt.FormatTokensJSON(w, r.Tokens)
		}, nil
	case "msgpack":
		return func(w io.Writer, r *driver.TokenizeResult) error {
			if f, ok := w.(*os.File); ok && isTerminal(f) {
				return fmt.Errorf("refusing to write msgpack to a terminal; redirect stdout")
			}
			return diagfmt.FormatTokensMsgpack(w, r.Tokens)
		}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// tokenizeDir токенизирует все файлы каталога; pretty печатает заголовок на файл,
// json и msgpack пишут один документ на файл.
func tokenizeDir(cmd *cobra.Command, s *session, dir, format string, writeTokens func(io.Writer, *driver.TokenizeResult) error) error {
	fileSet, results, err := driver.TokenizeDir(cmd.Context(), dir, s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := false
	for _, r := range results {
		if r.Result == nil {
			fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err) //nolint:errcheck
			failed = true
			continue
		}
		if r.Result.Bag.Len() > 0 {
			diagfmt.Pretty(errOut, r.Result.Bag, fileSet, s.prettyOpts())
		}
		if r.Result.Err != nil {
			failed = true
		}
		if format == "pretty" {
			total, invalid := countKinds(r.Result.Tokens)
			fmt.Fprintf(out, "== %s (%d tokens, %d invalid) ==\n", r.Path, total, invalid) //nolint:errcheck
		}
		if err := writeTokens(out, r.Result); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// countKinds считает токены до EOF и среди них недопустимые.
func countKinds(toks []token.Token) (total, invalid int) {
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		total++
		if tok.Kind == token.Invalid {
			invalid++
		}
	}
	return total, invalid
}
