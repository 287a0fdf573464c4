package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"obc/internal/diagfmt"
	"obc/internal/driver"
	"obc/internal/observ"
	"obc/internal/prof"
	"obc/internal/project"
	"obc/internal/trace"
)

// session — состояние одной команды: конфиг, опции драйвера, трассировка.
type session struct {
	cfg     project.Config
	opts    driver.Options
	color   bool
	timings bool

	tracer trace.Tracer
	ring   *trace.RingTracer
	span   *trace.Span

	profile *prof.Session
}

// openSession loads obc.toml for target, applies flag overrides and
// starts tracing. The caller must call close.
func openSession(cmd *cobra.Command, target string) (*session, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath, target)
	if err != nil {
		return nil, err
	}

	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		cfg.Diagnostics.Max = maxDiagnostics
	}
	if pf.Changed("nested-comments") {
		nested, err := pf.GetBool("nested-comments")
		if err != nil {
			return nil, fmt.Errorf("failed to get nested-comments flag: %w", err)
		}
		cfg.Lexer.NestedComments = nested
	}

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = cfg.Diagnostics.Color
	}
	useColor, err := colorEnabled(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return nil, err
	}
	color.NoColor = !useColor

	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	s := &session{
		cfg:     cfg,
		opts:    driver.OptionsFromConfig(cfg),
		color:   useColor,
		timings: timings,
	}
	if timings {
		s.opts.Timer = observ.NewTimer()
	}
	if err := s.setupProfiling(cmd); err != nil {
		return nil, err
	}
	if err := s.setupTracing(cmd); err != nil {
		_ = s.profile.Stop()
		return nil, err
	}
	return s, nil
}

// loadConfig: явный --config важнее поиска вверх от входного пути.
func loadConfig(explicit, target string) (project.Config, error) {
	if explicit != "" {
		return project.Load(explicit)
	}
	if target == "" || target == "-" {
		wd, err := os.Getwd()
		if err != nil {
			return project.Default(), nil //nolint:nilerr // без cwd работаем на значениях по умолчанию
		}
		target = wd
	}
	return project.Discover(target)
}

func colorEnabled(mode string, tty bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func (s *session) setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	for _, f := range []struct {
		name string
		dst  *string
	}{{"cpuprofile", &cfg.CPU}, {"memprofile", &cfg.Mem}, {"runtime-trace", &cfg.Runtime}} {
		v, err := pf.GetString(f.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	if !cfg.Enabled() {
		return nil
	}
	p, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	s.profile = p
	return nil
}

// setupTracing inspects trace-related flags and initializes the tracer.
func (s *session) setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	levelStr, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	output, err := pf.GetString("trace-output")
	if err != nil {
		return fmt.Errorf("failed to get trace-output flag: %w", err)
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:    level,
		Mode:     mode,
		Path:     output,
		RingSize: ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	s.ring, _ = tracer.(*trace.RingTracer)

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	s.span = trace.Begin(tracer, trace.ScopeDriver, "obc "+cmd.Name(), 0)
	s.opts.Tracer = tracer
	s.opts.TraceParent = s.span.ID()
	return nil
}

// close ends the command span, prints timings and flushes the tracer.
// A ring tracer is dumped only when the command failed.
func (s *session) close(cmd *cobra.Command, failed bool) {
	if s == nil {
		return
	}
	errOut := cmd.ErrOrStderr()
	s.span.End("")
	if s.timings && s.opts.Timer != nil {
		fmt.Fprint(errOut, s.opts.Timer.Summary()) //nolint:errcheck
	}
	if s.ring != nil && failed {
		if err := s.ring.Dump(errOut, trace.FormatText); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err) //nolint:errcheck
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err) //nolint:errcheck
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err) //nolint:errcheck
	}
	if err := s.profile.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err) //nolint:errcheck
	}
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	}
}
