package driver

import (
	"fortio.org/safecast"

	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/observ"
	"obc/internal/project"
	"obc/internal/trace"
)

const defaultMaxDiagnostics = 100

// Options — всё, что нужно драйверу помимо путей. Нулевое значение пригодно.
type Options struct {
	MaxDiagnostics int
	NestedComments bool
	MaxTokenLen    uint32
	Jobs           int      // 0 = GOMAXPROCS
	Extensions     []string // nil = project.DefaultExtensions

	Tracer      trace.Tracer
	TraceParent uint64
	Timer       *observ.Timer
	Progress    ProgressSink
	Cache       *DiskCache
}

// OptionsFromConfig maps obc.toml sections onto driver options.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		NestedComments: cfg.Lexer.NestedComments,
		MaxTokenLen:    cfg.Lexer.MaxTokenLen,
		Jobs:           cfg.Parse.Jobs,
		Extensions:     append([]string(nil), cfg.Parse.Extensions...),
	}
}

func (o Options) lexerOptions(r diag.Reporter) lexer.Options {
	return lexer.Options{
		Reporter:       r,
		NestedComments: o.NestedComments,
		MaxTokenLen:    o.MaxTokenLen,
	}
}

// newBag clamps MaxDiagnostics into the Bag's uint16 capacity.
func (o Options) newBag() *diag.Bag {
	n := o.MaxDiagnostics
	if n <= 0 {
		n = defaultMaxDiagnostics
	}
	if _, err := safecast.Conv[uint16](n); err != nil {
		n = 1<<16 - 1
	}
	return diag.NewBag(n)
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

func (o Options) config() project.Config {
	cfg := project.Default()
	if o.Extensions != nil {
		cfg.Parse.Extensions = o.Extensions
	}
	return cfg
}
