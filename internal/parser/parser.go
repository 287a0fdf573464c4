package parser

import (
	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/source"
	"obc/internal/token"
	"obc/internal/trace"
)

type Options struct {
	// Reporter получает единственную синтаксическую диагностику; может быть nil.
	Reporter diag.Reporter
	// Tracer получает span на модуль и (на LevelDebug) на каждое объявление.
	Tracer trace.Tracer
	// TraceParent — id span'а вызывающего (0 — корень).
	TraceParent uint64
}

// Error is a syntax error. Parsing stops at the first one.
type Error struct {
	Code    diag.Code
	Message string
	Loc     source.Location
	Span    source.Span
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.Message
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx     *lexer.Lexer // поток токенов
	arenas *ast.Builder // построитель аренных узлов
	opts   Options
	tok    token.Token // текущий токен (lookahead)
	prev   token.Token // последний съеденный токен, для спанов
	err    error       // первая ошибка; после неё парсер только разматывается
	span   *trace.Span // span модуля, родитель для узловых
}

// New primes the lookahead with the first token.
func New(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	p := &Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
	p.tok = lx.Next()
	p.prev = token.Token{Span: lx.EmptySpan()}
	return p
}

// ParseModule — входная точка: разбирает один модуль целиком.
// On failure it returns ast.NoModuleID and either *Error or *lexer.Error.
func ParseModule(lx *lexer.Lexer, arenas *ast.Builder, opts Options) (ast.ModuleID, error) {
	return New(lx, arenas, opts).ParseModule()
}

func (p *Parser) ParseModule() (ast.ModuleID, error) {
	p.span = trace.Begin(p.opts.Tracer, trace.ScopeModule, "parse:"+p.lx.File().Path, p.opts.TraceParent)
	id, ok := p.parseModule()
	if !ok || p.err != nil {
		p.span.End("failed")
		return ast.NoModuleID, p.err
	}
	p.span.WithExtra("decls", itoa(len(p.arenas.Module(id).Decls))).End("ok")
	return id, nil
}

// Err returns the first failure recorded so far.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) failed() bool {
	return p.err != nil
}
