package lexer

import (
	"obc/internal/diag"
)

type Options struct {
	// Reporter может быть nil — тогда ошибки только запоминаются в Err (лексинг продолжается).
	Reporter diag.Reporter
	// NestedComments makes "(*" inside a comment open a nested level.
	// Off by default: the first "*)" closes the comment.
	NestedComments bool
	// MaxTokenLen bounds the byte length of a single lexeme; 0 means unlimited.
	MaxTokenLen uint32
}
