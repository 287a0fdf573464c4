package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexTokenTooLong        Code = 1005

	// Парсерные
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectSemicolon  Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynExpectStatement  Code = 2006
	SynUnknownOperator  Code = 2007
	SynNameMismatch     Code = 2008
	SynExpectEnd        Code = 2009
	SynExpectDot        Code = 2010

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// project configuration
	ProjInvalidConfig Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexUnterminatedString:  "Unterminated string literal",
		LexUnterminatedComment: "Unterminated comment",
		LexBadNumber:           "Malformed number literal",
		LexTokenTooLong:        "Token too long",
		SynUnexpectedToken:     "Unexpected token",
		SynExpectIdentifier:    "Expected identifier",
		SynExpectSemicolon:     "Expected ';'",
		SynExpectType:          "Expected type",
		SynExpectExpression:    "Expected expression",
		SynExpectStatement:     "Expected statement",
		SynUnknownOperator:     "Unknown operator or relation",
		SynNameMismatch:        "Closing name does not match declaration",
		SynExpectEnd:           "Expected END",
		SynExpectDot:           "Expected '.' after module",
		IOLoadFileError:        "I/O load file error",
		IOCacheError:           "Parse cache error",
		ProjInvalidConfig:      "Invalid obc.toml",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
