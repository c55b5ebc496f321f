package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedTemplate     Code = 1006
	LexUnterminatedRegExp       Code = 1007
	LexBadEscape                Code = 1008
	LexIdentNotNormalized       Code = 1009

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnclosedParen         Code = 2002
	SynUnclosedBrace         Code = 2003
	SynUnclosedBracket       Code = 2004
	SynExpectSemicolon       Code = 2005
	SynExpectIdentifier      Code = 2006
	SynExpectExpression      Code = 2007
	SynExpectColon           Code = 2008
	SynInvalidAssignTarget   Code = 2009
	SynMixedCoalesce         Code = 2010
	SynFeatureNotInLanguage  Code = 2011
	SynUnsupportedSyntax     Code = 2012
	SynRestNotLast           Code = 2013
	SynIllegalNewline        Code = 2014
	SynEmptyInterpolation    Code = 2015
	SynForBadHeader          Code = 2016
	SynDuplicateConstructor  Code = 2017
	SynConstWithoutInit      Code = 2018
	SynIllegalBreak          Code = 2019
	SynReturnOutsideFunction Code = 2020
	SynTooManyErrors         Code = 2099

	IOLoadFileError Code = 4001

	// Процессор клиентских библиотек
	PrcInfo             Code = 5000
	PrcFeatureAboveOut  Code = 5001
	PrcInvalidOption    Code = 5002
	PrcOutputSuppressed Code = 5003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegExp:       "Unterminated regular expression",
		LexBadEscape:                "Invalid escape sequence",
		LexIdentNotNormalized:       "Identifier is not in NFC form",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectSemicolon:          "Missing semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectColon:              "Expected colon",
		SynInvalidAssignTarget:      "Invalid assignment target",
		SynMixedCoalesce:            "Cannot mix ?? with || or && without parentheses",
		SynFeatureNotInLanguage:     "Feature not available at this language level",
		SynUnsupportedSyntax:        "Unsupported syntax",
		SynRestNotLast:              "Rest element must be last",
		SynIllegalNewline:           "Illegal line terminator",
		SynEmptyInterpolation:       "Empty template interpolation",
		SynForBadHeader:             "Malformed for statement header",
		SynDuplicateConstructor:     "Duplicate constructor",
		SynConstWithoutInit:         "Missing initializer in const declaration",
		SynIllegalBreak:             "Illegal break or continue",
		SynReturnOutsideFunction:    "Return outside of function",
		SynTooManyErrors:            "Too many errors",
		IOLoadFileError:             "I/O load file error",
		PrcInfo:                     "Processor information",
		PrcFeatureAboveOut:          "Feature is newer than the output language",
		PrcInvalidOption:            "Invalid processor option",
		PrcOutputSuppressed:         "Output suppressed because of errors",
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
		return fmt.Sprintf("PRC%04d", ic)
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
