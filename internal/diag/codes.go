package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexInvalidUTF8        Code = 1001
	LexBadEscape          Code = 1002
	LexUnterminatedString Code = 1003
	LexTokenTooLong       Code = 1005

	// Парсерные
	SynInfo            Code = 2000
	SynUnbalancedClose Code = 2001
	SynUnclosedList    Code = 2002
	SynDanglingQuote   Code = 2003
	SynUnknownSpecial  Code = 2004
	SynBadNumber       Code = 2005
	SynNestingTooDeep  Code = 2006
	SynListTooLong     Code = 2007

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001

	// Форматирование
	FmtInfo        Code = 6000
	FmtUnformatted Code = 6001
	FmtRoundTrip   Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexInvalidUTF8:        "Invalid UTF-8",
	LexBadEscape:          "Invalid escape sequence",
	LexUnterminatedString: "Unterminated string",
	LexTokenTooLong:       "Token too long",
	SynInfo:               "Syntax information",
	SynUnbalancedClose:    "Unbalanced closing parenthesis",
	SynUnclosedList:       "Unclosed list",
	SynDanglingQuote:      "Quote without a value",
	SynUnknownSpecial:     "Unknown special identifier",
	SynBadNumber:          "Invalid number",
	SynNestingTooDeep:     "Nesting too deep",
	SynListTooLong:        "List too long",
	IOLoadFileError:       "I/O load file error",
	IOWriteFileError:      "I/O write file error",
	ProjInfo:              "Project information",
	ProjInvalidManifest:   "Invalid datum.toml",
	FmtInfo:               "Formatting information",
	FmtUnformatted:        "File is not formatted",
	FmtRoundTrip:          "Formatting changes meaning",
}

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
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("FMT%04d", ic)
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
