package diag

import (
	"fmt"
	"strconv"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004

	// Синтаксические
	SynInfo        Code = 2000
	SynParseError  Code = 2001
	SynMissingNode Code = 2002

	// Стилевые
	StyInfo                 Code = 3000
	StyModifierOrder        Code = 3001
	StyAccessibilityPair    Code = 3002
	StyMissingAccessibility Code = 3003
	StyMemberOrder          Code = 3004

	IOLoadFileError Code = 4001

	CfgInfo Code = 5000

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	SynInfo:                     "Syntax information",
	SynParseError:               "Syntax error",
	SynMissingNode:              "Missing syntax element",
	StyInfo:                     "Style information",
	StyModifierOrder:            "Modifiers are not in canonical order",
	StyAccessibilityPair:        "Accessibility modifiers are not in canonical order",
	StyMissingAccessibility:     "Accessibility modifier is missing",
	StyMemberOrder:              "Members are not sorted",
	IOLoadFileError:             "I/O load file error",
	CfgInfo:                     "Configuration information",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

var codePrefixes = []struct {
	prefix   string
	from, to int
}{
	{"LEX", 1000, 2000},
	{"SYN", 2000, 3000},
	{"STY", 3000, 4000},
	{"IO", 4000, 5000},
	{"CFG", 5000, 6000},
	{"OBS", 6000, 7000},
}

func (c Code) ID() string {
	ic := int(c)
	for _, p := range codePrefixes {
		if ic >= p.from && ic < p.to {
			return fmt.Sprintf("%s%04d", p.prefix, ic)
		}
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

// ParseCode converts an identifier such as "STY3004" back to a known Code.
func ParseCode(id string) (Code, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, p := range codePrefixes {
		rest, ok := strings.CutPrefix(id, p.prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < p.from || n >= p.to {
			return UnknownCode, false
		}
		c := Code(n) // #nosec G115 -- bounded by the prefix range
		if _, known := codeDescription[c]; !known {
			return UnknownCode, false
		}
		return c, true
	}
	return UnknownCode, false
}
