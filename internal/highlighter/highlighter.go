// internal/highlighter/highlighter.go
package highlighter

import (
	"context"
	"sort"
	"strings"

	"github.com/gitlapse/gitlapse/internal/highlighter/lang"
	"github.com/gitlapse/gitlapse/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// TokenKind classifies a span for display-color selection.
type TokenKind int

const (
	TokenKeyword TokenKind = iota
	TokenType
	TokenFunction
	TokenVariable
	TokenString
	TokenNumber
	TokenComment
	TokenOperator
	TokenPunctuation
	TokenConstant
	TokenParameter
	TokenProperty
	TokenLabel
)

// StyleName maps the token kind to the theme style key.
func (k TokenKind) StyleName() string {
	switch k {
	case TokenKeyword:
		return "keyword"
	case TokenType:
		return "type"
	case TokenFunction:
		return "function"
	case TokenVariable:
		return "variable"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenComment:
		return "comment"
	case TokenOperator:
		return "operator"
	case TokenPunctuation:
		return "punctuation"
	case TokenConstant:
		return "constant"
	case TokenParameter:
		return "parameter"
	case TokenProperty:
		return "property"
	case TokenLabel:
		return "label"
	}
	return "Default"
}

// Span is a half-open byte range [Start, End) over a text snapshot,
// classified with a lexical category.
type Span struct {
	Start int
	End   int
	Kind  TokenKind
}

// Highlighter tokenizes full file snapshots. It holds one parser and the
// active language; callers own exactly one instance per replay session.
type Highlighter struct {
	parser   *sitter.Parser
	language *sitter.Language
	query    *sitter.Query
}

// New creates a highlighter with no language selected.
func New() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser: sitter.NewParser(),
	}
}

// SetLanguage selects the grammar for a file path by extension. Returns false
// (and clears highlighting) when the file type is unsupported or its query
// fails to compile.
func (h *Highlighter) SetLanguage(path string) bool {
	if h.query != nil {
		h.query.Close()
		h.query = nil
	}
	h.language = nil

	l := lang.GetForFile(path)
	if l == nil {
		logger.Debugf("No language registered for '%s'", path)
		return false
	}

	queryBytes := l.GetQuery()
	if queryBytes == nil {
		return false
	}

	query, err := sitter.NewQuery(queryBytes, l.TreeSitterLang)
	if err != nil {
		logger.Warnf("Failed to compile highlight query for %s: %v", l.Name, err)
		return false
	}

	h.language = l.TreeSitterLang
	h.query = query
	h.parser.SetLanguage(l.TreeSitterLang)
	logger.Debugf("Language set to %s for '%s'", l.Name, path)
	return true
}

// Highlight tokenizes a full content snapshot into byte-range spans sorted by
// start offset. No selected language, or any parse failure, yields an empty
// span set rather than an error.
func (h *Highlighter) Highlight(text string) []Span {
	if h.query == nil || h.language == nil {
		return nil
	}

	source := []byte(text)
	tree, err := h.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		logger.Warnf("Tree-sitter parse failed: %v", err)
		return nil
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	var spans []Span
	for {
		match, exists := qc.NextMatch()
		if !exists {
			break
		}
		for _, capture := range match.Captures {
			name := h.query.CaptureNameForId(capture.Index)
			kind, ok := captureKind(name)
			if !ok {
				continue
			}
			spans = append(spans, Span{
				Start: int(capture.Node.StartByte()),
				End:   int(capture.Node.EndByte()),
				Kind:  kind,
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// captureKind maps a tree-sitter capture name to a token kind. Dotted names
// like "keyword.function" match on their base segment.
func captureKind(name string) (TokenKind, bool) {
	base := name
	if dot := strings.Index(name, "."); dot != -1 {
		base = name[:dot]
	}

	switch base {
	case "keyword", "annotation", "attribute", "decorator",
		"conditional", "repeat", "exception", "include", "storageclass":
		return TokenKeyword, true
	case "type", "namespace", "module", "constructor", "tag",
		"enum", "struct", "class", "interface", "trait":
		return TokenType, true
	case "function", "method", "macro":
		return TokenFunction, true
	case "variable", "identifier":
		return TokenVariable, true
	case "string", "character", "regexp":
		return TokenString, true
	case "number", "float":
		return TokenNumber, true
	case "comment":
		return TokenComment, true
	case "operator", "escape", "special":
		return TokenOperator, true
	case "punctuation", "delimiter":
		return TokenPunctuation, true
	case "constant", "boolean", "none":
		return TokenConstant, true
	case "parameter":
		return TokenParameter, true
	case "property", "field":
		return TokenProperty, true
	case "label":
		return TokenLabel, true
	}
	return 0, false
}
