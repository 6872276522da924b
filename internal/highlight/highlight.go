// Package highlight applies chroma syntax highlighting to a settled code
// block's text, the way the teacher's own diff viewer highlights source
// lines, adapted into a single pure function over a whole fenced block
// instead of a line-at-a-time diff highlighter.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight tokenizes code under the lexer named by lang (falling back to
// plain-text detection when lang is empty or unrecognized) and renders it
// to an ANSI-colored string using the named chroma style. An unrecognized
// style falls back to chroma's default.
func Highlight(code, lang, style string) (string, error) {
	lexer := lexerFor(lang, code)
	lexer = chroma.Coalesce(lexer)

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	formatter := formatters.TTY256
	if formatter == nil {
		formatter = formatters.NoOp
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("mdreduce: tokenize code block: %w", err)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, s, iterator); err != nil {
		return "", fmt.Errorf("mdreduce: format code block: %w", err)
	}
	return buf.String(), nil
}

func lexerFor(lang, code string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}
