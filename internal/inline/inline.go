// Package inline renders the inline markup inside one settled block's text
// (bold, italic, strikethrough, inline code, links) into a flat list of
// typed spans a view can style independently, using goldmark's inline
// parser the same way the teacher uses goldmark to convert Markdown
// elsewhere in the codebase.
package inline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// SpanKind discriminates the tagged variants of Span.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanStrike
	SpanCode
	SpanLink
)

func (k SpanKind) String() string {
	switch k {
	case SpanPlain:
		return "plain"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanStrike:
		return "strike"
	case SpanCode:
		return "code"
	case SpanLink:
		return "link"
	default:
		return "unknown"
	}
}

// Span is one run of inline-formatted text.
type Span struct {
	Kind SpanKind
	Text string

	// URL is set for SpanLink.
	URL string
}

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Render parses s as a single inline run and returns its spans in order.
// Block-level markup (headings, fences, lists) has no meaning here — s is
// expected to be the already-settled Text of a Paragraph, ListItem, or
// OrderedListItem block.
func Render(s string) []Span {
	src := []byte(s)
	doc := md.Parser().Parse(text.NewReader(src))

	var spans []Span
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindDocument, ast.KindParagraph, ast.KindTextBlock:
			return ast.WalkContinue, nil
		case ast.KindText:
			t := n.(*ast.Text)
			if seg := t.Segment.Value(src); len(seg) > 0 {
				spans = append(spans, Span{Kind: SpanPlain, Text: string(seg)})
			}
			return ast.WalkSkipChildren, nil
		case ast.KindEmphasis:
			e := n.(*ast.Emphasis)
			kind := SpanItalic
			if e.Level >= 2 {
				kind = SpanBold
			}
			spans = append(spans, Span{Kind: kind, Text: plainText(n, src)})
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan:
			spans = append(spans, Span{Kind: SpanCode, Text: plainText(n, src)})
			return ast.WalkSkipChildren, nil
		case extast.KindStrikethrough:
			spans = append(spans, Span{Kind: SpanStrike, Text: plainText(n, src)})
			return ast.WalkSkipChildren, nil
		case ast.KindLink:
			l := n.(*ast.Link)
			spans = append(spans, Span{Kind: SpanLink, Text: plainText(n, src), URL: string(l.Destination)})
			return ast.WalkSkipChildren, nil
		case ast.KindAutoLink:
			l := n.(*ast.AutoLink)
			url := string(l.URL(src))
			spans = append(spans, Span{Kind: SpanLink, Text: url, URL: url})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return spans
}

// plainText concatenates every ast.Text leaf under n, discarding nested
// formatting — used for span kinds whose inner markup we flatten (bold text
// containing a link still just reads as bold here).
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
