// Package view renders a Reducer's diff stream to a terminal, the way the
// teacher's internal/ui/streaming package renders buffered Markdown lines
// through glamour: settled blocks are printed once and never touched again,
// while the one block still being built is redrawn in place as it grows, so
// a user watching a live stream sees it update instead of waiting for it to
// close.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/oss-mdreduce/mdreduce/internal/config"
	"github.com/oss-mdreduce/mdreduce/internal/highlight"
	"github.com/oss-mdreduce/mdreduce/internal/inline"
	"github.com/oss-mdreduce/mdreduce/internal/reduce"
)

// View subscribes to a Reducer and prints its blocks to an io.Writer as
// they settle. It is not safe for concurrent use — like the Reducer it
// watches, it expects to be driven from a single goroutine.
type View struct {
	out   io.Writer
	cfg   config.Config
	width int

	styles styleSet
	// glamour is used for the one-time final render of a settled block —
	// full word wrap, margins and code highlighting. It is nil if glamour
	// failed to initialize, in which case renderBlock's lightweight
	// lipgloss styling also serves as the final render.
	glamour *glamour.TermRenderer

	// current is the block still being built (the one the next Patch will
	// target), or nil if nothing is in progress.
	current *reduce.Block
	// drawnLines is how many terminal lines the last partial redraw of
	// current occupies, for ClearLines to erase before redrawing.
	drawnLines int
}

type styleSet struct {
	heading lipgloss.Style
	code    lipgloss.Style
	list    lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	strike  lipgloss.Style
	inlineC lipgloss.Style
}

// New returns a View that writes rendered blocks to out.
func New(out io.Writer, cfg config.Config, termWidth int) *View {
	gr, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(termWidth),
	)
	return &View{
		out:     out,
		cfg:     cfg,
		width:   termWidth,
		glamour: gr,
		styles: styleSet{
			heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Theme.Heading)),
			code:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Code)),
			list:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.List)),
			muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Muted)),
			bold:    lipgloss.NewStyle().Bold(true),
			italic:  lipgloss.NewStyle().Italic(true),
			strike:  lipgloss.NewStyle().Strikethrough(true),
			inlineC: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Code)),
		},
	}
}

// Attach subscribes the view to r and returns a function that detaches it.
func (v *View) Attach(r *reduce.Reducer) (detach func()) {
	return r.Subscribe(v.apply)
}

func (v *View) apply(diffs []reduce.Diff) {
	for _, d := range diffs {
		switch d.Kind {
		case reduce.DiffAppend:
			v.settlePrevious()
			b := d.Block
			v.current = &b
			v.redrawCurrent()
		case reduce.DiffPatch:
			if v.current == nil || d.ID != v.current.ID {
				// A patch for a block other than the tracked current one
				// only happens for Close-time repairs on an already-settled
				// block; print it as its own final update.
				fmt.Fprint(v.out, v.finalRender(d.Block))
				continue
			}
			b := d.Block
			v.current = &b
			v.redrawCurrent()
		}
	}
}

// Flush finalizes whatever block is still in progress. Call it after
// Reducer.Close so the last block is printed as settled rather than left
// mid-redraw.
func (v *View) Flush() {
	v.settlePrevious()
}

// settlePrevious stops tracking the in-progress block and prints its final
// render: with partial rendering on, that replaces the last lightweight
// lipgloss redraw with glamour's full-fidelity render of the same content;
// with partial rendering off, this is the block's one and only render.
func (v *View) settlePrevious() {
	if v.current == nil {
		return
	}
	if v.cfg.Render.Partial {
		v.clearLines(v.drawnLines)
	}
	fmt.Fprint(v.out, v.finalRender(*v.current))
	v.current = nil
	v.drawnLines = 0
}

// finalRender renders a settled block through glamour when available,
// falling back to the same lightweight styling the live redraw uses.
func (v *View) finalRender(b reduce.Block) string {
	if v.glamour != nil {
		if out, err := v.glamour.Render(v.reconstructMarkdown(b)); err == nil {
			return out
		}
	}
	return v.renderBlock(b)
}

// reconstructMarkdown rebuilds the minimal Markdown source glamour needs to
// reproduce a block's final appearance; it does not need to round-trip
// byte-for-byte, only to preserve the block's structural meaning.
func (v *View) reconstructMarkdown(b reduce.Block) string {
	switch b.Kind {
	case reduce.BlockHeading:
		return strings.Repeat("#", b.Level) + " " + b.Text + "\n"
	case reduce.BlockCode:
		return "```" + b.Lang + "\n" + b.Text + "```\n"
	case reduce.BlockInlineCode:
		return "`" + b.Text + "`\n"
	case reduce.BlockListItem:
		return "- " + b.Text + "\n"
	case reduce.BlockOrderedListItem:
		return fmt.Sprintf("%d. %s\n", b.Number, b.Text)
	default: // BlockParagraph
		return b.Text + "\n"
	}
}

// redrawCurrent erases the previous partial render of the in-progress block
// and draws the new one in its place. A no-op when partial rendering is
// disabled — the block is rendered once, in settlePrevious, when it closes.
func (v *View) redrawCurrent() {
	if !v.cfg.Render.Partial {
		return
	}
	rendered := v.renderBlock(*v.current)
	v.clearLines(v.drawnLines)
	fmt.Fprint(v.out, rendered)
	v.drawnLines = v.countLines(rendered)
}

func (v *View) clearLines(n int) {
	if n <= 0 {
		return
	}
	seq := ansi.CursorUp(n) + ansi.CursorHorizontalAbsolute(1) + ansi.EraseDisplay(0)
	fmt.Fprint(v.out, seq)
}

func (v *View) countLines(rendered string) int {
	if rendered == "" {
		return 0
	}
	lines := strings.Split(rendered, "\n")
	total := 0
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			continue
		}
		w := ansi.StringWidth(line)
		switch {
		case w == 0:
			total++
		case v.width > 0:
			total += (w + v.width - 1) / v.width
		default:
			total++
		}
	}
	return total
}

// renderBlock styles one block according to its kind and returns it with a
// trailing newline, ready to write to the terminal.
func (v *View) renderBlock(b reduce.Block) string {
	switch b.Kind {
	case reduce.BlockHeading:
		prefix := strings.Repeat("#", b.Level)
		return v.styles.heading.Render(prefix+" "+b.Text) + "\n"
	case reduce.BlockCode:
		body := b.Text
		if highlighted, err := highlight.Highlight(body, b.Lang, v.cfg.Highlight.Style); err == nil {
			body = highlighted
		}
		fence := v.styles.muted.Render("```" + b.Lang)
		return fence + "\n" + body + v.styles.muted.Render("```") + "\n"
	case reduce.BlockInlineCode:
		return v.styles.inlineC.Render("`"+b.Text+"`") + "\n"
	case reduce.BlockListItem:
		return v.styles.list.Render("-") + " " + v.renderInline(b.Text) + "\n"
	case reduce.BlockOrderedListItem:
		return v.styles.list.Render(fmt.Sprintf("%d.", b.Number)) + " " + v.renderInline(b.Text) + "\n"
	default: // BlockParagraph
		return v.renderInline(b.Text) + "\n"
	}
}

// renderInline applies inline span styling (bold, italic, strikethrough,
// inline code, links) within a paragraph or list item's text.
func (v *View) renderInline(text string) string {
	spans := inline.Render(text)
	if len(spans) == 0 {
		return text
	}
	var sb strings.Builder
	for _, sp := range spans {
		switch sp.Kind {
		case inline.SpanBold:
			sb.WriteString(v.styles.bold.Render(sp.Text))
		case inline.SpanItalic:
			sb.WriteString(v.styles.italic.Render(sp.Text))
		case inline.SpanStrike:
			sb.WriteString(v.styles.strike.Render(sp.Text))
		case inline.SpanCode:
			sb.WriteString(v.styles.inlineC.Render("`" + sp.Text + "`"))
		case inline.SpanLink:
			sb.WriteString(v.styles.bold.Render(sp.Text) + v.styles.muted.Render(" ("+sp.URL+")"))
		default:
			sb.WriteString(sp.Text)
		}
	}
	return sb.String()
}
