package reduce

import "strings"

// codeFenceStrategy implements both the FenceStart and Code modes: FenceStart
// collects the fence's language line up to the first newline, Code
// accumulates the fenced block's literal content. Backtick runs of exactly
// three are never routed here — the dispatcher intercepts them directly via
// triggerFence, in both modes and every other mode.
type codeFenceStrategy struct{}

func (codeFenceStrategy) process(ctx *parseContext, ch rune) []Diff {
	switch ctx.mode {
	case ModeFenceStart:
		if ch == '\n' {
			lang := strings.TrimSpace(ctx.languageBuffer.String())
			ctx.languageBuffer.Reset()
			ctx.mode = ModeCode
			if lang != "" {
				b := ctx.current()
				b.Lang = lang
				return []Diff{patchDiff(*b)}
			}
			return nil
		}
		ctx.languageBuffer.WriteRune(ch)
		return nil

	default: // ModeCode
		b := ctx.current()
		b.Text += string(ch)
		return []Diff{patchDiff(*b)}
	}
}

// flushBacktick appends n backticks to the code block's text (its content,
// never the language buffer), whether the mode is FenceStart or Code.
func (codeFenceStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	b := ctx.current()
	for i := 0; i < n; i++ {
		b.Text += "`"
	}
	return []Diff{patchDiff(*b)}
}

func (codeFenceStrategy) close(ctx *parseContext) []Diff {
	return nil
}

// triggerFence handles a run of exactly three backticks, in every mode. If a
// code block is already open (Code or FenceStart), the triple closes it.
// Otherwise it opens a new, empty Code block and switches to FenceStart.
func triggerFence(ctx *parseContext) []Diff {
	if ctx.mode == ModeCode || ctx.mode == ModeFenceStart {
		ctx.languageBuffer.Reset()
		ctx.closeCurrent()
		ctx.mode = ModeParagraph
		return nil
	}

	b := ctx.appendBlock(newCodeBlock(0))
	ctx.mode = ModeFenceStart
	ctx.languageBuffer.Reset()
	return []Diff{appendDiff(*b)}
}
