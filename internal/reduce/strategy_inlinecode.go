package reduce

// inlineCodeStrategy implements the InlineCode mode. The block is created by
// the dispatcher (triggerInlineCode) before process ever runs; process only
// ever sees the mode after that Append has already happened.
type inlineCodeStrategy struct{}

func (inlineCodeStrategy) process(ctx *parseContext, ch rune) []Diff {
	if ch == '\n' {
		ctx.closeCurrent()
		ctx.mode = ModeParagraph
		return nil
	}
	b := ctx.current()
	b.Text += string(ch)
	return []Diff{patchDiff(*b)}
}

func (inlineCodeStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	if n == 1 {
		// The terminating backtick: the last Patch already reflects the
		// final content, so closing needs no diff of its own.
		ctx.closeCurrent()
		ctx.mode = ModeParagraph
		return nil
	}
	b := ctx.current()
	for i := 0; i < n; i++ {
		b.Text += "`"
	}
	return []Diff{patchDiff(*b)}
}

// close runs when the stream ends with an InlineCode block still open: there
// is no terminating backtick coming, so the block is demoted to plain
// paragraph text rather than left as code. The leading delimiter backtick,
// which triggerInlineCode consumed rather than stored, is restored so no
// content is lost.
func (inlineCodeStrategy) close(ctx *parseContext) []Diff {
	if !ctx.hasCurrent() {
		ctx.mode = ModeParagraph
		return nil
	}
	b := ctx.current()
	b.Kind = BlockParagraph
	b.Text = "`" + b.Text
	ctx.mode = ModeParagraph
	return []Diff{patchDiff(*b)}
}

// triggerInlineCode materializes the InlineCode block entered when a lone
// backtick is immediately followed by a non-backtick character. The
// dispatcher defers that character to process after calling this.
func triggerInlineCode(ctx *parseContext) []Diff {
	b := ctx.appendBlock(newInlineCodeBlock(0))
	ctx.mode = ModeInlineCode
	return []Diff{appendDiff(*b)}
}
