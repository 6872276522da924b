package reduce

// paragraphStrategy implements the Paragraph mode: accumulate literal text
// until a newline closes the block.
type paragraphStrategy struct{}

func (paragraphStrategy) process(ctx *parseContext, ch rune) []Diff {
	if ch == '\n' {
		ctx.closeCurrent()
		return nil
	}

	if !ctx.hasCurrent() {
		b := ctx.appendBlock(newParagraphBlock(0))
		diffs := []Diff{appendDiff(*b)}
		b.Text += string(ch)
		diffs = append(diffs, patchDiff(*b))
		return diffs
	}

	b := ctx.current()
	b.Text += string(ch)
	return []Diff{patchDiff(*b)}
}

func (s paragraphStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	var diffs []Diff
	for i := 0; i < n; i++ {
		diffs = append(diffs, s.process(ctx, '`')...)
	}
	return diffs
}

func (paragraphStrategy) close(ctx *parseContext) []Diff {
	return nil
}
