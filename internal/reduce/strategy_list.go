package reduce

// listStrategy implements the List mode (unordered list items, leading '-'
// consumed by the trigger before this strategy ever sees a character).
type listStrategy struct{}

func (listStrategy) process(ctx *parseContext, ch rune) []Diff {
	if ch == '\n' {
		ctx.closeCurrent()
		ctx.mode = ModeParagraph
		return nil
	}

	if !ctx.hasCurrent() {
		if ch == ' ' {
			b := ctx.appendBlock(newListItemBlock(0))
			return []Diff{appendDiff(*b)}
		}
		b := ctx.appendBlock(newListItemBlock(0))
		diffs := []Diff{appendDiff(*b)}
		b.Text += string(ch)
		diffs = append(diffs, patchDiff(*b))
		return diffs
	}

	b := ctx.current()
	b.Text += string(ch)
	return []Diff{patchDiff(*b)}
}

func (s listStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	var diffs []Diff
	for i := 0; i < n; i++ {
		diffs = append(diffs, s.process(ctx, '`')...)
	}
	return diffs
}

func (listStrategy) close(ctx *parseContext) []Diff {
	return nil
}
