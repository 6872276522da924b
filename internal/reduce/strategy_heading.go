package reduce

// headingStrategy implements the Heading mode. On entry heading_level is 0
// and the triggering '#' is deferred back to process, which is where all
// '#' counting happens.
type headingStrategy struct{}

func (headingStrategy) process(ctx *parseContext, ch rune) []Diff {
	if ctx.hasCurrent() && ctx.current().Kind == BlockHeading {
		b := ctx.current()
		if ch == '\n' {
			ctx.closeCurrent()
			ctx.mode = ModeParagraph
			return nil
		}
		b.Text += string(ch)
		return []Diff{patchDiff(*b)}
	}

	// Block not yet materialized: heading_level counts '#' seen so far.
	switch {
	case ch == '#':
		ctx.headingLevel++
		if ctx.headingLevel > 6 {
			return abortHeading(ctx, "")
		}
		return nil
	case ch == ' ':
		level := ctx.headingLevel
		ctx.headingLevel = 0
		b := ctx.appendBlock(newHeadingBlock(0, level))
		return []Diff{appendDiff(*b)}
	default:
		return abortHeading(ctx, string(ch))
	}
}

// abortHeading demotes an in-progress, not-yet-materialized heading back to
// a literal paragraph: the accumulated '#' run, plus trailing (optional
// trailing for the over-length case), is replayed as paragraph text.
func abortHeading(ctx *parseContext, trailing string) []Diff {
	run := make([]byte, ctx.headingLevel)
	for i := range run {
		run[i] = '#'
	}
	ctx.headingLevel = 0
	ctx.mode = ModeParagraph

	var diffs []Diff
	p := paragraphStrategy{}
	for _, c := range string(run) + trailing {
		diffs = append(diffs, p.process(ctx, c)...)
	}
	return diffs
}

func (headingStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	if ctx.hasCurrent() && ctx.current().Kind == BlockHeading {
		var diffs []Diff
		h := headingStrategy{}
		for i := 0; i < n; i++ {
			diffs = append(diffs, h.process(ctx, '`')...)
		}
		return diffs
	}
	// Not yet materialized: backticks are characters like any other and
	// abort the heading exactly like any non-'#' non-space character would.
	run := make([]byte, n)
	for i := range run {
		run[i] = '`'
	}
	return abortHeading(ctx, string(run))
}

func (headingStrategy) close(ctx *parseContext) []Diff {
	return nil
}
