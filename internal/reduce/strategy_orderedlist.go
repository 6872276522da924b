package reduce

import "strconv"

// orderedListStrategy implements the OrderedList mode. ordered_list_number
// encodes the marker being collected: non-negative while digits are still
// arriving, negative once '.' has been seen and a space is awaited.
type orderedListStrategy struct{}

func (orderedListStrategy) process(ctx *parseContext, ch rune) []Diff {
	if ctx.hasCurrent() && ctx.current().Kind == BlockOrderedListItem {
		b := ctx.current()
		if ch == '\n' {
			ctx.closeCurrent()
			ctx.mode = ModeParagraph
			return nil
		}
		b.Text += string(ch)
		return []Diff{patchDiff(*b)}
	}

	switch {
	case ch >= '0' && ch <= '9' && ctx.orderedListNumber >= 0:
		ctx.orderedListNumber = ctx.orderedListNumber*10 + int(ch-'0')
		return nil
	case ch == '.' && ctx.orderedListNumber >= 0:
		ctx.orderedListNumber = -ctx.orderedListNumber - 1 // flip sign, keep 0 distinguishable
		return nil
	case ch == ' ' && ctx.orderedListNumber < 0:
		number := -ctx.orderedListNumber - 1
		if number == 0 {
			return abortOrderedList(ctx, " ") // list numbers start at 1
		}
		ctx.orderedListNumber = 0
		b := ctx.appendBlock(newOrderedListItemBlock(0, number))
		return []Diff{appendDiff(*b)}
	case ch == '\n':
		return abortOrderedList(ctx, "")
	default:
		return abortOrderedList(ctx, string(ch))
	}
}

// abortOrderedList demotes an in-progress, not-yet-materialized ordered
// list marker back to literal paragraph text: the accumulated digits (and
// separator, if any) plus the offending trailing text are replayed as
// paragraph content.
func abortOrderedList(ctx *parseContext, trailing string) []Diff {
	digits, hasDot := decodeOrderedListNumber(ctx.orderedListNumber)
	ctx.orderedListNumber = 0
	ctx.mode = ModeParagraph

	text := digits
	if hasDot {
		text += "."
	}
	text += trailing

	var diffs []Diff
	p := paragraphStrategy{}
	for _, c := range text {
		diffs = append(diffs, p.process(ctx, c)...)
	}
	return diffs
}

func decodeOrderedListNumber(n int) (digits string, hasDot bool) {
	if n < 0 {
		return strconv.Itoa(-n - 1), true
	}
	return strconv.Itoa(n), false
}

func (s orderedListStrategy) flushBacktick(ctx *parseContext, n int) []Diff {
	if ctx.hasCurrent() && ctx.current().Kind == BlockOrderedListItem {
		var diffs []Diff
		for i := 0; i < n; i++ {
			diffs = append(diffs, s.process(ctx, '`')...)
		}
		return diffs
	}
	run := make([]byte, n)
	for i := range run {
		run[i] = '`'
	}
	return abortOrderedList(ctx, string(run))
}

func (orderedListStrategy) close(ctx *parseContext) []Diff {
	return nil
}
