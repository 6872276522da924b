package reduce

// A trigger is evaluated by the Dispatcher in priority order before it
// falls back to the current mode's process. Each trigger may switch the
// mode and either consume the character itself or defer it to the new
// mode's process.

// canStartHeading is true iff ch=='#', mode==Paragraph, and there is no
// current block or it is empty — the "line start" condition.
func canStartHeading(ctx *parseContext, ch rune) bool {
	return ch == '#' && ctx.mode == ModeParagraph && ctx.currentIsEmpty()
}

// enterHeading switches to Heading mode without consuming ch: the '#' is
// deferred back to headingStrategy.process, which does the counting.
func enterHeading(ctx *parseContext) {
	ctx.mode = ModeHeading
	ctx.headingLevel = 0
}

// canStartList is true iff ch=='-', mode==Paragraph, and the line is empty.
func canStartList(ctx *parseContext, ch rune) bool {
	return ch == '-' && ctx.mode == ModeParagraph && ctx.currentIsEmpty()
}

// enterList switches to List mode and consumes the '-' itself.
func enterList(ctx *parseContext) {
	ctx.mode = ModeList
}

// canStartOrderedList is true iff ch is a digit, mode==Paragraph, and the
// line is empty.
func canStartOrderedList(ctx *parseContext, ch rune) bool {
	return ch >= '0' && ch <= '9' && ctx.mode == ModeParagraph && ctx.currentIsEmpty()
}

// enterOrderedList switches to OrderedList mode, consuming ch as the first
// (and so far only) digit of the marker.
func enterOrderedList(ctx *parseContext, ch rune) {
	ctx.mode = ModeOrderedList
	ctx.orderedListNumber = int(ch - '0')
}

// canStartInlineCode is true iff exactly one backtick was pending and the
// current mode is not already one that interprets backticks itself.
func canStartInlineCode(ctx *parseContext, pendingBackticks int) bool {
	return pendingBackticks == 1 &&
		ctx.mode != ModeCode && ctx.mode != ModeFenceStart && ctx.mode != ModeInlineCode
}

// abortUnmaterializedMarker replays an in-progress Heading or OrderedList
// marker as literal paragraph text when a higher-priority trigger
// (InlineCode or fence) is about to switch away from that mode before its
// block was ever materialized. Without this, the '#' run or the ordered
// list's digits would simply vanish instead of surviving as paragraph text,
// the same way they do when an ordinary character interrupts the marker.
func abortUnmaterializedMarker(ctx *parseContext) []Diff {
	switch {
	case ctx.mode == ModeHeading && !(ctx.hasCurrent() && ctx.current().Kind == BlockHeading):
		return abortHeading(ctx, "")
	case ctx.mode == ModeOrderedList && !(ctx.hasCurrent() && ctx.current().Kind == BlockOrderedListItem):
		return abortOrderedList(ctx, "")
	default:
		return nil
	}
}
