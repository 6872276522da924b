package reduce

import "strings"

// Mode is the active parse mode of a Reducer. It selects which mode
// strategy the Dispatcher delegates to.
type Mode int

const (
	ModeParagraph Mode = iota
	ModeHeading
	ModeFenceStart
	ModeCode
	ModeInlineCode
	ModeList
	ModeOrderedList
)

func (m Mode) String() string {
	switch m {
	case ModeParagraph:
		return "paragraph"
	case ModeHeading:
		return "heading"
	case ModeFenceStart:
		return "fence_start"
	case ModeCode:
		return "code"
	case ModeInlineCode:
		return "inline_code"
	case ModeList:
		return "list"
	case ModeOrderedList:
		return "ordered_list"
	default:
		return "unknown"
	}
}

// parseContext holds all mutable parse state for one Reducer instance. It
// is passed by pointer to whichever mode strategy is currently active; there
// is exactly one owner (the Reducer's Dispatcher) and no concurrent access,
// so no interior mutability is needed.
type parseContext struct {
	blocks []Block

	// currentIdx indexes into blocks, or -1 if there is no block currently
	// being built. An index is used instead of a pointer so that blocks can
	// grow (and reallocate its backing array) without invalidating the
	// reference to the in-progress block.
	currentIdx int

	nextBlockID int

	mode Mode

	// pendingBackticks counts consecutive '`' seen but not yet committed.
	// Always in 0..3; a push to 3 triggers immediately and resets to 0.
	pendingBackticks int

	// languageBuffer accumulates the fence language line while mode ==
	// ModeFenceStart.
	languageBuffer strings.Builder

	// headingLevel counts '#' seen while building a heading whose block has
	// not yet been materialized. It is 0 once the heading block exists, and
	// for the remainder of the stream whenever mode != ModeHeading.
	headingLevel int

	// orderedListNumber encodes the digits-so-far n of an ordered list
	// marker: n itself (non-negative, so 0 for a leading "0") while still
	// collecting digits, -n-1 once '.' has been seen (awaiting the
	// separating space), and 0 when inactive.
	orderedListNumber int
}

func newParseContext() *parseContext {
	return &parseContext{currentIdx: -1}
}

// current returns a pointer to the in-progress block, or nil if there is
// none. Callers must not retain the pointer across a call that may append
// to blocks; re-fetch with current() instead.
func (ctx *parseContext) current() *Block {
	if ctx.currentIdx < 0 {
		return nil
	}
	return &ctx.blocks[ctx.currentIdx]
}

func (ctx *parseContext) hasCurrent() bool {
	return ctx.currentIdx >= 0
}

// currentIsEmpty reports whether there is no current block, or the current
// block's text is empty — the "line start" condition spec.md uses to decide
// whether '#', '-', and digits acquire structural meaning.
func (ctx *parseContext) currentIsEmpty() bool {
	b := ctx.current()
	return b == nil || b.Text == ""
}

// appendBlock creates a new block, appends it to blocks, makes it current,
// and returns a pointer to it (fetched after the append so it can't be
// invalidated by a later growth of blocks within this same call).
func (ctx *parseContext) appendBlock(b Block) *Block {
	b.ID = ctx.nextBlockID
	ctx.nextBlockID++
	ctx.blocks = append(ctx.blocks, b)
	ctx.currentIdx = len(ctx.blocks) - 1
	return &ctx.blocks[ctx.currentIdx]
}

// closeCurrent clears the current-block reference without mutating blocks.
func (ctx *parseContext) closeCurrent() {
	ctx.currentIdx = -1
}

// snapshotBlocks returns a by-value copy of the accumulated blocks, safe for
// a caller to retain without aliasing the Reducer's internal slice.
func (ctx *parseContext) snapshotBlocks() []Block {
	out := make([]Block, len(ctx.blocks))
	copy(out, ctx.blocks)
	return out
}
