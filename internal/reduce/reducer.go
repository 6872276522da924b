// Package reduce implements a streaming, character-driven Markdown block
// parser. A Reducer consumes one character (or chunk) at a time and
// produces an append-only sequence of Diff records describing how an
// external view should mutate its own state to stay in sync, including
// correctly when the input is truncated mid-construct.
package reduce

import (
	"sync"
	"unicode/utf8"
)

// Reducer owns a parseContext and a strategyRegistry, and is the sole entry
// point (Push/Close) a producer talks to. It must not be invoked
// re-entrantly: Push and Close are synchronous and expect to run to
// completion before the next call begins.
type Reducer struct {
	ctx *parseContext
	reg *strategyRegistry

	mu        sync.Mutex
	listeners []func([]Diff)
}

// New returns a Reducer ready to accept its first character.
func New() *Reducer {
	return &Reducer{
		ctx: newParseContext(),
		reg: newStrategyRegistry(),
	}
}

// Push feeds one character into the reducer and returns the diffs produced
// by processing it. ch is expected to be a single user-perceived character;
// grapheme segmentation is the producer's responsibility.
func (r *Reducer) Push(ch rune) []Diff {
	diffs := r.push(ch)
	r.notify(diffs)
	return diffs
}

func (r *Reducer) push(ch rune) []Diff {
	ctx := r.ctx

	// Phase 1: backtick accumulation. A run of exactly three backticks
	// triggers the fence handler directly, bypassing flush and triggers
	// entirely, in every mode.
	if ch == '`' {
		ctx.pendingBackticks++
		if ctx.pendingBackticks == 3 {
			ctx.pendingBackticks = 0
			diffs := abortUnmaterializedMarker(ctx)
			return append(diffs, triggerFence(ctx)...)
		}
		return nil
	}

	n := ctx.pendingBackticks
	ctx.pendingBackticks = 0

	var diffs []Diff

	// Phase 2/3a: a single pending backtick in a mode that doesn't already
	// interpret backticks itself is the InlineCode trigger; it takes
	// priority over flushing and defers ch to the new mode's process.
	if n == 1 && canStartInlineCode(ctx, n) {
		diffs = append(diffs, abortUnmaterializedMarker(ctx)...)
		diffs = append(diffs, triggerInlineCode(ctx)...)
		diffs = append(diffs, r.dispatch(ch)...)
		return diffs
	}

	// Phase 2: flush any other pending backtick count (2, or 1 in a mode
	// that interprets backticks itself) through the current mode.
	if n > 0 {
		diffs = append(diffs, r.reg.get(ctx.mode).flushBacktick(ctx, n)...)
	}

	// Phase 3: the remaining triggers, then fall back to process.
	diffs = append(diffs, r.dispatch(ch)...)
	return diffs
}

// dispatch runs the line-start triggers in priority order (Heading, then
// List, then OrderedList — InlineCode was already resolved in push) and
// falls back to the current mode's process if none fire.
func (r *Reducer) dispatch(ch rune) []Diff {
	ctx := r.ctx
	switch {
	case canStartHeading(ctx, ch):
		enterHeading(ctx)
		return r.reg.get(ctx.mode).process(ctx, ch) // deferred, not consumed
	case canStartList(ctx, ch):
		enterList(ctx)
		return nil // '-' consumed by the trigger itself
	case canStartOrderedList(ctx, ch):
		enterOrderedList(ctx, ch)
		return nil // digit consumed by the trigger itself
	default:
		return r.reg.get(ctx.mode).process(ctx, ch)
	}
}

// Close finalizes the stream: it resolves any trailing ambiguous state,
// applies the end-of-stream inline-code repair, and returns every diff
// produced. The per-stream parse state (mode, pending backticks, and
// friends) is reset afterward so the same Reducer can be handed a fresh
// stream; the accumulated block history and id counter are NOT cleared, so
// Blocks() still reflects the stream that just closed and a subsequent
// stream's blocks keep appending after it rather than colliding with it.
func (r *Reducer) Close() []Diff {
	ctx := r.ctx
	var diffs []Diff

	// Step 1: a pending backtick run only has a fixed meaning in modes that
	// already interpret backticks themselves (Code/FenceStart append
	// literally, InlineCode closes). In every other mode a lone or double
	// pending backtick was waiting for a disambiguating character that will
	// never arrive, and is dropped rather than guessed at — this is what
	// makes "`" and "``" alone produce no diffs at all.
	if ctx.pendingBackticks > 0 {
		if ctx.mode == ModeCode || ctx.mode == ModeFenceStart || ctx.mode == ModeInlineCode {
			diffs = append(diffs, r.reg.get(ctx.mode).flushBacktick(ctx, ctx.pendingBackticks)...)
		}
		ctx.pendingBackticks = 0
	}

	// Step 2: delegate to the current mode's own close, e.g. InlineCode
	// demoting an unterminated block to plain paragraph text. Adding a new
	// mode that needs close-time cleanup only means writing its own close,
	// not editing this method.
	diffs = append(diffs, r.reg.get(ctx.mode).close(ctx)...)

	// Step 3: repair an unterminated inline-code marker left in the current
	// paragraph, if any.
	if ctx.mode == ModeParagraph && ctx.hasCurrent() {
		b := ctx.current()
		repaired := repairUnterminatedInlineCode(b.Text)
		if repaired != b.Text {
			b.Text = repaired
			diffs = append(diffs, patchDiff(*b))
		}
	}

	ctx.closeCurrent()
	ctx.mode = ModeParagraph
	ctx.headingLevel = 0
	ctx.orderedListNumber = 0
	ctx.languageBuffer.Reset()

	r.notify(diffs)
	return diffs
}

// Blocks returns a snapshot of every block appended so far, in order. It is
// the reconstruction-property accessor (§8.5 of the spec): applying the
// emitted diffs to an indexed collection should reproduce exactly this.
func (r *Reducer) Blocks() []Block {
	return r.ctx.snapshotBlocks()
}

// PushString feeds s one rune at a time and returns every diff produced, in
// order. It is the multi-character chunk entry point the chunk-invariance
// property (§8.2) exercises.
func (r *Reducer) PushString(s string) []Diff {
	var diffs []Diff
	for _, ch := range s {
		diffs = append(diffs, r.Push(ch)...)
	}
	return diffs
}

// Write implements io.Writer by decoding p as UTF-8 and pushing each rune in
// turn. It lets a Reducer be used as the sink end of any Go stream, exactly
// like an ordinary writer, regardless of how the caller chunks its writes.
func (r *Reducer) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		ch, size := utf8.DecodeRune(p)
		r.Push(ch)
		p = p[size:]
	}
	return n, nil
}

