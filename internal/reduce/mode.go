package reduce

// modeStrategy is the per-mode handler the Dispatcher delegates to. Adding a
// new block type means writing a new modeStrategy and registering it in
// newStrategyRegistry — the Dispatcher itself never changes.
type modeStrategy interface {
	// process handles one character that was neither consumed by backtick
	// accounting nor by a higher-priority trigger.
	process(ctx *parseContext, ch rune) []Diff

	// flushBacktick interprets n pending backticks (n is 1 or 2; a run of 3
	// is handled directly by the fence trigger and never reaches here) that
	// were held back while the dispatcher waited for a non-backtick
	// character to disambiguate them.
	flushBacktick(ctx *parseContext, n int) []Diff

	// close finalizes any mode-specific state when the stream ends. Most
	// modes have nothing to do here; InlineCode demotes an unterminated
	// block to plain paragraph text.
	close(ctx *parseContext) []Diff
}

// strategyRegistry maps a Mode to the strategy that handles it. All modes
// named in the spec are registered, including OrderedList — the source this
// spec was drawn from left an ordered-list strategy defined but unregistered
// in some variants; this implementation always registers it.
type strategyRegistry struct {
	strategies map[Mode]modeStrategy
}

func newStrategyRegistry() *strategyRegistry {
	return &strategyRegistry{
		strategies: map[Mode]modeStrategy{
			ModeParagraph:   paragraphStrategy{},
			ModeHeading:     headingStrategy{},
			ModeFenceStart:  codeFenceStrategy{},
			ModeCode:        codeFenceStrategy{},
			ModeInlineCode:  inlineCodeStrategy{},
			ModeList:        listStrategy{},
			ModeOrderedList: orderedListStrategy{},
		},
	}
}

func (reg *strategyRegistry) get(m Mode) modeStrategy {
	s, ok := reg.strategies[m]
	if !ok {
		panic("reduce: no strategy registered for mode " + m.String())
	}
	return s
}
