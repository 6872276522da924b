package reduce

import "strings"

// repairUnterminatedInlineCode implements the end-of-stream repair pass
// described in the spec: a paragraph left holding an unterminated inline
// code marker when the stream ends gets one trailing backtick appended, so
// a user who typed "`foo" and stopped sees it styled through rather than
// left as a stray delimiter.
//
// Two conservative rules are tried in order; if neither guard is satisfied
// the text is returned unchanged.
func repairUnterminatedInlineCode(text string) string {
	if repaired, ok := repairTripleBacktick(text); ok {
		return repaired
	}
	if repaired, ok := repairLoneBacktick(text); ok {
		return repaired
	}
	return text
}

// repairTripleBacktick handles a paragraph that looks like an inline
// (single-line) triple-backtick span left open with only two of the three
// closing backticks typed: "```x``" -> "```x```".
func repairTripleBacktick(text string) (string, bool) {
	if strings.Contains(text, "\n") {
		return "", false
	}
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	if strings.HasSuffix(text, "```") {
		return "", false
	}
	if !strings.HasSuffix(text, "``") {
		return "", false
	}
	return text + "`", true
}

// repairLoneBacktick handles a paragraph containing a single unmatched
// backtick that looks like an opener: a backtick (not part of a triple),
// immediately followed by non-empty, non-whitespace, non-emphasis-marker
// content, with the overall parity of non-triple backticks in the text odd
// and no unterminated triple-backtick span in play.
func repairLoneBacktick(text string) (string, bool) {
	if !hasOddNonTripleBackticks(text) {
		return "", false
	}
	if strings.Count(text, "```")%2 != 0 {
		return "", false
	}
	if !hasLikelyOpener(text) {
		return "", false
	}
	return text + "`", true
}

// hasOddNonTripleBackticks counts backtick runs that are not part of a
// triple-backtick fence and reports whether the total backtick count among
// those runs is odd.
func hasOddNonTripleBackticks(text string) bool {
	count := 0
	i := 0
	for i < len(text) {
		if text[i] != '`' {
			i++
			continue
		}
		start := i
		for i < len(text) && text[i] == '`' {
			i++
		}
		runLen := i - start
		if runLen == 3 {
			continue // part of a fence, not a code-span delimiter
		}
		count += runLen
	}
	return count%2 == 1
}

// hasLikelyOpener scans for a single backtick (not part of a run of three)
// immediately followed by non-empty content that isn't whitespace or an
// emphasis marker.
func hasLikelyOpener(text string) bool {
	i := 0
	for i < len(text) {
		if text[i] != '`' {
			i++
			continue
		}
		start := i
		for i < len(text) && text[i] == '`' {
			i++
		}
		runLen := i - start
		if runLen != 1 {
			continue
		}
		if i >= len(text) {
			return false
		}
		c := text[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '*' || c == '_' || c == '~' || c == '[' {
			continue
		}
		return true
	}
	return false
}
