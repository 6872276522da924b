package reduce

import (
	"math/rand"
	"reflect"
	"testing"
)

// pushAll feeds s one rune per Push call and returns every diff produced,
// across the whole stream including Close.
func pushAll(t *testing.T, s string) ([]Diff, []Block) {
	t.Helper()
	r := New()
	var diffs []Diff
	for _, ch := range s {
		diffs = append(diffs, r.Push(ch)...)
	}
	diffs = append(diffs, r.Close()...)
	return diffs, r.Blocks()
}

// pushChunked feeds s split into chunks of at most maxChunk runes per
// PushString call.
func pushChunked(t *testing.T, s string, maxChunk int) []Block {
	t.Helper()
	r := New()
	runes := []rune(s)
	for i := 0; i < len(runes); {
		n := rand.Intn(maxChunk) + 1
		if i+n > len(runes) {
			n = len(runes) - i
		}
		r.PushString(string(runes[i : i+n]))
		i += n
	}
	r.Close()
	return r.Blocks()
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "paragraph",
			input: "Hello world\n",
			want:  []Block{{ID: 0, Kind: BlockParagraph, Text: "Hello world"}},
		},
		{
			name:  "heading then paragraph",
			input: "# Title\nbody",
			want: []Block{
				{ID: 0, Kind: BlockHeading, Level: 1, Text: "Title"},
				{ID: 1, Kind: BlockParagraph, Text: "body"},
			},
		},
		{
			name:  "fenced code with language",
			input: "```ts\nlet x=1;\n```",
			want:  []Block{{ID: 0, Kind: BlockCode, Lang: "ts", Text: "let x=1;\n"}},
		},
		{
			name:  "inline code splits paragraph",
			input: "use `len` here",
			want: []Block{
				{ID: 0, Kind: BlockParagraph, Text: "use "},
				{ID: 1, Kind: BlockInlineCode, Text: "len"},
				{ID: 2, Kind: BlockParagraph, Text: " here"},
			},
		},
		{
			name:  "unordered list",
			input: "- apple\n- pear\n",
			want: []Block{
				{ID: 0, Kind: BlockListItem, Text: "apple"},
				{ID: 1, Kind: BlockListItem, Text: "pear"},
			},
		},
		{
			name:  "ordered list",
			input: "1. one\n2. two\n",
			want: []Block{
				{ID: 0, Kind: BlockOrderedListItem, Number: 1, Text: "one"},
				{ID: 1, Kind: BlockOrderedListItem, Number: 2, Text: "two"},
			},
		},
		{
			name:  "unterminated inline code repaired at close",
			input: "`foo",
			want:  []Block{{ID: 0, Kind: BlockParagraph, Text: "`foo`"}},
		},
		{
			name:  "seven hash run demotes to paragraph",
			input: "#######",
			want:  []Block{{ID: 0, Kind: BlockParagraph, Text: "#######"}},
		},
		{
			name:  "unmaterialized heading marker survives an inline code trigger",
			input: "#`x\n",
			want: []Block{
				{ID: 0, Kind: BlockParagraph, Text: "#"},
				{ID: 1, Kind: BlockInlineCode, Text: "x"},
			},
		},
		{
			name:  "unmaterialized ordered list marker survives an inline code trigger",
			input: "1`x\n",
			want: []Block{
				{ID: 0, Kind: BlockParagraph, Text: "1"},
				{ID: 1, Kind: BlockInlineCode, Text: "x"},
			},
		},
		{
			name:  "unmaterialized heading marker survives a fence trigger",
			input: "#```\ncode\n```",
			want: []Block{
				{ID: 0, Kind: BlockParagraph, Text: "#"},
				{ID: 1, Kind: BlockCode, Text: "code\n"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, got := pushAll(t, tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("blocks mismatch\n got: %#v\nwant: %#v", got, tc.want)
			}
		})
	}
}

func TestBoundaryEmptyInput(t *testing.T) {
	r := New()
	if diffs := r.Close(); len(diffs) != 0 {
		t.Fatalf("close on empty stream: want no diffs, got %v", diffs)
	}
}

func TestBoundaryLoneBacktick(t *testing.T) {
	for _, input := range []string{"`", "``"} {
		r := New()
		if diffs := r.Push('`'); len(diffs) != 0 {
			t.Fatalf("push %q: want no diffs, got %v", input, diffs)
		}
		if len(input) == 2 {
			if diffs := r.Push('`'); len(diffs) != 0 {
				t.Fatalf("push second backtick of %q: want no diffs, got %v", input, diffs)
			}
		}
		if diffs := r.Close(); len(diffs) != 0 {
			t.Fatalf("close after %q: want no diffs, got %v", input, diffs)
		}
	}
}

// TestDeterminism checks quantified invariant 1: feeding the same input to
// a fresh reducer twice produces the same diff sequence.
func TestDeterminism(t *testing.T) {
	inputs := []string{
		"Hello world\n",
		"# Title\nbody",
		"```go\nfmt.Println(1)\n```",
		"use `len` here",
		"- a\n- b\n1. x\n",
	}
	for _, in := range inputs {
		d1, _ := pushAll(t, in)
		d2, _ := pushAll(t, in)
		if !reflect.DeepEqual(d1, d2) {
			t.Fatalf("determinism violated for %q", in)
		}
	}
}

// TestChunkInvariance checks quantified invariant 2: splitting the input
// into arbitrary chunks must not change the post-close block sequence.
func TestChunkInvariance(t *testing.T) {
	inputs := []string{
		"Hello world\nSecond paragraph with `code` inline.\n\n# A Heading\n- one\n- two\n1. first\n2. second\n```py\nprint('hi')\n```\ntrailing",
		"`unterminated",
		"####### too many hashes then text",
	}
	for _, in := range inputs {
		_, full := pushAll(t, in)
		for _, maxChunk := range []int{1, 2, 3, 7} {
			chunked := pushChunked(t, in, maxChunk)
			if !reflect.DeepEqual(full, chunked) {
				t.Fatalf("chunk invariance violated for %q at maxChunk=%d\n full: %#v\nchunk: %#v",
					in, maxChunk, full, chunked)
			}
		}
	}
}

// TestAppendBeforePatch checks quantified invariant 3: every Patch for id k
// is preceded by exactly one Append for id k.
func TestAppendBeforePatch(t *testing.T) {
	diffs, _ := pushAll(t, "# Heading\nSome `inline` text and a list:\n- item one\n- item two\n1. first\n```js\nconsole.log(1)\n```\n")
	appended := map[int]int{}
	for _, d := range diffs {
		switch d.Kind {
		case DiffAppend:
			appended[d.ID]++
			if appended[d.ID] > 1 {
				t.Fatalf("id %d appended more than once", d.ID)
			}
		case DiffPatch:
			if appended[d.ID] != 1 {
				t.Fatalf("patch for id %d seen before its append", d.ID)
			}
		}
	}
}

// TestIDMonotonicity checks quantified invariant 4.
func TestIDMonotonicity(t *testing.T) {
	diffs, _ := pushAll(t, "# H\npara\n- li\n1. ol\n```\ncode\n```\n`inline` x")
	last := -1
	for _, d := range diffs {
		if d.Kind != DiffAppend {
			continue
		}
		if d.ID != last+1 {
			t.Fatalf("append ids not strictly increasing from 0: got %d after %d", d.ID, last)
		}
		last = d.ID
	}
}

// TestReconstruction checks quantified invariant 5: replaying diffs through
// an indexed collection reproduces Blocks() exactly.
func TestReconstruction(t *testing.T) {
	diffs, want := pushAll(t, "# H\npara with `code` span\n- one\n- two\n1. a\n2. b\n```go\nx := 1\n```\ntrailing `oops")

	byID := map[int]Block{}
	var order []int
	for _, d := range diffs {
		switch d.Kind {
		case DiffAppend:
			byID[d.ID] = d.Block
			order = append(order, d.ID)
		case DiffPatch:
			if _, ok := byID[d.ID]; !ok {
				t.Fatalf("patch for unseen id %d", d.ID)
			}
			byID[d.ID] = d.Block
		}
	}
	got := make([]Block, len(order))
	for i, id := range order {
		got[i] = byID[id]
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reconstruction mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	r := New()
	var got []Diff
	unsub := r.Subscribe(func(d []Diff) { got = append(got, d...) })

	r.PushString("hi")
	if len(got) == 0 {
		t.Fatalf("expected listener to receive diffs")
	}

	unsub()
	before := len(got)
	r.PushString(" there")
	r.Close()
	if len(got) != before {
		t.Fatalf("listener still receiving diffs after unsubscribe")
	}
}

func TestReuseAfterClose(t *testing.T) {
	r := New()
	r.PushString("first\n")
	r.Close()
	r.PushString("second")
	r.Close()

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("want 2 blocks across two streams, got %d: %#v", len(blocks), blocks)
	}
	if blocks[0].Text != "first" || blocks[1].Text != "second" {
		t.Fatalf("unexpected block text: %#v", blocks)
	}
	if blocks[1].ID != 1 {
		t.Fatalf("want second stream's block id to continue from the first, got %d", blocks[1].ID)
	}
}
