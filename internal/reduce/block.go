package reduce

import (
	"encoding/json"
	"fmt"
)

// BlockKind discriminates the tagged variants of Block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockInlineCode
	BlockListItem
	BlockOrderedListItem
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockInlineCode:
		return "inline_code"
	case BlockListItem:
		return "list_item"
	case BlockOrderedListItem:
		return "ordered_list_item"
	default:
		return "unknown"
	}
}

// Block is a tagged-variant record for one parsed Markdown block. Every
// block carries a stable, monotonically increasing id that is unique within
// the Reducer instance that created it. Fields not used by a given Kind are
// left at their zero value.
type Block struct {
	ID   int
	Kind BlockKind
	Text string

	// Level is set for BlockHeading, 1..6.
	Level int

	// Lang is set for BlockCode when a fence language is present.
	Lang string

	// Number is set for BlockOrderedListItem, >= 1.
	Number int
}

func newParagraphBlock(id int) Block {
	return Block{ID: id, Kind: BlockParagraph}
}

func newHeadingBlock(id, level int) Block {
	return Block{ID: id, Kind: BlockHeading, Level: level}
}

func newCodeBlock(id int) Block {
	return Block{ID: id, Kind: BlockCode}
}

func newInlineCodeBlock(id int) Block {
	return Block{ID: id, Kind: BlockInlineCode}
}

func newListItemBlock(id int) Block {
	return Block{ID: id, Kind: BlockListItem}
}

func newOrderedListItemBlock(id, number int) Block {
	return Block{ID: id, Kind: BlockOrderedListItem, Number: number}
}

// clone returns a by-value copy of b. Block has no reference fields, so a
// plain value copy already satisfies the "diffs carry copies" invariant;
// this method exists to make that intent explicit at call sites.
func (b Block) clone() Block {
	return b
}

// MarshalJSON encodes Block with an explicit "kind" discriminator so the
// wire format stays stable regardless of BlockKind's underlying int value.
func (b Block) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID     int    `json:"id"`
		Kind   string `json:"kind"`
		Text   string `json:"text"`
		Level  int    `json:"level,omitempty"`
		Lang   string `json:"lang,omitempty"`
		Number int    `json:"number,omitempty"`
	}
	return json.Marshal(wire{
		ID:     b.ID,
		Kind:   b.Kind.String(),
		Text:   b.Text,
		Level:  b.Level,
		Lang:   b.Lang,
		Number: b.Number,
	})
}

// DiffKind discriminates the tagged variants of Diff.
type DiffKind int

const (
	DiffAppend DiffKind = iota
	DiffPatch
)

func (k DiffKind) String() string {
	switch k {
	case DiffAppend:
		return "append"
	case DiffPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// Diff is a tagged-variant instruction to an external view: either a new
// block was appended, or the block with the given id changed and should be
// replaced wholesale by the carried Block value.
type Diff struct {
	Kind  DiffKind
	ID    int
	Block Block
}

func appendDiff(b Block) Diff {
	return Diff{Kind: DiffAppend, ID: b.ID, Block: b.clone()}
}

func patchDiff(b Block) Diff {
	return Diff{Kind: DiffPatch, ID: b.ID, Block: b.clone()}
}

// MarshalJSON encodes Diff with an explicit "kind" discriminator.
func (d Diff) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind  string `json:"kind"`
		ID    int    `json:"id"`
		Block Block  `json:"block"`
	}
	return json.Marshal(wire{Kind: d.Kind.String(), ID: d.ID, Block: d.Block})
}

func (d Diff) String() string {
	return fmt.Sprintf("%s(id=%d, %s)", d.Kind, d.ID, d.Block.Text)
}
