package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oss-mdreduce/mdreduce/internal/config"
	"github.com/oss-mdreduce/mdreduce/internal/reduce"
)

func testConfig(partial bool) config.Config {
	return config.Config{
		Theme: config.ThemeConfig{
			Heading: "13", Code: "10", List: "12", Muted: "245",
		},
		Render:    config.RenderConfig{ChunkSize: 1, Partial: partial},
		Highlight: config.HighlightConfig{Style: "monokai"},
	}
}

func TestViewPrintsSettledBlocksWithoutPartial(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, testConfig(false), 80)
	r := reduce.New()
	detach := v.Attach(r)
	defer detach()

	r.PushString("# Title\nbody *word* done")
	r.Close()
	v.Flush()

	out := buf.String()
	if !strings.Contains(out, "Title") {
		t.Fatalf("expected heading text in output, got %q", out)
	}
	if !strings.Contains(out, "word") {
		t.Fatalf("expected paragraph text in output, got %q", out)
	}
}

func TestViewFallbackRenderWithoutGlamour(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, testConfig(false), 80)
	v.glamour = nil // force the lipgloss+chroma fallback path

	r := reduce.New()
	detach := v.Attach(r)
	defer detach()

	r.PushString("```go\nfunc main() {}\n```")
	r.Close()
	v.Flush()

	if !strings.Contains(buf.String(), "func") {
		t.Fatalf("expected highlighted code text in fallback output, got %q", buf.String())
	}
}

func TestViewPartialRedrawDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, testConfig(true), 80)
	r := reduce.New()
	detach := v.Attach(r)
	defer detach()

	r.PushString("Hello world, this keeps growing")
	r.Close()
	v.Flush()

	if buf.Len() == 0 {
		t.Fatalf("expected some output to be written")
	}
}
