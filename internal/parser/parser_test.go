package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - vault\n---\n# Hello\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Hello" {
		t.Errorf("title = %q, want %q", r.Title, "Hello")
	}
	if len(r.Tags) < 2 || r.Tags[0] != "go" || r.Tags[1] != "vault" {
		t.Errorf("tags = %v, want [go vault]", r.Tags)
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
	if len(r.Headings) != 1 || r.Headings[0].Line != 6 {
		t.Errorf("headings = %+v, want one heading on line 6", r.Headings)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestParse_HeadingsAllLevels(t *testing.T) {
	input := []byte("# One\ntext\n## Two ##\n###### Six\n####### Seven\n#notatag heading\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Heading{
		{Level: 1, Text: "One", Line: 0},
		{Level: 2, Text: "Two", Line: 2},
		{Level: 6, Text: "Six", Line: 3},
	}
	if len(r.Headings) != len(want) {
		t.Fatalf("headings = %+v, want %+v", r.Headings, want)
	}
	for i := range want {
		if r.Headings[i] != want[i] {
			t.Errorf("heading[%d] = %+v, want %+v", i, r.Headings[i], want[i])
		}
	}
}

func TestParse_IndexedBlocks(t *testing.T) {
	input := []byte("First paragraph ^intro\n\n- item one ^item-1\nno index here\nx^y not a block\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Blocks) != 2 {
		t.Fatalf("blocks = %+v, want 2", r.Blocks)
	}
	if r.Blocks[0].Index != "intro" || r.Blocks[0].Line != 0 {
		t.Errorf("block[0] = %+v", r.Blocks[0])
	}
	if r.Blocks[1].Index != "item-1" || r.Blocks[1].Line != 2 {
		t.Errorf("block[1] = %+v", r.Blocks[1])
	}
}

func TestParse_SkipsFencedCode(t *testing.T) {
	input := []byte("# Real\n```sh\n# not a heading\necho hi ^nope\n```\n## After\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Headings) != 2 || r.Headings[1].Text != "After" {
		t.Errorf("headings = %+v", r.Headings)
	}
	if len(r.Blocks) != 0 {
		t.Errorf("blocks inside fence should be ignored, got %+v", r.Blocks)
	}
}

func TestParse_Footnotes(t *testing.T) {
	r, err := Parse([]byte("Text[^1].\n\n[^1]: The note.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Footnotes) != 1 || r.Footnotes[0].Label != "1" || r.Footnotes[0].Line != 2 {
		t.Errorf("footnotes = %+v", r.Footnotes)
	}
}

func TestExtractLinks_Basic(t *testing.T) {
	body := "See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again."
	links := extractLinks(body)
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0] != "Note A" || links[1] != "Note B" {
		t.Errorf("links = %v", links)
	}
}

func TestExtractLinks_EmptyTarget(t *testing.T) {
	links := extractLinks("see [[ ]] and [[|alias]]")
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]any{
		"tags": []any{"alpha"},
	}
	body := "Some text #beta and #alpha again."
	tags := extractTags(body, fm)
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "beta" {
		t.Errorf("tags = %v, want [alpha beta]", tags)
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]any{"title": "FM Title"}
	title := deriveTitle(fm, []Heading{{Level: 1, Text: "H1 Title"}})
	if title != "FM Title" {
		t.Errorf("title = %q, want %q", title, "FM Title")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(nil, []Heading{{Level: 2, Text: "Sub"}, {Level: 1, Text: "My Heading"}})
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}
