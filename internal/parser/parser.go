// Package parser extracts frontmatter, wikilinks, tags, headings, indexed
// blocks and footnotes from Markdown content.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
	tagRe      = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)
	headingRe  = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
	blockRe    = regexp.MustCompile(`\s\^([A-Za-z0-9-]+)\s*$`)
	footnoteRe = regexp.MustCompile(`^\[\^([^\]\s]+)\]:`)
)

// Heading is an ATX heading found in the body.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Block is a paragraph or list item tagged with a trailing ^index.
type Block struct {
	Index string
	Line  int
}

// Footnote is a footnote definition ([^label]: ...).
type Footnote struct {
	Label string
	Line  int
}

// Result holds the output of parsing a Markdown file.
// Line numbers are 0-based and relative to the start of the file.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Links       []string
	Tags        []string
	Title       string
	Headings    []Heading
	Blocks      []Block
	Footnotes   []Footnote
}

// Parse extracts frontmatter, body, wikilinks, tags and in-file anchors from
// raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, offset, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	headings, blocks, footnotes := scanAnchors(body, offset)

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Links:       extractLinks(body),
		Tags:        extractTags(body, fm),
		Title:       deriveTitle(fm, headings),
		Headings:    headings,
		Blocks:      blocks,
		Footnotes:   footnotes,
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. The returned offset is the number of lines that
// precede the body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, int, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), 0, nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: treat everything as body.
		return nil, string(data), 0, nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data), 0, nil
	}

	offset := strings.Count(string(data[:len(data)-len(body)]), "\n")
	return fm, body, offset, nil
}

// scanAnchors walks the body line by line and collects headings, indexed
// blocks and footnote definitions. Fenced code is skipped.
func scanAnchors(body string, offset int) ([]Heading, []Block, []Footnote) {
	var (
		headings  []Heading
		blocks    []Block
		footnotes []Footnote
		fence     string
	)

	for i, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, "\r")
		lineNo := offset + i

		if marker := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(marker, fence):
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(strings.TrimRight(m[2], "#"))
			if text != "" {
				headings = append(headings, Heading{Level: len(m[1]), Text: text, Line: lineNo})
			}
			continue
		}
		if m := footnoteRe.FindStringSubmatch(line); m != nil {
			footnotes = append(footnotes, Footnote{Label: m[1], Line: lineNo})
		}
		if m := blockRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Index: m[1], Line: lineNo})
		}
	}

	return headings, blocks, footnotes
}

func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, ch := range []string{"`", "~"} {
		n := 0
		for n < len(trimmed) && trimmed[n:n+1] == ch {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}

// extractLinks returns deduplicated wikilink targets, normalising aliases.
func extractLinks(body string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// extractTags collects #tags from body and from frontmatter "tags" field.
func extractTags(body string, fm map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup || s == "" {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if raw, ok := fm["tags"]; ok {
		if items, ok := raw.([]interface{}); ok {
			for _, item := range items {
				if s, ok := item.(string); ok {
					add(strings.TrimSpace(s))
				}
			}
		}
	}

	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}

	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, headings []Heading) string {
	if s, ok := fm["title"].(string); ok && s != "" {
		return s
	}
	for _, h := range headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}
