package querier

import "strings"

// InfileKind says what the part after '#' of a link refers to.
type InfileKind int

const (
	InfileHeading InfileKind = iota
	InfileIndex
)

// InfileRef is the in-file anchor of a link: a heading fragment or a block
// index fragment.
type InfileRef struct {
	Kind     InfileKind
	Fragment string
}

// HeadingRef returns an in-file reference to a heading fragment.
func HeadingRef(fragment string) *InfileRef {
	return &InfileRef{Kind: InfileHeading, Fragment: fragment}
}

// IndexRef returns an in-file reference to a block index fragment.
func IndexRef(fragment string) *InfileRef {
	return &InfileRef{Kind: InfileIndex, Fragment: fragment}
}

// LinkQuery is the link the user has typed so far. A nil InfileRef means
// no '#' has been typed.
type LinkQuery struct {
	FileRef   string
	InfileRef *InfileRef
}

// BuildQueryString renders q as the single string matched against entities:
// "file", "file#heading" or "file#^index". Nothing is validated; empty parts
// are kept as they are.
func BuildQueryString(q LinkQuery) string {
	if q.InfileRef == nil {
		return q.FileRef
	}
	switch q.InfileRef.Kind {
	case InfileIndex:
		return q.FileRef + "#^" + q.InfileRef.Fragment
	default:
		return q.FileRef + "#" + q.InfileRef.Fragment
	}
}

// ParseLinkQuery reads the text typed inside a wikilink. Surrounding "[[",
// "]]" and any "|alias" are ignored. The first '#' starts the in-file part;
// "#^" selects a block index instead of a heading.
func ParseLinkQuery(text string) LinkQuery {
	text = strings.TrimPrefix(strings.TrimSpace(text), "[[")
	if i := strings.Index(text, "]]"); i >= 0 {
		text = text[:i]
	}
	if i := strings.IndexByte(text, '|'); i >= 0 {
		text = text[:i]
	}

	file, anchor, found := strings.Cut(text, "#")
	if !found {
		return LinkQuery{FileRef: file}
	}
	if index, ok := strings.CutPrefix(anchor, "^"); ok {
		return LinkQuery{FileRef: file, InfileRef: IndexRef(index)}
	}
	return LinkQuery{FileRef: file, InfileRef: HeadingRef(anchor)}
}
