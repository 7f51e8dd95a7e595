// Package models defines the domain types shared by the vault index and the
// link-completion engine.
package models

import "time"

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReferenceableKind tags a vault node that a link may point at.
type ReferenceableKind string

const (
	KindFile         ReferenceableKind = "file"
	KindHeading      ReferenceableKind = "heading"
	KindIndexedBlock ReferenceableKind = "indexed_block"
	KindTag          ReferenceableKind = "tag"
	KindFootnote     ReferenceableKind = "footnote"
)

// Referenceable is one addressable node of the vault.
//
// Path is the location of the containing document relative to the vault
// root. Text carries the heading text, block index, tag name or footnote
// label, and is empty for files. Line is 0-based; files use -1.
type Referenceable struct {
	Path string            `json:"path"`
	Kind ReferenceableKind `json:"kind"`
	Text string            `json:"text,omitempty"`
	Line int               `json:"line"`
}
