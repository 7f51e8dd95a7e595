// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/vaultlink/internal/models"

// Provider is the read-only view of the vault the index is built from.
// The vault is owned by its editor; nothing here writes to it.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	// Hidden directories such as .obsidian or .git are skipped.
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
}
