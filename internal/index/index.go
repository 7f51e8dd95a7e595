package index

import (
	"context"

	"github.com/starford/vaultlink/internal/models"
)

// ReferenceableIndex defines the interface for referenceable indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type ReferenceableIndex interface {
	UpsertNote(n NoteRow, refs []models.Referenceable) error
	DeleteNote(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	SelectReferenceableNodes(ctx context.Context) ([]models.Referenceable, error)
	NoteReferenceables(ctx context.Context, path string) ([]models.Referenceable, error)
	Close() error
}

// Verify *DB satisfies ReferenceableIndex at compile time.
var _ ReferenceableIndex = (*DB)(nil)
