package querier

import (
	"context"
	"fmt"

	"github.com/starford/vaultlink/internal/models"
)

// VaultView is the read-only vault enumeration the engine consumes. The
// returned slice is treated as an immutable snapshot for one query.
type VaultView interface {
	SelectReferenceableNodes(ctx context.Context) ([]models.Referenceable, error)
}

// Collect enumerates the vault and keeps the files, headings and indexed
// blocks. Other node kinds (tags, footnotes, ...) are not link-completion
// candidates and are dropped. Entities come back in enumeration order and
// each node appears once.
func Collect(ctx context.Context, view VaultView, workers int) ([]NamedEntity, error) {
	nodes, err := view.SelectReferenceableNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("querier: enumerate vault: %w", err)
	}

	slots := make([]NamedEntity, len(nodes))
	keep := make([]bool, len(nodes))
	forEachChunk(len(nodes), workers, func(start, end int) {
		for i := start; i < end; i++ {
			slots[i], keep[i] = fromReferenceable(nodes[i])
		}
	})

	seen := make(map[NamedEntity]struct{}, len(nodes))
	out := make([]NamedEntity, 0, len(nodes))
	for i, e := range slots {
		if !keep[i] {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}
