// Package linkservice serves wikilink completions from the referenceable index.
package linkservice

import (
	"context"
	"log/slog"
	"strings"

	"github.com/starford/vaultlink/internal/apperr"
	"github.com/starford/vaultlink/internal/index"
	"github.com/starford/vaultlink/internal/models"
	"github.com/starford/vaultlink/internal/querier"
)

// Item is one completion candidate, shaped for an editor completion list.
type Item struct {
	Label      string             `json:"label"`
	InsertText string             `json:"insert_text"`
	Kind       querier.EntityKind `json:"kind"`
	Path       string             `json:"path"`
	Line       int                `json:"line"`
	Detail     string             `json:"detail,omitempty"`
}

// Completion is the ranked answer to one typed link.
type Completion struct {
	Query   string   `json:"query"`
	Items   []Item   `json:"items"`
	Skipped []string `json:"skipped"`
}

// Options tunes the service.
type Options struct {
	Workers      int
	ScoreWorkers int
	// MaxResults truncates the item list; 0 keeps every match.
	MaxResults int
	Logger     *slog.Logger
}

// Service coordinates the index and the querier.
type Service struct {
	db         index.ReferenceableIndex
	querier    *querier.Querier
	maxResults int
}

// NewService creates a new link completion service over db.
func NewService(db index.ReferenceableIndex, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	q := querier.New(db,
		querier.WithWorkers(opts.Workers),
		querier.WithScoreWorkers(opts.ScoreWorkers),
		querier.WithLogger(logger),
	)
	return &Service{db: db, querier: q, maxResults: opts.MaxResults}
}

// Complete parses the raw text typed inside a wikilink and ranks candidates.
func (s *Service) Complete(ctx context.Context, text string) (*Completion, error) {
	return s.CompleteQuery(ctx, querier.ParseLinkQuery(text))
}

// CompleteQuery ranks candidates for an already structured link query.
func (s *Service) CompleteQuery(ctx context.Context, lq querier.LinkQuery) (*Completion, error) {
	res, err := s.querier.Query(ctx, lq)
	if err != nil {
		return nil, err
	}

	limit := res.Len()
	if s.maxResults > 0 && s.maxResults < limit {
		limit = s.maxResults
	}

	out := &Completion{
		Query:   querier.BuildQueryString(lq),
		Items:   make([]Item, 0, limit),
		Skipped: make([]string, 0, len(res.Skipped)),
	}
	for i, e := range res.All() {
		if i == limit {
			break
		}
		item, err := toItem(e)
		if err != nil {
			continue
		}
		out.Items = append(out.Items, item)
	}
	for _, sk := range res.Skipped {
		out.Skipped = append(out.Skipped, sk.Entity.Location)
	}
	return out, nil
}

// Referenceables lists the raw referenceable nodes of one note, or of the
// whole vault when path is empty.
func (s *Service) Referenceables(ctx context.Context, path string) ([]models.Referenceable, error) {
	if path == "" {
		nodes, err := s.db.SelectReferenceableNodes(ctx)
		if err != nil {
			return nil, err
		}
		return nonNilSlice(nodes), nil
	}
	cs, err := s.db.GetChecksum(path)
	if err != nil {
		return nil, err
	}
	if cs == "" {
		return nil, apperr.ErrNotFound
	}
	nodes, err := s.db.NoteReferenceables(ctx, path)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(nodes), nil
}

// toItem renders an entity as a completion item. The insert text is the
// wikilink target: the note name without ".md", plus the in-file anchor.
func toItem(e querier.NamedEntity) (Item, error) {
	name, err := e.FileName()
	if err != nil {
		return Item{}, err
	}
	target := strings.TrimSuffix(name, ".md")

	item := Item{Kind: e.Kind, Path: e.Location, Line: e.Line}
	switch e.Kind {
	case querier.EntityHeading:
		item.InsertText = querier.BuildQueryString(querier.LinkQuery{FileRef: target, InfileRef: querier.HeadingRef(e.Data)})
		item.Detail = "Heading in " + e.Location
	case querier.EntityIndexedBlock:
		item.InsertText = querier.BuildQueryString(querier.LinkQuery{FileRef: target, InfileRef: querier.IndexRef(e.Data)})
		item.Detail = "Block in " + e.Location
	default:
		item.InsertText = target
		item.Detail = e.Location
	}
	item.Label = item.InsertText
	return item, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
