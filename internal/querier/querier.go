// Package querier turns a partially typed wikilink into a ranked list of the
// vault entities it may complete to.
//
// A query is a one-shot transform: the vault view is enumerated once, every
// file, heading and indexed block gets a canonical match string, and the
// candidates are ranked by the fuzzy scorer against the rendered query.
// Nothing is retained between calls, so one Querier can serve concurrent
// queries over the same vault snapshot.
package querier

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"runtime"

	"github.com/starford/vaultlink/internal/fuzzy"
)

// Querier ranks vault entities against link queries.
type Querier struct {
	view    VaultView
	workers int
	scorer  *fuzzy.Scorer
	logger  *slog.Logger
}

// Option configures a Querier.
type Option func(*Querier)

// WithWorkers bounds the goroutines used to collect and unwrap entities.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(q *Querier) {
		if n > 0 {
			q.workers = n
		}
	}
}

// WithScoreWorkers parallelizes fuzzy scoring. Ranking is unaffected.
func WithScoreWorkers(n int) Option {
	return func(q *Querier) {
		q.scorer = fuzzy.NewScorer(fuzzy.WithWorkers(n))
	}
}

// WithLogger sets the logger used to report skipped entities.
func WithLogger(l *slog.Logger) Option {
	return func(q *Querier) {
		q.logger = l
	}
}

// New returns a Querier reading from view.
func New(view VaultView, opts ...Option) *Querier {
	q := &Querier{
		view:    view,
		workers: runtime.GOMAXPROCS(0),
		scorer:  fuzzy.NewScorer(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Result is the ranked outcome of one query.
type Result struct {
	// Entities are the matches, best first.
	Entities []NamedEntity
	// Skipped lists entities left out because their location has no file name.
	Skipped []*InvalidEntityLocationError
}

// Len returns the number of matched entities.
func (r *Result) Len() int {
	return len(r.Entities)
}

// All yields the matches in rank order.
func (r *Result) All() iter.Seq2[int, NamedEntity] {
	return func(yield func(int, NamedEntity) bool) {
		for i, e := range r.Entities {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Err joins the per-entity failures, or returns nil when nothing was skipped.
func (r *Result) Err() error {
	errs := make([]error, len(r.Skipped))
	for i, e := range r.Skipped {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Query ranks the vault's entities against lq. An empty vault or a query that
// matches nothing yields an empty Result, not an error. Entities with a
// malformed location are skipped and reported in Result.Skipped; only a
// failure to enumerate the vault fails the query.
func (q *Querier) Query(ctx context.Context, lq LinkQuery) (*Result, error) {
	filter := BuildQueryString(lq)

	entities, err := Collect(ctx, q.view, q.workers)
	if err != nil {
		return nil, err
	}

	candidates, skipped := q.candidates(entities)
	for _, s := range skipped {
		q.logger.Warn("querier: skipping entity",
			slog.String("location", s.Entity.Location),
			slog.String("kind", s.Entity.Kind.String()),
			slog.String("error", s.Error()))
	}

	scored := fuzzy.Score(q.scorer, filter, candidates)

	out := make([]NamedEntity, len(scored))
	forEachChunk(len(scored), q.workers, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = scored[i].Item.entity
		}
	})

	q.logger.Debug("querier: query complete",
		slog.String("query", filter),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(out)),
		slog.Int("skipped", len(skipped)))

	return &Result{Entities: out, Skipped: skipped}, nil
}

// candidates derives match strings in parallel. Order follows entities.
func (q *Querier) candidates(entities []NamedEntity) ([]matchable, []*InvalidEntityLocationError) {
	slots := make([]matchable, len(entities))
	errs := make([]error, len(entities))
	forEachChunk(len(entities), q.workers, func(start, end int) {
		for i := start; i < end; i++ {
			text, err := entities[i].MatchString()
			slots[i] = matchable{text: text, entity: entities[i]}
			errs[i] = err
		}
	})

	out := make([]matchable, 0, len(entities))
	var skipped []*InvalidEntityLocationError
	for i, m := range slots {
		if errs[i] != nil {
			var invalid *InvalidEntityLocationError
			if errors.As(errs[i], &invalid) {
				skipped = append(skipped, invalid)
			}
			continue
		}
		out = append(out, m)
	}
	return out, skipped
}
