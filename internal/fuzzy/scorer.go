// Package fuzzy ranks candidate strings against a typed pattern.
//
// The filter is split on whitespace into atoms. A candidate matches when
// every atom matches it, in any order, and its score is the sum of the atom
// scores. A filter with no atoms matches everything.
//
// Each atom is scored by github.com/sahilm/fuzzy (subsequence matching with
// bonuses for adjacent, leading and word-boundary matches). On top of it the
// package applies two "smart" policies per atom:
//
//   - case: matching is case-insensitive unless the atom contains an
//     upper-case letter, in which case every atom rune must also match
//     exactly in order.
//   - normalization: atoms and candidates are NFKC-normalized, and
//     diacritics are folded away on both sides unless the atom itself
//     carries them.
//
// Results are ordered by descending score; equal scores keep input order.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	sfuzzy "github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minChunk keeps tiny inputs on a single worker.
const minChunk = 256

// Matchable is anything that can be ranked by its match string.
type Matchable interface {
	MatchString() string
}

// Scored pairs a candidate with its score and its position in the input.
type Scored[T any] struct {
	Item  T
	Score int
	Index int
}

// Scorer holds scoring options. The zero value scores on the calling goroutine.
type Scorer struct {
	workers int
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers splits scoring across n goroutines. Values below 2 keep scoring
// serial. The result order does not depend on n.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		s.workers = n
	}
}

// NewScorer returns a Scorer configured with opts.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score ranks items against filter. Items with no affinity to the pattern are
// dropped. A filter that is empty or only whitespace matches every item with
// score 0, in input order.
func Score[T Matchable](s *Scorer, filter string, items []T) []Scored[T] {
	if len(items) == 0 {
		return nil
	}
	p := compile(filter)
	if len(p) == 0 {
		out := make([]Scored[T], len(items))
		for i, it := range items {
			out[i] = Scored[T]{Item: it, Index: i}
		}
		return out
	}

	chunks := split(len(items), s.workerCount())
	parts := make([][]Scored[T], len(chunks))

	scoreChunk := func(ci int) {
		c := chunks[ci]
		plain := make(haystack, c.end-c.start)
		for i := range plain {
			plain[i] = normalize(items[c.start+i].MatchString())
		}
		var folded haystack
		if p.folds() {
			folded = make(haystack, len(plain))
			for i, h := range plain {
				folded[i] = foldDiacritics(h)
			}
		}

		total := make([]int, len(plain))
		hits := make([]int, len(plain))
		for _, a := range p {
			hay := plain
			if a.fold {
				hay = folded
			}
			for _, m := range sfuzzy.FindFrom(a.text, hay) {
				if a.caseSensitive && !isSubsequence(a.text, hay[m.Index]) {
					continue
				}
				total[m.Index] += m.Score
				hits[m.Index]++
			}
		}

		var out []Scored[T]
		for i, n := range hits {
			if n == len(p) {
				idx := c.start + i
				out = append(out, Scored[T]{Item: items[idx], Score: total[i], Index: idx})
			}
		}
		parts[ci] = out
	}

	if len(chunks) == 1 {
		scoreChunk(0)
	} else {
		var g errgroup.Group
		for ci := range chunks {
			g.Go(func() error {
				scoreChunk(ci)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := slices.Concat(parts...)
	slices.SortStableFunc(out, func(a, b Scored[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

func (s *Scorer) workerCount() int {
	if s == nil || s.workers < 2 {
		return 1
	}
	return s.workers
}

type chunk struct{ start, end int }

// split cuts n items into at most workers contiguous chunks.
func split(n, workers int) []chunk {
	if workers > 1 && n/workers < minChunk {
		workers = max(1, n/minChunk)
	}
	if workers <= 1 {
		return []chunk{{0, n}}
	}
	size := (n + workers - 1) / workers
	out := make([]chunk, 0, workers)
	for start := 0; start < n; start += size {
		out = append(out, chunk{start, min(start+size, n)})
	}
	return out
}

// haystack adapts prepared strings to sahilm/fuzzy's Source.
type haystack []string

func (h haystack) String(i int) string { return h[i] }
func (h haystack) Len() int            { return len(h) }

// atom is one whitespace-separated word of the filter.
type atom struct {
	text          string
	caseSensitive bool
	fold          bool
}

type pattern []atom

func compile(filter string) pattern {
	fields := strings.Fields(norm.NFKC.String(filter))
	p := make(pattern, len(fields))
	for i, f := range fields {
		p[i] = atom{
			text:          f,
			caseSensitive: hasUpper(f),
			fold:          foldDiacritics(f) == f,
		}
	}
	return p
}

func (p pattern) folds() bool {
	for _, a := range p {
		if a.fold {
			return true
		}
	}
	return false
}

// normalize applies NFKC to a candidate, as compile does to the filter.
func normalize(s string) string {
	if isASCII(s) {
		return s
	}
	return norm.NFKC.String(s)
}

func foldDiacritics(s string) string {
	if isASCII(s) {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// isSubsequence reports whether every rune of pat appears in s in order,
// compared exactly.
func isSubsequence(pat, s string) bool {
	for _, r := range pat {
		i := strings.IndexRune(s, r)
		if i < 0 {
			return false
		}
		s = s[i+utf8.RuneLen(r):]
	}
	return true
}
