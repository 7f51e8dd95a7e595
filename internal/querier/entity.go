package querier

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/starford/vaultlink/internal/models"
)

// ErrInvalidEntityLocation is matched by errors.Is for every
// *InvalidEntityLocationError.
var ErrInvalidEntityLocation = errors.New("invalid entity location")

// InvalidEntityLocationError reports an entity whose location has no file
// name component.
type InvalidEntityLocationError struct {
	Entity NamedEntity
}

func (e *InvalidEntityLocationError) Error() string {
	return fmt.Sprintf("querier: %s entity at %q: no file name in location", e.Entity.Kind, e.Entity.Location)
}

func (e *InvalidEntityLocationError) Unwrap() error {
	return ErrInvalidEntityLocation
}

// EntityKind is the closed set of entity kinds that take part in link completion.
type EntityKind int

const (
	EntityFile EntityKind = iota
	EntityHeading
	EntityIndexedBlock
)

func (k EntityKind) String() string {
	switch k {
	case EntityFile:
		return "file"
	case EntityHeading:
		return "heading"
	case EntityIndexedBlock:
		return "indexed_block"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k EntityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *EntityKind) UnmarshalText(b []byte) error {
	for _, c := range []EntityKind{EntityFile, EntityHeading, EntityIndexedBlock} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("querier: unknown entity kind %q", b)
}

// NamedEntity is a link target: a file, a heading or an indexed block.
// Location is the vault-relative path of the containing document. Data holds
// the heading text or block index and is empty for files.
type NamedEntity struct {
	Location string     `json:"location"`
	Kind     EntityKind `json:"kind"`
	Data     string     `json:"data,omitempty"`
	Line     int        `json:"line"`
}

// fromReferenceable maps a vault node onto an entity. Kinds outside the
// completion set report false.
func fromReferenceable(r models.Referenceable) (NamedEntity, bool) {
	e := NamedEntity{Location: r.Path, Data: r.Text, Line: r.Line}
	switch r.Kind {
	case models.KindFile:
		e.Kind, e.Data = EntityFile, ""
	case models.KindHeading:
		e.Kind = EntityHeading
	case models.KindIndexedBlock:
		e.Kind = EntityIndexedBlock
	default:
		return NamedEntity{}, false
	}
	return e, true
}

// FileName returns the last element of the entity's location.
func (e NamedEntity) FileName() (string, error) {
	name := path.Base(path.Clean(filepath.ToSlash(e.Location)))
	switch name {
	case ".", "..", "/":
		return "", &InvalidEntityLocationError{Entity: e}
	}
	return name, nil
}

// LinkQuery returns the query that addresses exactly this entity, using the
// file name rather than the full path.
func (e NamedEntity) LinkQuery() (LinkQuery, error) {
	name, err := e.FileName()
	if err != nil {
		return LinkQuery{}, err
	}
	switch e.Kind {
	case EntityHeading:
		return LinkQuery{FileRef: name, InfileRef: HeadingRef(e.Data)}, nil
	case EntityIndexedBlock:
		return LinkQuery{FileRef: name, InfileRef: IndexRef(e.Data)}, nil
	default:
		return LinkQuery{FileRef: name}, nil
	}
}

// MatchString derives the canonical string the entity is scored by:
// "name", "name#heading" or "name#^index".
func (e NamedEntity) MatchString() (string, error) {
	q, err := e.LinkQuery()
	if err != nil {
		return "", err
	}
	return BuildQueryString(q), nil
}

// matchable pairs an entity with its derived match string for scoring.
type matchable struct {
	text   string
	entity NamedEntity
}

func (m matchable) MatchString() string { return m.text }
