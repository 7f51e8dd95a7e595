package querier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/vaultlink/internal/models"
)

func TestNamedEntity_MatchString(t *testing.T) {
	cases := []struct {
		e    NamedEntity
		want string
	}{
		{NamedEntity{Location: "a.md", Kind: EntityFile}, "a.md"},
		{NamedEntity{Location: "dir/sub/a.md", Kind: EntityFile}, "a.md"},
		{NamedEntity{Location: "dir/a.md", Kind: EntityHeading, Data: "Introduction"}, "a.md#Introduction"},
		{NamedEntity{Location: "b.md", Kind: EntityIndexedBlock, Data: "1"}, "b.md#^1"},
		{NamedEntity{Location: "dir/", Kind: EntityFile}, "dir"},
	}
	for _, tc := range cases {
		got, err := tc.e.MatchString()
		require.NoError(t, err, tc.e.Location)
		assert.Equal(t, tc.want, got)
	}
}

func TestNamedEntity_MatchStringMirrorsQuery(t *testing.T) {
	e := NamedEntity{Location: "notes/a.md", Kind: EntityHeading, Data: "Intro"}
	got, err := e.MatchString()
	require.NoError(t, err)
	assert.Equal(t, BuildQueryString(LinkQuery{FileRef: "a.md", InfileRef: HeadingRef("Intro")}), got)
}

func TestNamedEntity_InvalidLocation(t *testing.T) {
	for _, loc := range []string{"", "/", "..", "dir/.."} {
		e := NamedEntity{Location: loc, Kind: EntityHeading, Data: "x"}
		_, err := e.MatchString()
		require.Error(t, err, "location %q", loc)
		assert.True(t, errors.Is(err, ErrInvalidEntityLocation))

		var invalid *InvalidEntityLocationError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, e, invalid.Entity)
	}
}

func TestFromReferenceable(t *testing.T) {
	cases := []struct {
		in   models.Referenceable
		want NamedEntity
		ok   bool
	}{
		{models.Referenceable{Path: "a.md", Kind: models.KindFile, Line: -1}, NamedEntity{Location: "a.md", Kind: EntityFile, Line: -1}, true},
		{models.Referenceable{Path: "a.md", Kind: models.KindHeading, Text: "H", Line: 2}, NamedEntity{Location: "a.md", Kind: EntityHeading, Data: "H", Line: 2}, true},
		{models.Referenceable{Path: "a.md", Kind: models.KindIndexedBlock, Text: "1", Line: 4}, NamedEntity{Location: "a.md", Kind: EntityIndexedBlock, Data: "1", Line: 4}, true},
		{models.Referenceable{Path: "a.md", Kind: models.KindTag, Text: "draft"}, NamedEntity{}, false},
		{models.Referenceable{Path: "a.md", Kind: models.KindFootnote, Text: "1"}, NamedEntity{}, false},
		{models.Referenceable{Path: "a.md", Kind: "unresolved_file"}, NamedEntity{}, false},
	}
	for _, tc := range cases {
		got, ok := fromReferenceable(tc.in)
		assert.Equal(t, tc.ok, ok, "%+v", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestEntityKind_String(t *testing.T) {
	assert.Equal(t, "file", EntityFile.String())
	assert.Equal(t, "heading", EntityHeading.String())
	assert.Equal(t, "indexed_block", EntityIndexedBlock.String())
	assert.Equal(t, "EntityKind(9)", EntityKind(9).String())
}

func TestEntityKind_TextRoundTrip(t *testing.T) {
	for _, k := range []EntityKind{EntityFile, EntityHeading, EntityIndexedBlock} {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var got EntityKind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}

	var k EntityKind
	assert.Error(t, k.UnmarshalText([]byte("tag")))
}
