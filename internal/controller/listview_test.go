package controller

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	name string
	rank int
	tag  string
}

func newRowView() *ListView[row] {
	return NewListView(
		func(r row, term string) bool { return strings.Contains(strings.ToLower(r.name), strings.ToLower(term)) },
		map[string]Comparator[row]{
			"name": func(a, b row) int { return strings.Compare(a.name, b.name) },
			"rank": func(a, b row) int { return a.rank - b.rank },
		},
	)
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{name: fmt.Sprintf("row-%03d", i), rank: i}
	}
	return out
}

func TestListViewPagination(t *testing.T) {
	v := newRowView()
	v.Reset(rows(60))

	assert.Equal(t, 3, v.TotalPages())
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.PageItems(), PageSize)

	v.SetPage(3)
	assert.Equal(t, 3, v.Page())
	assert.Len(t, v.PageItems(), 10)

	// out-of-range moves are ignored
	v.SetPage(0)
	assert.Equal(t, 3, v.Page())
	v.SetPage(4)
	assert.Equal(t, 3, v.Page())
}

func TestListViewExactPageBoundary(t *testing.T) {
	v := newRowView()
	v.Reset(rows(50))
	assert.Equal(t, 2, v.TotalPages())

	v.Reset(rows(0))
	assert.Equal(t, 0, v.TotalPages())
	assert.Empty(t, v.PageItems())
}

func TestListViewFilterResetsPage(t *testing.T) {
	v := newRowView()
	v.Reset(rows(60))
	v.SetPage(3)

	v.SetSearchTerm("ROW-00")
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 10, v.Len(), "case-insensitive substring match")

	v.SetSearchTerm("")
	assert.Equal(t, 60, v.Len(), "clearing the term restores everything")
}

func TestListViewSortToggle(t *testing.T) {
	v := newRowView()
	v.Reset([]row{{name: "b", rank: 2}, {name: "a", rank: 1}, {name: "c", rank: 3}})

	v.SetSort("name")
	key, dir := v.Sort()
	assert.Equal(t, "name", key)
	assert.Equal(t, Ascending, dir)
	assert.Equal(t, "a", v.All()[0].name)

	// same key flips direction
	v.SetSort("name")
	_, dir = v.Sort()
	assert.Equal(t, Descending, dir)
	assert.Equal(t, "c", v.All()[0].name)

	// switching keys resets to ascending
	v.SetSort("rank")
	key, dir = v.Sort()
	assert.Equal(t, "rank", key)
	assert.Equal(t, Ascending, dir)
	assert.Equal(t, 1, v.All()[0].rank)
}

func TestListViewSortUnknownKeyIgnored(t *testing.T) {
	v := newRowView()
	v.Reset(rows(3))
	v.SetSort("name")
	v.SetSort("bogus")
	key, dir := v.Sort()
	assert.Equal(t, "name", key)
	assert.Equal(t, Ascending, dir)
}

func TestListViewSortIsStable(t *testing.T) {
	v := newRowView()
	v.Reset([]row{
		{name: "x", rank: 1, tag: "first"},
		{name: "x", rank: 1, tag: "second"},
		{name: "x", rank: 1, tag: "third"},
	})
	v.SetSort("rank")
	got := v.All()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{got[0].tag, got[1].tag, got[2].tag})

	// flipping an all-equal column must not reshuffle
	v.SetSort("rank")
	got = v.All()
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{got[0].tag, got[1].tag, got[2].tag})
}

func TestListViewSortDoesNotMutateCanonical(t *testing.T) {
	v := newRowView()
	v.Reset([]row{{name: "b"}, {name: "a"}})
	v.SetSort("name")
	items := v.Items()
	assert.Equal(t, "b", items[0].name, "canonical order survives sorting")
}

func TestListViewMutations(t *testing.T) {
	v := newRowView()
	v.Reset(rows(2))

	v.Insert(row{name: "added"})
	assert.Equal(t, 3, v.Len())

	ok := v.Replace(func(r row) bool { return r.name == "added" }, row{name: "swapped"})
	assert.True(t, ok)
	assert.False(t, v.Replace(func(r row) bool { return false }, row{}))

	assert.True(t, v.Remove(func(r row) bool { return r.name == "swapped" }))
	assert.Equal(t, 2, v.Len())
}

func TestListViewPageClampsAfterShrink(t *testing.T) {
	v := newRowView()
	v.Reset(rows(60))
	v.SetPage(3)
	for i := 0; i < 30; i++ {
		v.Remove(func(r row) bool { return true })
	}
	assert.Equal(t, 2, v.Page(), "page clamps into range when the collection shrinks")
}
