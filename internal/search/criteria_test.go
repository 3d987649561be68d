package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriteria_Normalize_Defaults(t *testing.T) {
	var c Criteria
	c.Normalize()

	assert.Equal(t, GenreOr, c.GenreOp)
	assert.Equal(t, DefaultMaxResults, c.MaxResults)
	assert.Equal(t, SortRelevance, c.SortBy)
	assert.Equal(t, OrderDesc, c.SortOrder)
	assert.Equal(t, ModeSmart, c.Mode)
	assert.Equal(t, IntentGeneral, c.Intent)
	assert.Equal(t, LangAny, c.Language)
}

func TestCriteria_Normalize_Clamps(t *testing.T) {
	c := Criteria{MaxResults: 500}
	c.Normalize()
	assert.Equal(t, MaxResultsCap, c.MaxResults)

	c = Criteria{MaxResults: -3}
	c.Normalize()
	assert.Equal(t, DefaultMaxResults, c.MaxResults)
}

func TestCriteria_Normalize_SortOrderDependsOnField(t *testing.T) {
	c := Criteria{SortBy: SortTitle}
	c.Normalize()
	assert.Equal(t, OrderAsc, c.SortOrder)

	c = Criteria{SortBy: SortRelevance}
	c.Normalize()
	assert.Equal(t, OrderDesc, c.SortOrder)

	// An explicit order is never overridden.
	c = Criteria{SortBy: SortTitle, SortOrder: OrderDesc}
	c.Normalize()
	assert.Equal(t, OrderDesc, c.SortOrder)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{MaxResults: 20, SortBy: SortTitle, Mode: ModeFuzzy}.IsEmpty())
	assert.True(t, Criteria{ISBN: "   "}.IsEmpty())

	year := 1997
	assert.False(t, Criteria{Titles: []string{"Gitanjali"}}.IsEmpty())
	assert.False(t, Criteria{Authors: []string{"Tagore"}}.IsEmpty())
	assert.False(t, Criteria{Genres: []string{"poetry"}}.IsEmpty())
	assert.False(t, Criteria{Keywords: []string{"magic"}}.IsEmpty())
	assert.False(t, Criteria{DescriptionKeywords: []string{"wizard"}}.IsEmpty())
	assert.False(t, Criteria{YearFrom: &year}.IsEmpty())
	assert.False(t, Criteria{YearTo: &year}.IsEmpty())
	assert.False(t, Criteria{ISBN: "9780747532699"}.IsEmpty())
}

// Rule-based extraction of a rendered criteria line reproduces the criteria.
func TestCriteria_String_RoundTrip(t *testing.T) {
	messages := []string{
		"fantasy novels 1990-2000",
		"detective story in 1985",
		"show me 5 books about space",
		"mystery detective crime",
	}
	for _, msg := range messages {
		first := ExtractRules(msg)
		second := ExtractRules(first.String())
		assert.Equal(t, first, second, "message %q", msg)
	}
}

func TestCriteria_String_YearForms(t *testing.T) {
	from, to := 1990, 2000
	c := Criteria{Keywords: []string{"fantasy"}, YearFrom: &from, YearTo: &to}
	assert.Equal(t, "fantasy 1990-2000", c.String())

	same := 1985
	c = Criteria{Keywords: []string{"detective"}, YearFrom: &same, YearTo: &same}
	assert.Equal(t, "detective 1985", c.String())

	c = Criteria{Keywords: []string{"space"}, MaxResults: 5}
	assert.Equal(t, "space 5 books", c.String())
}
