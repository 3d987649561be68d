package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestExtractRules_Years(t *testing.T) {
	tests := []struct {
		name    string
		message string
		from    *int
		to      *int
	}{
		{"range with dash", "fantasy books 1990-2000", intPtr(1990), intPtr(2000)},
		{"range with to", "books 1990 to 2000", intPtr(1990), intPtr(2000)},
		{"between", "books published between 1950 and 1960", intPtr(1950), intPtr(1960)},
		{"after", "novels after 2010", intPtr(2010), nil},
		{"before", "books before 1950", nil, intPtr(1950)},
		{"in year", "books in 1985", intPtr(1985), intPtr(1985)},
		{"bare year", "1997 fantasy", intPtr(1997), intPtr(1997)},
		{"bare year out of range", "books from 0500", nil, nil},
		{"no year", "mystery novels", nil, nil},
		// The range pattern outranks the between pattern.
		{"range beats after", "after 1990-2000", intPtr(1990), intPtr(2000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ExtractRules(tt.message)
			assert.Equal(t, tt.from, c.YearFrom)
			assert.Equal(t, tt.to, c.YearTo)
		})
	}
}

func TestExtractRules_Genres(t *testing.T) {
	c := ExtractRules("looking for a detective novel")
	assert.Equal(t, []string{"fiction", "mystery"}, c.Genres)

	c = ExtractRules("wizard and dragon stories")
	assert.Contains(t, c.Genres, "fantasy")
	assert.Contains(t, c.Genres, "fiction")

	c = ExtractRules("java programming textbook")
	assert.Contains(t, c.Genres, "programming")
	assert.Contains(t, c.Genres, "education")

	c = ExtractRules("hello there")
	assert.Empty(t, c.Genres)
}

func TestExtractRules_GenreOperation(t *testing.T) {
	tests := []struct {
		message string
		op      GenreOp
	}{
		{"books with both fantasy and mystery", GenreAnd},
		{"fantasy and mystery", GenreAnd},
		{"fantasy or mystery", GenreOr},
		{"either fantasy either mystery", GenreOr},
		{"fantasy mystery", GenreOr},
		// AND markers win over OR markers.
		{"either fantasy and mystery", GenreAnd},
		{"ফ্যান্টাসি এবং রহস্য", GenreAnd},
		{"ফ্যান্টাসি অথবা রহস্য", GenreOr},
	}
	for _, tt := range tests {
		c := ExtractRules(tt.message)
		assert.Equal(t, tt.op, c.GenreOp, "message %q", tt.message)
	}
}

func TestExtractRules_Intent(t *testing.T) {
	c := ExtractRules(`I want "Gitanjali"`)
	assert.Equal(t, IntentSpecific, c.Intent)
	assert.True(t, c.ExactTitleMatch)
	assert.True(t, c.ExactAuthorMatch)
	assert.Equal(t, ModeStrict, c.Mode)

	c = ExtractRules("papers for my thesis research")
	assert.Equal(t, IntentResearch, c.Intent)
	assert.True(t, c.PrioritizeRecent)
	assert.True(t, c.IncludeOutOfStock)
	assert.Equal(t, ModeStrict, c.Mode)

	c = ExtractRules("let me browse the shelves")
	assert.Equal(t, IntentBrowsing, c.Intent)
	assert.Equal(t, ModeFuzzy, c.Mode)
	assert.Equal(t, 75, c.MaxResults)

	c = ExtractRules("mystery novels")
	assert.Equal(t, IntentGeneral, c.Intent)
	assert.Equal(t, ModeSmart, c.Mode)
}

func TestExtractRules_Sort(t *testing.T) {
	tests := []struct {
		message string
		field   SortField
		order   SortOrder
	}{
		{"latest mystery novels", SortYear, OrderDesc},
		{"classic literature", SortYear, OrderAsc},
		{"most popular fantasy", SortPopularity, OrderDesc},
		{"alphabetical list please", SortTitle, OrderAsc},
		{"sorted by author please", SortAuthor, OrderAsc},
		{"mystery novels", SortRelevance, OrderDesc},
	}
	for _, tt := range tests {
		c := ExtractRules(tt.message)
		assert.Equal(t, tt.field, c.SortBy, "message %q", tt.message)
		assert.Equal(t, tt.order, c.SortOrder, "message %q", tt.message)
	}
}

func TestExtractRules_Exclusions(t *testing.T) {
	c := ExtractRules("show me fiction but not romance")
	assert.Equal(t, []string{"romance"}, c.ExcludeGenres)
	assert.Empty(t, c.ExcludeAuthors)

	c = ExtractRules("fantasy novels except Rowling")
	assert.Equal(t, []string{"Rowling"}, c.ExcludeAuthors)

	c = ExtractRules("novels without tagore, please")
	assert.Equal(t, []string{"tagore"}, c.ExcludeAuthors)

	c = ExtractRules("everything please")
	assert.Empty(t, c.ExcludeGenres)
	assert.Empty(t, c.ExcludeAuthors)
}

func TestExtractRules_Language(t *testing.T) {
	assert.Equal(t, LangEnglish, ExtractRules("mystery novels").Language)
	assert.Equal(t, LangBengali, ExtractRules("রহস্য উপন্যাস").Language)
	assert.Equal(t, LangAny, ExtractRules("রবীন্দ্রনাথ এর poetry").Language)
	assert.Equal(t, LangEnglish, ExtractRules("1234 5678").Language)
}

func TestExtractRules_Quantity(t *testing.T) {
	tests := []struct {
		message string
		max     int
	}{
		{"show me 5 books", 5},
		{"200 books please", 100},
		{"at least 60 mysteries", 60},
		{"at least 20 mysteries", 50},
		{"a few novels", 10},
		{"lots of novels", 100},
		{"mystery novels", 50},
	}
	for _, tt := range tests {
		c := ExtractRules(tt.message)
		assert.Equal(t, tt.max, c.MaxResults, "message %q", tt.message)
	}
}

func TestExtractRules_Availability(t *testing.T) {
	c := ExtractRules("mysteries in stock")
	assert.False(t, c.IncludeOutOfStock)

	c = ExtractRules("all books by tagore including unavailable")
	assert.True(t, c.IncludeOutOfStock)
}

func TestExtractRules_Keywords(t *testing.T) {
	c := ExtractRules("I am looking for a book about magic!")
	assert.Equal(t, []string{"magic"}, c.Keywords)
	assert.Equal(t, []string{"magic"}, c.DescriptionKeywords)

	c = ExtractRules("books published in 1995 by the author")
	assert.Empty(t, c.Keywords)

	c = ExtractRules("")
	assert.Empty(t, c.Keywords)
	assert.True(t, c.IsEmpty())
}

func TestExtractRules_NeverPanicsAndNormalizes(t *testing.T) {
	for _, msg := range []string{"", "   ", "!!!", "a b c", "নীল", "\x00\x01"} {
		c := ExtractRules(msg)
		assert.NotZero(t, c.MaxResults)
		assert.NotEmpty(t, c.SortBy)
		assert.NotEmpty(t, c.Mode)
		assert.NotEmpty(t, c.Intent)
	}
}
