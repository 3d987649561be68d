package search

import (
	"fmt"
	"strings"
)

// GenreOp controls how multiple genre terms combine.
type GenreOp string

const (
	GenreAnd GenreOp = "AND"
	GenreOr  GenreOp = "OR"
)

// SortField names the field results are ordered by.
type SortField string

const (
	SortRelevance  SortField = "relevance"
	SortTitle      SortField = "title"
	SortAuthor     SortField = "author"
	SortYear       SortField = "year"
	SortPopularity SortField = "popularity"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Mode selects how strictly terms are matched.
type Mode string

const (
	ModeSmart  Mode = "smart"
	ModeStrict Mode = "strict"
	ModeFuzzy  Mode = "fuzzy"
)

// Intent classifies what the user is trying to do.
type Intent string

const (
	IntentGeneral  Intent = "general"
	IntentSpecific Intent = "specific"
	IntentBrowsing Intent = "browsing"
	IntentResearch Intent = "research"
)

type Language string

const (
	LangEnglish Language = "english"
	LangBengali Language = "bengali"
	LangAny     Language = "any"
)

const (
	DefaultMaxResults = 50
	MaxResultsCap     = 100
)

// Criteria is the structured form of a user's book query. It is produced per
// request by an Extractor and consumed once by the Executor and the renderer.
type Criteria struct {
	Titles              []string  `json:"titles,omitempty"`
	Authors             []string  `json:"authors,omitempty"`
	Genres              []string  `json:"genres,omitempty"`
	GenreOp             GenreOp   `json:"genreOperation,omitempty"`
	Keywords            []string  `json:"keywords,omitempty"`
	DescriptionKeywords []string  `json:"descriptionKeywords,omitempty"`
	YearFrom            *int      `json:"yearFrom,omitempty"`
	YearTo              *int      `json:"yearTo,omitempty"`
	ISBN                string    `json:"isbn,omitempty"`
	ExcludeGenres       []string  `json:"excludeGenres,omitempty"`
	ExcludeAuthors      []string  `json:"excludeAuthors,omitempty"`
	IncludeOutOfStock   bool      `json:"includeOutOfStock,omitempty"`
	MaxResults          int       `json:"maxResults,omitempty"`
	SortBy              SortField `json:"sortBy,omitempty"`
	SortOrder           SortOrder `json:"sortOrder,omitempty"`
	Mode                Mode      `json:"searchMode,omitempty"`
	Intent              Intent    `json:"userIntent,omitempty"`
	Language            Language  `json:"language,omitempty"`
	ExactTitleMatch     bool      `json:"exactTitleMatch,omitempty"`
	ExactAuthorMatch    bool      `json:"exactAuthorMatch,omitempty"`
	PrioritizeRecent    bool      `json:"prioritizeRecentBooks,omitempty"`
}

// IsEmpty reports whether no searchable field is set. Behavioural fields
// (sort, mode, limits) are ignored: a criteria that only carries those
// degenerates to the browse shortcut.
func (c Criteria) IsEmpty() bool {
	return len(c.Titles) == 0 &&
		len(c.Authors) == 0 &&
		len(c.Genres) == 0 &&
		len(c.Keywords) == 0 &&
		len(c.DescriptionKeywords) == 0 &&
		c.YearFrom == nil && c.YearTo == nil &&
		strings.TrimSpace(c.ISBN) == ""
}

// Normalize clamps and defaults the behavioural fields in place.
func (c *Criteria) Normalize() {
	if c.GenreOp != GenreAnd {
		c.GenreOp = GenreOr
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxResults > MaxResultsCap {
		c.MaxResults = MaxResultsCap
	}
	if c.SortBy == "" {
		c.SortBy = SortRelevance
	}
	if c.SortOrder == "" {
		if c.SortBy == SortRelevance {
			c.SortOrder = OrderDesc
		} else {
			c.SortOrder = OrderAsc
		}
	}
	if c.Mode == "" {
		c.Mode = ModeSmart
	}
	if c.Intent == "" {
		c.Intent = IntentGeneral
	}
	if c.Language == "" {
		c.Language = LangAny
	}
}

// String renders the criteria back into a plain query line. For rule-based
// output the rendering is chosen so that extracting it again reproduces the
// same criteria: keywords keep message order, year ranges use the NNNN-NNNN
// form, and the result count uses the "N books" form whose tokens the
// keyword pass drops.
func (c Criteria) String() string {
	parts := make([]string, 0, len(c.Keywords)+2)
	parts = append(parts, c.Keywords...)
	switch {
	case c.YearFrom != nil && c.YearTo != nil && *c.YearFrom == *c.YearTo:
		parts = append(parts, fmt.Sprintf("%d", *c.YearFrom))
	case c.YearFrom != nil && c.YearTo != nil:
		parts = append(parts, fmt.Sprintf("%d-%d", *c.YearFrom, *c.YearTo))
	}
	if c.MaxResults != 0 && c.MaxResults != DefaultMaxResults {
		parts = append(parts, fmt.Sprintf("%d books", c.MaxResults))
	}
	return strings.Join(parts, " ")
}
