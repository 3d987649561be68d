package search

import (
	"context"
	"sort"
	"strings"

	"smartlibrary/internal/entity"
)

const browseLimit = 10

// Year-window sentinels for open-ended ranges.
const (
	yearFloor   = 1000
	yearCeiling = 2030
)

// Executor runs a Criteria against the catalog using a priority cascade:
// the first tier that produces matches wins and later candidate-producing
// tiers are skipped. Results are deduplicated by book id.
type Executor struct {
	catalog Catalog
	aliases *AuthorAliases
}

func NewExecutor(catalog Catalog, aliases *AuthorAliases) *Executor {
	if aliases == nil {
		aliases = NewAuthorAliases()
	}
	return &Executor{catalog: catalog, aliases: aliases}
}

// Execute returns the ordered result set for c. Empty criteria degenerate to
// the browse shortcut: the first browseLimit available books.
func (e *Executor) Execute(ctx context.Context, c Criteria) ([]entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.Normalize()

	if c.IsEmpty() {
		books, err := e.catalog.Available(ctx)
		if err != nil {
			return nil, err
		}
		if len(books) > browseLimit {
			books = books[:browseLimit]
		}
		return books, nil
	}

	acc := newAccumulator()
	found := false

	// Tier 1: title and description both constrained, over the cross
	// product of the two term lists.
	if len(c.Titles) > 0 && len(c.DescriptionKeywords) > 0 {
		for _, title := range c.Titles {
			for _, keyword := range c.DescriptionKeywords {
				books, err := e.catalog.ByTitleAndDescriptionContains(ctx, title, keyword)
				if err != nil {
					return nil, err
				}
				if len(books) > 0 {
					acc.add(books)
					found = true
				}
			}
		}
	}

	// Tier 2: title only.
	if !found && len(c.Titles) > 0 {
		for _, title := range c.Titles {
			books, err := e.catalog.ByTitleContains(ctx, title)
			if err != nil {
				return nil, err
			}
			if len(books) > 0 {
				acc.add(books)
				found = true
			}
		}
	}

	// Tier 3: description only.
	if !found && len(c.DescriptionKeywords) > 0 {
		for _, keyword := range c.DescriptionKeywords {
			books, err := e.catalog.ByDescriptionContains(ctx, keyword)
			if err != nil {
				return nil, err
			}
			if len(books) > 0 {
				acc.add(books)
				found = true
			}
		}
	}

	// Exact-match tiers succeeded: only the year window and author
	// restriction post-filters apply, never the remaining tiers.
	if found && acc.len() > 0 {
		results := acc.ordered()
		if c.YearFrom != nil || c.YearTo != nil {
			results = filterYearWindow(results, c.YearFrom, c.YearTo)
		}
		if len(c.Authors) > 0 {
			results = e.filterAuthors(results, c.Authors)
		}
		return e.finalize(results, c), nil
	}

	// Tier 4: multilingual author search.
	if len(c.Authors) > 0 {
		for _, author := range c.Authors {
			books, err := e.searchByAuthor(ctx, author)
			if err != nil {
				return nil, err
			}
			acc.add(books)
			found = true
		}
	}

	// Tier 5: genre search with AND/OR semantics, year filtered.
	if !found && len(c.Genres) > 0 {
		var (
			books []entity.Book
			err   error
		)
		if c.GenreOp == GenreAnd {
			books, err = e.searchAllGenres(ctx, c.Genres)
		} else {
			books, err = e.searchAnyGenre(ctx, c.Genres)
		}
		if err != nil {
			return nil, err
		}
		if c.YearFrom != nil || c.YearTo != nil {
			books = filterYearWindow(books, c.YearFrom, c.YearTo)
		}
		acc.add(books)
		found = true
	}

	// Tier 6: year window only.
	if !found && (c.YearFrom != nil || c.YearTo != nil) {
		books, err := e.searchByYear(ctx, c.YearFrom, c.YearTo)
		if err != nil {
			return nil, err
		}
		acc.add(books)
	}

	return e.finalize(acc.ordered(), c), nil
}

// searchByAuthor unions direct and alias-expanded author lookups.
func (e *Executor) searchByAuthor(ctx context.Context, query string) ([]entity.Book, error) {
	acc := newAccumulator()

	books, err := e.catalog.ByAuthorContains(ctx, query)
	if err != nil {
		return nil, err
	}
	acc.add(books)

	for _, variant := range e.aliases.Resolve(query) {
		if strings.TrimSpace(variant) == "" {
			continue
		}
		books, err := e.catalog.ByAuthorContains(ctx, variant)
		if err != nil {
			return nil, err
		}
		acc.add(books)
	}
	return acc.ordered(), nil
}

// searchAllGenres keeps only books whose genre field carries every requested
// genre. Candidates come from a single query on the first genre.
func (e *Executor) searchAllGenres(ctx context.Context, genres []string) ([]entity.Book, error) {
	candidates, err := e.catalog.ByGenreContains(ctx, genres[0])
	if err != nil {
		return nil, err
	}
	var out []entity.Book
	for _, b := range candidates {
		field := strings.ToLower(b.Genre)
		all := true
		for _, g := range genres {
			if !strings.Contains(field, strings.ToLower(g)) {
				all = false
				break
			}
		}
		if all {
			out = append(out, b)
		}
	}
	return out, nil
}

func (e *Executor) searchAnyGenre(ctx context.Context, genres []string) ([]entity.Book, error) {
	acc := newAccumulator()
	for _, g := range genres {
		books, err := e.catalog.ByGenreContains(ctx, g)
		if err != nil {
			return nil, err
		}
		acc.add(books)
	}
	return acc.ordered(), nil
}

func (e *Executor) searchByYear(ctx context.Context, from, to *int) ([]entity.Book, error) {
	switch {
	case from != nil && to != nil && *from == *to:
		return e.catalog.ByYear(ctx, *from)
	case from != nil && to != nil:
		return e.catalog.ByYearBetween(ctx, *from, *to)
	case from != nil:
		return e.catalog.ByYearBetween(ctx, *from, yearCeiling)
	case to != nil:
		return e.catalog.ByYearBetween(ctx, yearFloor, *to)
	}
	return nil, nil
}

// finalize applies the exclusion post-filters, sorts and caps the result.
func (e *Executor) finalize(books []entity.Book, c Criteria) []entity.Book {
	if len(c.ExcludeGenres) > 0 {
		books = filterOut(books, func(b entity.Book) bool {
			field := strings.ToLower(b.Genre)
			for _, g := range c.ExcludeGenres {
				if strings.Contains(field, strings.ToLower(g)) {
					return true
				}
			}
			return false
		})
	}
	if len(c.ExcludeAuthors) > 0 {
		books = filterOut(books, func(b entity.Book) bool {
			return e.aliases.Matches(b.Author, c.ExcludeAuthors) ||
				(b.AuthorBengali != "" && e.aliases.Matches(b.AuthorBengali, c.ExcludeAuthors))
		})
	}

	sortBooks(books, c.SortBy, c.SortOrder)

	if c.MaxResults > 0 && len(books) > c.MaxResults {
		books = books[:c.MaxResults]
	}
	return books
}

func (e *Executor) filterAuthors(books []entity.Book, authors []string) []entity.Book {
	var out []entity.Book
	for _, b := range books {
		if e.aliases.Matches(b.Author, authors) ||
			(b.AuthorBengali != "" && e.aliases.Matches(b.AuthorBengali, authors)) {
			out = append(out, b)
		}
	}
	return out
}

func filterYearWindow(books []entity.Book, from, to *int) []entity.Book {
	var out []entity.Book
	for _, b := range books {
		if from != nil && b.PublishedYear < *from {
			continue
		}
		if to != nil && b.PublishedYear > *to {
			continue
		}
		out = append(out, b)
	}
	return out
}

func filterOut(books []entity.Book, drop func(entity.Book) bool) []entity.Book {
	var out []entity.Book
	for _, b := range books {
		if !drop(b) {
			out = append(out, b)
		}
	}
	return out
}

// sortBooks orders results by the requested field. Relevance has no scoring
// model here; it falls back to a stable order by book id so identical inputs
// yield identical output. Popularity uses copies in stock as its proxy.
func sortBooks(books []entity.Book, field SortField, order SortOrder) {
	less := func(a, b entity.Book) bool { return a.ID < b.ID }
	switch field {
	case SortTitle:
		less = func(a, b entity.Book) bool {
			if !strings.EqualFold(a.Title, b.Title) {
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			}
			return a.ID < b.ID
		}
	case SortAuthor:
		less = func(a, b entity.Book) bool {
			if !strings.EqualFold(a.Author, b.Author) {
				return strings.ToLower(a.Author) < strings.ToLower(b.Author)
			}
			return a.ID < b.ID
		}
	case SortYear:
		less = func(a, b entity.Book) bool {
			if a.PublishedYear != b.PublishedYear {
				return a.PublishedYear < b.PublishedYear
			}
			return a.ID < b.ID
		}
	case SortPopularity:
		less = func(a, b entity.Book) bool {
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
			return a.ID < b.ID
		}
	case SortRelevance:
		sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
		return
	}
	if order == OrderDesc {
		sort.Slice(books, func(i, j int) bool { return less(books[j], books[i]) })
		return
	}
	sort.Slice(books, func(i, j int) bool { return less(books[i], books[j]) })
}

// accumulator collects books across queries with set semantics, keeping
// first-seen order.
type accumulator struct {
	seen  map[string]bool
	books []entity.Book
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]bool)}
}

func (a *accumulator) add(books []entity.Book) {
	for _, b := range books {
		if a.seen[b.ID] {
			continue
		}
		a.seen[b.ID] = true
		a.books = append(a.books, b)
	}
}

func (a *accumulator) len() int { return len(a.books) }

func (a *accumulator) ordered() []entity.Book { return a.books }
