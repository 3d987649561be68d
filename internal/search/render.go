package search

import (
	"fmt"
	"strings"

	"smartlibrary/internal/entity"
)

// Renderer language hints. Anything other than "bn" or "en" yields the
// code-switched Banglish output.
const (
	HintBengali = "bn"
	HintEnglish = "en"
)

// Render produces the localized reply line for a result set.
func Render(books []entity.Book, c Criteria, hint string) string {
	if len(books) == 0 {
		return noResultsMessage(c, hint)
	}
	count := fmt.Sprintf("%d", len(books))
	summary := searchSummary(c, hint)
	if summary == "" {
		return pick(hint,
			"আপনার অনুসন্ধানের সাথে "+count+"টি বই পাওয়া গেছে:",
			"Found "+count+" books matching your search:",
			"পাওয়া গেছে "+count+"টি বই:")
	}
	return pick(hint,
		summary+" এর জন্য "+count+"টি বই পাওয়া গেছে:",
		"Found "+count+" books for "+summary+":",
		summary+" এর জন্য পাওয়া গেছে "+count+"টি বই:")
}

// RenderError is the localized "something went wrong" reply used whenever
// the pipeline fails unexpectedly.
func RenderError(hint string) string {
	return pick(hint,
		"দুঃখিত, কিছু সমস্যা হয়েছে। আবার চেষ্টা করুন।",
		"Sorry, something went wrong. Please try again.",
		"দুঃখিত, কিছু problem হয়েছে। আবার try করুন।")
}

func noResultsMessage(c Criteria, hint string) string {
	summary := searchSummary(c, hint)
	if summary == "" {
		return pick(hint,
			"দুঃখিত, আপনার অনুসন্ধানের সাথে মিলে যাওয়া কোনো বই পাওয়া যায়নি। অন্য কিছু খুঁজে দেখুন।",
			"Sorry, no books found matching your search. Try searching for something else.",
			"দুঃখিত, কোনো বই পাওয়া যায়নি। অন্য কিছু search করে দেখুন।")
	}
	return pick(hint,
		summary+" এর জন্য কোনো বই পাওয়া যায়নি। অন্য কিছু খুঁজে দেখুন।",
		"No books found for "+summary+". Try searching for something else.",
		summary+" এর জন্য কোনো books পাওয়া যায়নি। অন্য কিছু try করুন।")
}

// searchSummary joins the year, genre and author clauses, in that order.
func searchSummary(c Criteria, hint string) string {
	var parts []string

	if c.YearFrom != nil || c.YearTo != nil {
		switch {
		case c.YearFrom != nil && c.YearTo != nil && *c.YearFrom == *c.YearTo:
			year := fmt.Sprintf("%d", *c.YearFrom)
			parts = append(parts, pick(hint,
				year+" সালের বই",
				"books from "+year,
				year+" সালের books"))
		case c.YearFrom != nil && c.YearTo != nil:
			span := fmt.Sprintf("%d-%d", *c.YearFrom, *c.YearTo)
			parts = append(parts, pick(hint,
				span+" সালের বই",
				"books from "+span,
				span+" সালের books"))
		case c.YearFrom != nil:
			year := fmt.Sprintf("%d", *c.YearFrom)
			parts = append(parts, pick(hint,
				year+" সালের পরের বই",
				"books after "+year,
				year+" সালের পরের books"))
		default:
			year := fmt.Sprintf("%d", *c.YearTo)
			parts = append(parts, pick(hint,
				year+" সালের আগের বই",
				"books before "+year,
				year+" সালের আগের books"))
		}
	}

	if len(c.Genres) > 0 {
		genres := strings.Join(c.Genres, ", ")
		parts = append(parts, pick(hint,
			genres+" ধরনের বই",
			genres+" books",
			genres+" genre এর books"))
	}

	if len(c.Authors) > 0 {
		authors := strings.Join(c.Authors, ", ")
		parts = append(parts, pick(hint,
			authors+" এর বই",
			"books by "+authors,
			authors+" এর books"))
	}

	return strings.Join(parts, ", ")
}

func pick(hint, bangla, english, mixed string) string {
	switch hint {
	case HintBengali:
		return bangla
	case HintEnglish:
		return english
	default:
		return mixed
	}
}
