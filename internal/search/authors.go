package search

import (
	"sort"
	"strings"
)

// AuthorAliases is an immutable, symmetric relation over author-name
// spellings. It is built once at startup; lookups are safe for concurrent
// use without locking.
type AuthorAliases struct {
	// classes maps every lowercased spelling to its full equivalence class
	// (lowercased, sorted, including the spelling itself).
	classes map[string][]string
}

// authorSeed lists the curated classes: one canonical spelling per entry
// with its accepted variants in other scripts.
var authorSeed = map[string][]string{
	"জে.কে. রোলিং":             {"j.k. rowling", "jk rowling", "joanne rowling", "rowling"},
	"রবীন্দ্রনাথ ঠাকুর":        {"rabindranath tagore", "tagore", "rabindranath thakur", "রবি ঠাকুর", "রবীন্দ্রনাথ", "রবি"},
	"কাজী নজরুল ইসলাম":         {"kazi nazrul islam", "nazrul islam", "nazrul", "নজরুল"},
	"শরৎচন্দ্র চট্টোপাধ্যায়":   {"sarat chandra chattopadhyay", "sharatchandra", "sarat chandra", "শরৎচন্দ্র", "শরৎ"},
	"বঙ্কিমচন্দ্র চট্টোপাধ্যায়": {"bankim chandra chattopadhyay", "bankim chandra", "bankimchandra", "বঙ্কিম"},
	"হুমায়ূন আহমেদ":            {"humayun ahmed", "humayun ahmad", "হুমায়ূন"},
	"আহমদ ছফা":                 {"ahmad sofa", "ahmed sofa"},
	"জহির রায়হান":              {"zahir raihan", "jahir raihan"},
	"শহীদুল জহির":              {"shahidul jahir", "shahidul zahir"},
	"আল মাহমুদ":                {"al mahmud", "al-mahmud"},
	"আনিসুল হক":                {"anisul hoque", "anisul haq"},
}

// NewAuthorAliases materializes the closure of the seed relation: every
// spelling in a class, key included, maps to the same full class.
func NewAuthorAliases() *AuthorAliases {
	classes := make(map[string][]string, len(authorSeed)*4)
	for key, variants := range authorSeed {
		class := make([]string, 0, len(variants)+1)
		class = append(class, strings.ToLower(key))
		for _, v := range variants {
			class = append(class, strings.ToLower(v))
		}
		sort.Strings(class)
		for _, member := range class {
			classes[member] = class
		}
	}
	return &AuthorAliases{classes: classes}
}

// Resolve returns the deduplicated set of spellings to search for a query.
// The query itself is always included; every class whose members overlap the
// query (as a substring in either direction) contributes all its members.
func (a *AuthorAliases) Resolve(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := map[string]bool{q: true}
	variants := []string{q}
	for member, class := range a.classes {
		if !substringEither(member, q) {
			continue
		}
		for _, v := range class {
			if !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
		}
	}
	sort.Strings(variants)
	return variants
}

// Matches reports whether a book's author field matches any of the query
// spellings: directly (case-insensitive substring either way) or through a
// shared equivalence class.
func (a *AuthorAliases) Matches(bookAuthor string, queries []string) bool {
	author := strings.ToLower(strings.TrimSpace(bookAuthor))
	for _, query := range queries {
		q := strings.ToLower(strings.TrimSpace(query))
		if substringEither(author, q) {
			return true
		}
		if a.inClass(author, a.classes[q]) {
			return true
		}
		// The query may only partially name a class member.
		for member, class := range a.classes {
			if substringEither(member, q) && a.inClass(author, class) {
				return true
			}
		}
	}
	return false
}

func (a *AuthorAliases) inClass(author string, class []string) bool {
	for _, member := range class {
		if substringEither(member, author) {
			return true
		}
	}
	return false
}

func substringEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
