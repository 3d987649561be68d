package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// genreTriggers maps a catalog genre to the message substrings that imply it.
// One trigger is enough to add the genre.
var genreTriggers = map[string][]string{
	"fiction":         {"fiction", "novel", "story"},
	"romance":         {"romance", "love", "romantic"},
	"mystery":         {"mystery", "detective", "crime", "thriller"},
	"science-fiction": {"science fiction", "sci-fi", "space", "future"},
	"fantasy":         {"fantasy", "magic", "dragon", "wizard"},
	"biography":       {"biography", "memoir", "life story"},
	"history":         {"history", "historical", "past"},
	"self-help":       {"self help", "improvement", "motivation", "success"},
	"children":        {"children", "kids", "child"},
	"education":       {"education", "learning", "study", "academic", "textbook"},
	"programming":     {"programming", "coding", "software", "developer", "computer science", "algorithm", "java", "python", "javascript"},
	"technology":      {"technology", "tech", "digital", "internet", "web", "mobile", "app", "development"},
	"business":        {"business", "management", "entrepreneurship", "startup", "finance", "economics"},
	"science":         {"science", "physics", "chemistry", "biology", "mathematics", "engineering"},
	"health":          {"health", "medical", "medicine", "fitness", "nutrition", "wellness"},
	"art":             {"art", "design", "photography", "painting", "creative", "drawing"},
}

var stopWords = map[string]bool{
	"i": true, "am": true, "is": true, "are": true, "the": true, "a": true,
	"an": true, "book": true, "books": true, "looking": true, "for": true,
	"want": true, "need": true, "find": true, "do": true, "you": true,
	"have": true, "any": true, "some": true, "can": true, "could": true,
	"would": true, "should": true, "about": true, "on": true, "in": true,
	"at": true, "by": true, "with": true, "from": true, "to": true,
	"published": true, "written": true, "author": true, "title": true,
}

var andMarkers = []string{
	"both", " and ", "with both", "containing all", "must have both",
	"all of", "include all",
	"এবং", "আর", " ও ", "উভয়", "দুটোই", "সব", "সকল",
}

var orMarkers = []string{
	" or ", "either", "any of", "one of", "some of",
	"অথবা", "বা", "কিংবা", "যেকোনো", "কোনো একটি",
}

var exclusionMarkers = []string{"not ", "except ", "but not ", "avoid ", "exclude ", "without "}

// knownAuthors classifies lowercase exclusion targets as authors rather than
// free keywords.
var knownAuthors = []string{
	"rowling", "tagore", "nazrul", "humayun", "sarat chandra", "bankim",
	"ahmad sofa", "zahir raihan", "shahidul jahir", "al mahmud", "anisul",
	"রবীন্দ্রনাথ", "নজরুল", "হুমায়ূন", "শরৎচন্দ্র", "বঙ্কিম",
}

var (
	yearRangeRe    = regexp.MustCompile(`\b(\d{4})\s*(?:[-–—]|to)\s*(\d{4})\b`)
	yearBetweenRe  = regexp.MustCompile(`between\s+(\d{4})\s+and\s+(\d{4})`)
	yearAfterRe    = regexp.MustCompile(`after\s+(\d{4})`)
	yearBeforeRe   = regexp.MustCompile(`before\s+(\d{4})`)
	yearInRe       = regexp.MustCompile(`in\s+(\d{4})`)
	yearBareRe     = regexp.MustCompile(`\b(\d{4})\b`)
	countRe        = regexp.MustCompile(`\b(\d+)\s*(?:books|results)\b`)
	atLeastRe      = regexp.MustCompile(`at least\s+(\d+)`)
	quotedRe       = regexp.MustCompile(`"[^"]+"|'[^']+'`)
	nonWordRe      = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)
	exclusionStopRe = regexp.MustCompile(`[,.]`)
)

// ExtractRules is the deterministic fallback extractor. It never fails: any
// message yields a well formed, normalized Criteria.
func ExtractRules(message string) Criteria {
	lower := strings.ToLower(strings.TrimSpace(message))

	var c Criteria
	extractYears(lower, &c)
	extractGenres(lower, &c)
	c.GenreOp = detectGenreOp(message)
	detectIntent(message, lower, &c)
	c.SortBy, c.SortOrder = detectSort(lower)
	detectExclusions(message, &c)
	c.Language = detectLanguage(message)
	if c.MaxResults == 0 {
		c.MaxResults = detectQuantity(lower)
	}
	detectAvailability(lower, &c)

	keywords := extractKeywords(lower)
	c.Keywords = keywords
	c.DescriptionKeywords = append([]string(nil), keywords...)

	c.Normalize()
	return c
}

// extractYears applies the year patterns in declared order; the first match
// wins.
func extractYears(message string, c *Criteria) {
	if m := yearRangeRe.FindStringSubmatch(message); m != nil {
		c.YearFrom = atoiPtr(m[1])
		c.YearTo = atoiPtr(m[2])
		return
	}
	if m := yearBetweenRe.FindStringSubmatch(message); m != nil {
		c.YearFrom = atoiPtr(m[1])
		c.YearTo = atoiPtr(m[2])
		return
	}
	if m := yearAfterRe.FindStringSubmatch(message); m != nil {
		c.YearFrom = atoiPtr(m[1])
		return
	}
	if m := yearBeforeRe.FindStringSubmatch(message); m != nil {
		c.YearTo = atoiPtr(m[1])
		return
	}
	if m := yearInRe.FindStringSubmatch(message); m != nil {
		c.YearFrom = atoiPtr(m[1])
		c.YearTo = atoiPtr(m[1])
		return
	}
	if m := yearBareRe.FindStringSubmatch(message); m != nil {
		year, _ := strconv.Atoi(m[1])
		if year >= 1000 && year <= 2030 {
			c.YearFrom = &year
			c.YearTo = &year
		}
	}
}

func extractGenres(message string, c *Criteria) {
	// Deterministic genre order for stable criteria output.
	for _, genre := range genreOrder {
		for _, trigger := range genreTriggers[genre] {
			if strings.Contains(message, trigger) {
				c.Genres = append(c.Genres, genre)
				break
			}
		}
	}
}

var genreOrder = []string{
	"fiction", "romance", "mystery", "science-fiction", "fantasy",
	"biography", "history", "self-help", "children", "education",
	"programming", "technology", "business", "science", "health", "art",
}

// detectGenreOp scans the raw, case-preserved message; AND markers are
// checked first so that ambiguous inputs ("either X and Y") resolve to AND.
func detectGenreOp(raw string) GenreOp {
	for _, marker := range andMarkers {
		if strings.Contains(raw, marker) {
			return GenreAnd
		}
	}
	for _, marker := range orMarkers {
		if strings.Contains(raw, marker) {
			return GenreOr
		}
	}
	return GenreOr
}

func detectIntent(raw, lower string, c *Criteria) {
	switch {
	case quotedRe.MatchString(raw) ||
		strings.Contains(lower, "exact") ||
		strings.Contains(lower, "precisely") ||
		strings.Contains(lower, "specific"):
		c.Intent = IntentSpecific
		c.ExactTitleMatch = true
		c.ExactAuthorMatch = true
		c.Mode = ModeStrict
	case containsAny(lower, "research", "study", "academic", "paper", "thesis"):
		c.Intent = IntentResearch
		c.PrioritizeRecent = true
		c.Mode = ModeStrict
		c.IncludeOutOfStock = true
	case containsAny(lower, "browse", "explore", "discover", "similar", "like"):
		c.Intent = IntentBrowsing
		c.Mode = ModeFuzzy
		c.MaxResults = 75
	default:
		c.Intent = IntentGeneral
	}
}

func detectSort(lower string) (SortField, SortOrder) {
	switch {
	case containsAny(lower, "latest", "newest", "recent"):
		return SortYear, OrderDesc
	case containsAny(lower, "oldest", "classic", "vintage"):
		return SortYear, OrderAsc
	case containsAny(lower, "popular", "best", "top", "famous"):
		return SortPopularity, OrderDesc
	case containsAny(lower, "alphabetical", "a to z", "z to a"):
		return SortTitle, OrderAsc
	case strings.Contains(lower, "by author"):
		return SortAuthor, OrderAsc
	default:
		return SortRelevance, OrderDesc
	}
}

// detectExclusions pulls the phrase after each exclusion marker (up to the
// next comma or period) and classifies it as a genre or an author.
func detectExclusions(raw string, c *Criteria) {
	lower := strings.ToLower(raw)
	for _, marker := range exclusionMarkers {
		idx := 0
		for {
			pos := strings.Index(lower[idx:], marker)
			if pos < 0 {
				break
			}
			start := idx + pos + len(marker)
			rest := raw[start:]
			if stop := exclusionStopRe.FindStringIndex(rest); stop != nil {
				rest = rest[:stop[0]]
			}
			target := strings.TrimSpace(rest)
			classifyExclusion(target, c)
			idx = start
		}
	}
}

func classifyExclusion(target string, c *Criteria) {
	if target == "" {
		return
	}
	lower := strings.ToLower(target)
	for _, genre := range genreOrder {
		if strings.Contains(lower, genre) || strings.Contains(lower, strings.ReplaceAll(genre, "-", " ")) {
			if !containsFold(c.ExcludeGenres, genre) {
				c.ExcludeGenres = append(c.ExcludeGenres, genre)
			}
			return
		}
	}
	if hasUppercase(target) || matchesKnownAuthor(lower) {
		if !containsFold(c.ExcludeAuthors, target) {
			c.ExcludeAuthors = append(c.ExcludeAuthors, target)
		}
	}
}

func matchesKnownAuthor(lower string) bool {
	for _, author := range knownAuthors {
		if strings.Contains(lower, author) {
			return true
		}
	}
	return false
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// detectLanguage keys off the Unicode Bengali block (U+0980..U+09FF).
func detectLanguage(message string) Language {
	var bengali, english bool
	for _, r := range message {
		switch {
		case r >= 0x0980 && r <= 0x09FF:
			bengali = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			english = true
		}
	}
	switch {
	case bengali && english:
		return LangAny
	case bengali:
		return LangBengali
	default:
		return LangEnglish
	}
}

func detectQuantity(lower string) int {
	if m := atLeastRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n > DefaultMaxResults {
			return n
		}
		return DefaultMaxResults
	}
	if m := countRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n > MaxResultsCap {
			return MaxResultsCap
		}
		return n
	}
	if containsAny(lower, "few", "some") {
		return 10
	}
	if containsAny(lower, "many", "lots", "plenty") {
		return MaxResultsCap
	}
	return DefaultMaxResults
}

func detectAvailability(lower string, c *Criteria) {
	switch {
	case containsAny(lower, "available now", "in stock"):
		c.IncludeOutOfStock = false
	case containsAny(lower, "any books", "all books", "including unavailable"):
		c.IncludeOutOfStock = true
	}
}

// extractKeywords strips punctuation, splits on whitespace and drops stop
// words, short tokens and pure numbers.
func extractKeywords(lower string) []string {
	cleaned := nonWordRe.ReplaceAllString(lower, " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return nil
	}
	var keywords []string
	for _, word := range strings.Split(cleaned, " ") {
		if len([]rune(word)) <= 2 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if digitsOnlyRe.MatchString(word) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func atoiPtr(s string) *int {
	n, _ := strconv.Atoi(s)
	return &n
}
