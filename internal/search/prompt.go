package search

// BuildPrompt produces the 1-shot extraction prompt. The rules mirror the
// rule-based extractor so both strategies stay behaviourally consistent.
func BuildPrompt(message string) string {
	return `Extract book search criteria from the user message. The message may be in English, Bangla, or a mix of both. Respond ONLY with a JSON object containing these fields:
{
    "titles": [exact book titles or series names mentioned - be very specific],
    "authors": [exact author names mentioned, in any script],
    "genres": [specific genres like fiction, romance, mystery, etc.],
    "genreOperation": "AND" or "OR" (AND when the user wants books matching all genres),
    "keywords": [other relevant keywords for general search],
    "descriptionKeywords": [specific keywords that should be searched in book descriptions],
    "yearFrom": number or null (earliest publication year),
    "yearTo": number or null (latest publication year),
    "isbn": "string or null",
    "excludeGenres": [genres the user wants left out],
    "excludeAuthors": [authors the user wants left out],
    "includeOutOfStock": boolean (true only if the user asks for unavailable books too),
    "maxResults": number 1-100 or null,
    "sortBy": "relevance", "title", "author", "year" or "popularity",
    "sortOrder": "asc" or "desc",
    "searchMode": "smart", "strict" or "fuzzy",
    "userIntent": "general", "specific", "browsing" or "research",
    "language": "english", "bengali" or "any"
}

IMPORTANT RULES:
1. For book series (like "Harry Potter", "Lord of the Rings"), put the series name in titles array
2. If user asks about "third book" or "second book" etc., put words like "third", "second" in descriptionKeywords
3. Be very specific with titles - don't add generic terms to titles array
4. Only put confirmed author names in authors array
5. For questions about availability of specific books, focus on title and description keywords
6. Extract years from phrases like "published in 1990", "between 1980-2000", "after 1995", "before 2010"
7. Common genres: fiction, non-fiction, romance, mystery, thriller, science-fiction, fantasy, biography, history, self-help, education, children, poetry, drama, programming, technology, business, science, health, art
8. genreOperation is "AND" for phrases like "both X and Y", "must have both"; "OR" for "X or Y", "either"; Bangla: এবং/আর/উভয় mean AND, অথবা/বা/কিংবা mean OR
9. Quoted titles or words like "exact", "specific" mean userIntent "specific" and searchMode "strict"
10. "research", "academic", "thesis" mean userIntent "research"; "browse", "explore", "discover" mean "browsing"
11. Phrases like "except romance", "not by Tagore" go to excludeGenres / excludeAuthors

Examples:
- "harry potter books" -> titles: ["Harry Potter"], authors: [], genres: [], keywords: []
- "third harry potter book" -> titles: ["Harry Potter"], descriptionKeywords: ["third"]
- "books by J.K. Rowling" -> authors: ["J.K. Rowling"], titles: [], genres: [], keywords: []
- "fantasy books after 2000" -> genres: ["fantasy"], yearFrom: 2000
- "books with both fantasy and adventure" -> genres: ["fantasy", "adventure"], genreOperation: "AND"
- "বই by রবীন্দ্রনাথ" -> authors: ["রবীন্দ্রনাথ"], language: "any"
- "Is the third book of harry potter available?" -> titles: ["Harry Potter"], descriptionKeywords: ["third"]

User message: ` + message
}
