package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content string
	err     error
	prompt  string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.content, f.err
}

func TestExtractor_RemoteSuccess(t *testing.T) {
	llm := &fakeCompleter{content: `Here is the extraction result:
{"titles": ["Harry Potter"], "descriptionKeywords": ["third"], "maxResults": 5}
Let me know if you need anything else.`}
	e := NewExtractor(llm)

	c := e.Extract(context.Background(), "Is the third book of harry potter available?")

	assert.Equal(t, []string{"Harry Potter"}, c.Titles)
	assert.Equal(t, []string{"third"}, c.DescriptionKeywords)
	assert.Equal(t, 5, c.MaxResults)
	// Normalized defaults and detected language fill the gaps.
	assert.Equal(t, SortRelevance, c.SortBy)
	assert.Equal(t, LangEnglish, c.Language)
	assert.Contains(t, llm.prompt, "harry potter available")
}

func TestExtractor_RemoteFailureFallsBackToRules(t *testing.T) {
	e := NewExtractor(&fakeCompleter{err: errors.New("boom")})

	c := e.Extract(context.Background(), "mystery novels after 2010")

	assert.Equal(t, []string{"mystery"}, c.Genres)
	require.NotNil(t, c.YearFrom)
	assert.Equal(t, 2010, *c.YearFrom)
}

func TestExtractor_UnparseableReplyFallsBackToRules(t *testing.T) {
	e := NewExtractor(&fakeCompleter{content: "I could not produce JSON, sorry."})

	c := e.Extract(context.Background(), "fantasy books")

	assert.Contains(t, c.Genres, "fantasy")
}

func TestExtractor_NilCompleterIsRulesOnly(t *testing.T) {
	e := NewExtractor(nil)

	c := e.Extract(context.Background(), "detective novels")

	assert.Contains(t, c.Genres, "mystery")
}

func TestParseCriteriaJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"bare object", `{"titles":["Gora"]}`, true},
		{"wrapped in prose", `Sure! {"titles":["Gora"]} Hope that helps.`, true},
		{"unknown fields ignored", `{"titles":["Gora"],"confidence":0.9}`, true},
		{"no braces", `no json here`, false},
		{"malformed", `{"titles": [}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ParseCriteriaJSON(tt.content)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, []string{"Gora"}, c.Titles)
			}
		})
	}
}

func TestParseCriteriaJSON_TrimsBlankEntries(t *testing.T) {
	c, ok := ParseCriteriaJSON(`{"authors": [" Tagore ", "", "  "], "isbn": " 978 "}`)
	require.True(t, ok)
	assert.Equal(t, []string{"Tagore"}, c.Authors)
	assert.Equal(t, "978", c.ISBN)
}
