package search

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
)

// Completer abstracts the remote model: one prompt in, one completion out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const remoteTimeout = 10 * time.Second

// Extractor turns a raw chat message into Criteria. With a remote completer
// configured it tries the model first and falls through to the rule-based
// pass on any failure; without one it is rules-only. Extract never fails.
type Extractor struct {
	llm     Completer
	timeout time.Duration
}

// NewExtractor builds an extractor. A nil completer selects the rules-only
// strategy.
func NewExtractor(llm Completer) *Extractor {
	return &Extractor{llm: llm, timeout: remoteTimeout}
}

func (e *Extractor) Extract(ctx context.Context, message string) Criteria {
	if e.llm != nil {
		if c, ok := e.extractRemote(ctx, message); ok {
			return c
		}
	}
	return ExtractRules(message)
}

// extractRemote asks the model for a criteria JSON object. Any transport
// error, deadline or unparseable reply reports ok=false; the caller falls
// back to rules.
func (e *Extractor) extractRemote(ctx context.Context, message string) (Criteria, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	content, err := e.llm.Complete(ctx, BuildPrompt(message))
	if err != nil {
		log.Printf("warn: remote extraction failed, using rule-based fallback: %v", err)
		return Criteria{}, false
	}

	c, ok := ParseCriteriaJSON(content)
	if !ok {
		log.Printf("warn: remote extraction returned unparseable content, using rule-based fallback")
		return Criteria{}, false
	}
	if c.Language == "" {
		c.Language = detectLanguage(message)
	}
	c.Normalize()
	return c, true
}

// ParseCriteriaJSON pulls the first {...} object out of model output (models
// commonly wrap JSON in prose) and decodes it leniently: unknown fields are
// skipped, missing fields stay zero.
func ParseCriteriaJSON(content string) (Criteria, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return Criteria{}, false
	}
	var c Criteria
	if err := json.Unmarshal([]byte(content[start:end+1]), &c); err != nil {
		return Criteria{}, false
	}
	c.Titles = trimNonEmpty(c.Titles)
	c.Authors = trimNonEmpty(c.Authors)
	c.Genres = trimNonEmpty(c.Genres)
	c.Keywords = trimNonEmpty(c.Keywords)
	c.DescriptionKeywords = trimNonEmpty(c.DescriptionKeywords)
	c.ExcludeGenres = trimNonEmpty(c.ExcludeGenres)
	c.ExcludeAuthors = trimNonEmpty(c.ExcludeAuthors)
	c.ISBN = strings.TrimSpace(c.ISBN)
	return c, true
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
