// Package extract provides entity mention extraction from chunk text.
//
// The default extractor is a heuristic pattern matcher, not NLP. It exists
// behind the Extractor interface so a real named-entity recognizer can be
// substituted without touching the graph builder.
package extract

import "regexp"

// Extractor extracts entity mentions from a span of text.
type Extractor interface {
	// Mentions returns distinct entity mentions in first-seen order.
	Mentions(text string) []string
}

// capitalizedWord matches one uppercase letter followed by one or more
// lowercase letters.
var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// Defaults for the capitalized-word heuristic.
const (
	DefaultMaxMentions = 5
	DefaultMinLength   = 4
)

// CapitalizedWords is a placeholder extractor that treats capitalized words
// as entity mentions. Deduplication is by exact string match; matching is
// case-sensitive.
type CapitalizedWords struct {
	// MaxMentions caps the number of mentions returned per call.
	MaxMentions int

	// MinLength is the minimum token length for a word to count as a mention.
	MinLength int
}

// NewCapitalizedWords returns an extractor with default limits: at most 5
// mentions per call, tokens longer than 3 characters.
func NewCapitalizedWords() *CapitalizedWords {
	return &CapitalizedWords{
		MaxMentions: DefaultMaxMentions,
		MinLength:   DefaultMinLength,
	}
}

// Mentions scans text for capitalized words and returns the first
// MaxMentions distinct tokens of at least MinLength characters, in
// first-seen order.
func (c *CapitalizedWords) Mentions(text string) []string {
	maxMentions := c.MaxMentions
	if maxMentions <= 0 {
		maxMentions = DefaultMaxMentions
	}
	minLength := c.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	var mentions []string
	seen := make(map[string]struct{})
	for _, word := range capitalizedWord.FindAllString(text, -1) {
		if len(word) < minLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		mentions = append(mentions, word)
		if len(mentions) >= maxMentions {
			break
		}
	}
	return mentions
}
