// Package faq answers free-text questions by fuzzy-matching them against a
// static question/answer list.
package faq

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog/log"
)

// Fallback replies. These are part of the observable contract: the matcher
// degrades to one of them instead of ever returning an error.
const (
	FallbackUnavailable = "Sorry, FAQ data is not available at the moment. Please try again later."
	FallbackNoMatch     = "Sorry, I couldn't find an answer to your question. Please check your question and try again."
	FallbackError       = "Sorry, I encountered an error while processing your question. Please try again."
)

// DefaultCutoff is the minimum similarity ratio for an accepted match
const DefaultCutoff = 0.5

// Entry is one question/answer pair from the FAQ resource
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Matcher resolves queries against the FAQ file at path. The file is
// re-read on every call so edits are picked up without a redeploy.
type Matcher struct {
	path   string
	cutoff float64
}

// NewMatcher creates a matcher over the FAQ file at path
func NewMatcher(path string) *Matcher {
	return &Matcher{path: path, cutoff: DefaultCutoff}
}

// load reads the FAQ resource. Missing or malformed files degrade to an
// empty list; the caller turns that into the unavailable fallback.
func (m *Matcher) load() []Entry {
	data, err := os.ReadFile(m.path)
	if err != nil {
		log.Error().Err(err).Str("path", m.path).Msg("FAQ file not readable")
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Error().Err(err).Str("path", m.path).Msg("FAQ file is not valid JSON")
		return nil
	}
	return entries
}

// Answer returns the answer of the closest-matching FAQ question, or a
// fallback string. It never returns an error.
func (m *Matcher) Answer(query string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("FAQ matcher recovered")
			answer = FallbackError
		}
	}()

	entries := m.load()
	if len(entries) == 0 {
		return FallbackUnavailable
	}

	normalized := normalize(query)

	best := -1
	bestScore := 0.0
	for i, entry := range entries {
		score := ratio(normalized, normalize(entry.Question))
		// strictly greater: ties keep the first entry in input order
		if score >= m.cutoff && score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return FallbackNoMatch
	}
	return entries[best].Answer
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// ratio computes the longest-matching-blocks similarity of two strings in
// [0,1], comparing rune by rune.
func ratio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
