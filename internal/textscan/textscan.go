// Package textscan holds the low-level string and regex helpers shared by
// the anti-pattern detector and the quality scorer. All matching is
// case-insensitive and word-bounded so that "increase" does not match
// "increased revenue" twice or "crease" at all.
package textscan

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	numberRe  = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*[km]?\b`)
	percentRe = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*(?:%|percent\b)`)
	wordRe    = regexp.MustCompile(`[a-z0-9']+`)
)

// phraseRes caches compiled word-boundary patterns per phrase.
var phraseRes sync.Map // string -> *regexp.Regexp

func phraseRe(phrase string) *regexp.Regexp {
	if v, ok := phraseRes.Load(phrase); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	phraseRes.Store(phrase, re)
	return re
}

// Normalize lower-cases text and collapses internal whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Words splits normalized text into lower-case word tokens.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// ContainsPhrase reports whether the word-bounded phrase occurs in text.
// Both inputs are expected lower-case; multi-word phrases are supported.
func ContainsPhrase(text, phrase string) bool {
	return phraseRe(phrase).MatchString(text)
}

// ContainsAny reports whether any phrase from the list occurs in text,
// returning the first match.
func ContainsAny(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return p, true
		}
	}
	return "", false
}

// CountMatches returns how many distinct phrases from the list occur.
func CountMatches(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			n++
		}
	}
	return n
}

// LeadingWord returns the first word token of text, or "".
func LeadingWord(text string) string {
	ws := Words(text)
	if len(ws) == 0 {
		return ""
	}
	return ws[0]
}

// HasNumber reports whether text contains a numeric literal
// (optionally with a K/M suffix, e.g. "10k", "2.5m").
func HasNumber(text string) bool {
	return numberRe.MatchString(strings.ToLower(text))
}

// HasPercent reports whether text contains a percentage expression.
func HasPercent(text string) bool {
	return percentRe.MatchString(strings.ToLower(text))
}

// Numbers extracts all numeric literals in order, resolving K/M suffixes
// ("10k" -> 10000). Comma decimal separators are treated as dots.
func Numbers(text string) []float64 {
	matches := numberRe.FindAllString(strings.ToLower(text), -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		mult := 1.0
		switch {
		case strings.HasSuffix(m, "k"):
			mult = 1_000
			m = strings.TrimSuffix(m, "k")
		case strings.HasSuffix(m, "m"):
			mult = 1_000_000
			m = strings.TrimSuffix(m, "m")
		}
		m = strings.ReplaceAll(strings.TrimSpace(m), ",", ".")
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v*mult)
	}
	return out
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	return len(Words(text))
}

// Overlap computes the Jaccard-style vocabulary overlap of two texts in
// [0,1], ignoring stop words. Empty inputs yield 0.
func Overlap(a, b string) float64 {
	setA := contentWordSet(a)
	setB := contentWordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for w := range setA {
		if setB[w] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "of": true,
	"in": true, "on": true, "by": true, "for": true, "and": true,
	"or": true, "our": true, "we": true, "from": true, "with": true,
	"at": true, "is": true, "are": true, "be": true, "this": true,
}

func contentWordSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range Words(text) {
		if !stopWords[w] {
			set[w] = true
		}
	}
	return set
}
