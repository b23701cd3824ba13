package workitem

import (
	"regexp"
	"strings"
)

// Text scanning helpers shared by the extraction strategies. Extraction is
// deliberately regex-based rather than model-based so that the same input
// always yields the same fields.

var (
	sentenceBoundary  = regexp.MustCompile(`[.!?\n]+`)
	bulletLinePattern = regexp.MustCompile(`^\s*[-*•]\s+(.+)$`)
	numberLinePattern = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)
)

// splitLines splits text into lines, trimming carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitSentences splits text on sentence terminators and newlines, dropping
// empty fragments.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceBoundary.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// bulletItems returns the content of every bulleted line in text.
func bulletItems(text string) []string {
	var items []string
	for _, line := range splitLines(text) {
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
		}
	}
	return items
}

// numberedItems returns the content of every numbered line in text.
func numberedItems(text string) []string {
	var items []string
	for _, line := range splitLines(text) {
		if m := numberLinePattern.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
		}
	}
	return items
}

// firstSubmatch tries the patterns in order and returns the first capture
// group of the first pattern that matches. Alternatives are ordered from
// most to least specific, so the first hit wins.
func firstSubmatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// keywordSet matches a fixed vocabulary as whole words, case-insensitively.
// Word order is significant: found reports hits in vocabulary order, which
// keeps downstream field values stable across runs.
type keywordSet struct {
	words    []string
	patterns []*regexp.Regexp
}

func newKeywordSet(words ...string) keywordSet {
	set := keywordSet{words: words}
	for _, w := range words {
		set.patterns = append(set.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return set
}

// any reports whether at least one vocabulary word occurs in text.
func (k keywordSet) any(text string) bool {
	for _, p := range k.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// found returns the vocabulary words present in text, each at most once, in
// vocabulary order.
func (k keywordSet) found(text string) []string {
	var hits []string
	for i, p := range k.patterns {
		if p.MatchString(text) {
			hits = append(hits, k.words[i])
		}
	}
	return hits
}

// count returns the number of distinct vocabulary words present in text.
func (k keywordSet) count(text string) int {
	n := 0
	for _, p := range k.patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}
