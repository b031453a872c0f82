package keyword

import (
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z][a-z0-9+#.\-]*`)

// specialPatterns cover terms whose punctuation defeats plain word-boundary
// matching, mirroring the spellings recruiters actually write.
var specialPatterns = map[string]string{
	`(^|[^a-z0-9])c\+\+($|[^a-z0-9+])`:  "c++",
	`(^|[^a-z0-9])c#($|[^a-z0-9])`:      "c#",
	`(^|[^a-z0-9])\.net($|[^a-z0-9])`:   ".net",
	`(^|[^a-z0-9])node\.?js($|[^a-z0-9])`: "node.js",
}

type termPattern struct {
	term string
	re   *regexp.Regexp
}

// Extractor derives a bounded, deterministic keyword set from free text. It
// combines a curated technical-terms dictionary with frequency-ranked general
// tokens, capped at topN.
type Extractor struct {
	topN     int
	patterns []termPattern
	termSet  map[string]struct{}
	special  []termPattern
}

func NewExtractor(terms []string, topN int) *Extractor {
	if topN <= 0 {
		topN = 30
	}
	e := &Extractor{
		topN:    topN,
		termSet: make(map[string]struct{}, len(terms)),
	}
	for _, term := range terms {
		e.termSet[term] = struct{}{}
		e.patterns = append(e.patterns, termPattern{term: term, re: compileTermPattern(term)})
	}
	for pattern, term := range specialPatterns {
		e.special = append(e.special, termPattern{term: term, re: regexp.MustCompile(pattern)})
	}
	sort.Slice(e.special, func(i, j int) bool { return e.special[i].term < e.special[j].term })
	return e
}

func compileTermPattern(term string) *regexp.Regexp {
	if strings.ContainsAny(term, " -") {
		// multi-word terms tolerate either whitespace or hyphens between words
		escaped := regexp.QuoteMeta(term)
		escaped = strings.ReplaceAll(escaped, `\ `, `[\s\-]+`)
		escaped = strings.ReplaceAll(escaped, `\-`, `[\s\-]+`)
		return regexp.MustCompile(`(^|[^a-z0-9])` + escaped + `($|[^a-z0-9])`)
	}
	if ok, _ := regexp.MatchString(`^[a-z0-9]+$`, term); ok {
		return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(term) + `($|[^a-z0-9])`)
}

// Extract never fails; degenerate input yields an empty set. Identical input
// always yields the identical set and ordering: dictionary hits sorted
// ascending, then supplemental tokens ranked by frequency.
func (e *Extractor) Extract(text string) []string {
	keywords := []string{}
	if strings.TrimSpace(text) == "" {
		return keywords
	}
	lower := strings.ToLower(text)

	seen := make(map[string]struct{})
	for _, p := range e.patterns {
		if p.re.MatchString(lower) {
			seen[p.term] = struct{}{}
		}
	}
	for _, p := range e.special {
		if p.re.MatchString(lower) {
			seen[p.term] = struct{}{}
		}
	}

	for term := range seen {
		keywords = append(keywords, term)
	}
	sort.Strings(keywords)
	if len(keywords) > e.topN {
		return keywords[:e.topN]
	}

	for _, token := range e.rankedTokens(lower, seen) {
		if len(keywords) == e.topN {
			break
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// rankedTokens supplements the dictionary hits with recurring general tokens:
// lower-cased, stopword- and numeric-free, length >= 4, frequency >= 2.
func (e *Extractor) rankedTokens(lower string, seen map[string]struct{}) []string {
	freq := make(map[string]int)
	for _, token := range tokenRe.FindAllString(lower, -1) {
		token = strings.Trim(token, ".-")
		if len(token) < 4 || isStopword(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		freq[token]++
	}

	tokens := make([]string, 0, len(freq))
	for token, n := range freq {
		if n >= 2 {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}
