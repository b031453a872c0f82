package keyword

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/resumecritic/engine/internal/model"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?;\n]+`)

// ExtractORGroups finds alternative-requirement groups in the job text, e.g.
// "Django or Flask required" or "Java, Python, or Ruby". A group folds its
// members into a single requirement unit: any one member satisfies it.
func ExtractORGroups(jobText string, jobKeywords []string) [][]string {
	var groups [][]string
	lower := strings.ToLower(jobText)

	for _, sentence := range sentenceSplitRe.Split(lower, -1) {
		if !containsWord(sentence, "or") {
			continue
		}
		var members []string
		for _, kw := range jobKeywords {
			if containsTerm(sentence, kw) {
				members = append(members, kw)
			}
		}
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		groups = mergeGroup(groups, members)
	}
	return groups
}

// mergeGroup drops subset groups so each alternative counts once.
func mergeGroup(groups [][]string, candidate []string) [][]string {
	for i, existing := range groups {
		if isSubset(candidate, existing) {
			return groups
		}
		if isSubset(existing, candidate) {
			groups[i] = candidate
			return groups
		}
	}
	return append(groups, candidate)
}

func isSubset(sub, super []string) bool {
	set := make(map[string]struct{}, len(super))
	for _, s := range super {
		set[s] = struct{}{}
	}
	for _, s := range sub {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

func containsWord(sentence, word string) bool {
	for _, f := range strings.Fields(sentence) {
		if strings.Trim(f, ",:()/") == word {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in s bounded by non-alphanumerics.
func containsTerm(s, term string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		leftOK := start == 0 || !isAlnum(s[start-1])
		rightOK := end == len(s) || !isAlnum(s[end])
		if leftOK && rightOK {
			return true
		}
		from = start + 1
	}
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// Match compares resume keywords against job keywords. Pure and
// deterministic; an empty job set scores 100 since there is nothing to miss.
func Match(resumeKeywords, jobKeywords []string, orGroups [][]string) model.MatchResult {
	resumeSet := toSet(resumeKeywords)
	jobSet := toSet(jobKeywords)

	matched := make(map[string]struct{})
	missing := make(map[string]struct{})
	for kw := range jobSet {
		if _, ok := resumeSet[kw]; ok {
			matched[kw] = struct{}{}
		} else {
			missing[kw] = struct{}{}
		}
	}

	grouped := make(map[string]struct{})
	satisfiedGroups := 0
	for _, group := range orGroups {
		satisfied := false
		for _, kw := range group {
			grouped[kw] = struct{}{}
			if _, ok := resumeSet[kw]; ok {
				satisfied = true
			}
		}
		if satisfied {
			satisfiedGroups++
			// alternatives to a satisfied requirement are not missing
			for _, kw := range group {
				delete(missing, kw)
			}
		}
	}

	totalUnits := len(jobSet) - len(grouped) + len(orGroups)
	matchedUnits := satisfiedGroups
	for kw := range matched {
		if _, ok := grouped[kw]; !ok {
			matchedUnits++
		}
	}

	score := 100
	if totalUnits > 0 {
		score = roundHalfUp(100 * float64(matchedUnits) / float64(totalUnits))
	}

	return model.MatchResult{
		MatchedKeywords: sortedKeys(matched),
		MissingKeywords: sortedKeys(missing),
		KeywordScore:    score,
	}
}

func toSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
