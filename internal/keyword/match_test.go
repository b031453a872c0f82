package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScenario(t *testing.T) {
	job := []string{"docker", "python", "sql"}
	resume := []string{"docker", "python"}

	result := Match(resume, job, nil)

	assert.Equal(t, []string{"docker", "python"}, result.MatchedKeywords)
	assert.Equal(t, []string{"sql"}, result.MissingKeywords)
	assert.Equal(t, 67, result.KeywordScore) // 2/3 rounded half up
}

func TestMatchEmptyJobSet(t *testing.T) {
	result := Match([]string{"python"}, nil, nil)

	assert.Equal(t, 100, result.KeywordScore)
	assert.Empty(t, result.MatchedKeywords)
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchFullCoverage(t *testing.T) {
	job := []string{"python", "docker"}
	resume := []string{"python", "docker", "kubernetes", "aws"}

	result := Match(resume, job, nil)

	assert.Equal(t, 100, result.KeywordScore)
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchNothingMatches(t *testing.T) {
	result := Match([]string{"cobol"}, []string{"python", "docker"}, nil)

	assert.Equal(t, 0, result.KeywordScore)
	assert.Empty(t, result.MatchedKeywords)
	assert.Equal(t, []string{"docker", "python"}, result.MissingKeywords)
}

func TestMatchedAndMissingAreDisjoint(t *testing.T) {
	job := []string{"a", "b", "c", "d"}
	resume := []string{"b", "d", "e"}

	result := Match(resume, job, nil)

	for _, m := range result.MatchedKeywords {
		assert.NotContains(t, result.MissingKeywords, m)
	}
}

func TestExtractORGroups(t *testing.T) {
	jobText := "We need Django or Flask experience. Python is required."
	jobKW := []string{"django", "flask", "python"}

	groups := ExtractORGroups(jobText, jobKW)

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{"django", "flask"}, groups[0])
}

func TestExtractORGroupsIgnoresPlainSentences(t *testing.T) {
	groups := ExtractORGroups("Python and Docker required.", []string{"docker", "python"})
	assert.Empty(t, groups)
}

func TestExtractORGroupsDedupesSubsets(t *testing.T) {
	jobText := "Django or Flask. Knowledge of Django, Flask, or FastAPI frameworks."
	jobKW := []string{"django", "fastapi", "flask"}

	groups := ExtractORGroups(jobText, jobKW)

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{"django", "fastapi", "flask"}, groups[0])
}

func TestMatchSatisfiedORGroupFoldsToOneUnit(t *testing.T) {
	job := []string{"django", "flask", "python"}
	groups := [][]string{{"django", "flask"}}

	// one group member in the resume satisfies the whole group
	result := Match([]string{"django", "python"}, job, groups)

	assert.Equal(t, 100, result.KeywordScore)
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchUnsatisfiedORGroupCountsOnce(t *testing.T) {
	job := []string{"django", "flask", "python"}
	groups := [][]string{{"django", "flask"}}

	result := Match([]string{"python"}, job, groups)

	// two requirement units: the group and python; one satisfied
	assert.Equal(t, 50, result.KeywordScore)
	assert.Equal(t, []string{"django", "flask"}, result.MissingKeywords)
}
