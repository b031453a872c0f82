package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestExtractor(topN int) *Extractor {
	return NewExtractor(LoadTerms(""), topN)
}

func TestExtractTechnicalTerms(t *testing.T) {
	e := newTestExtractor(30)

	keywords := e.Extract("Python, SQL, Docker")
	assert.Equal(t, []string{"docker", "python", "sql"}, keywords)

	keywords = e.Extract("Experienced in Python and Docker.")
	assert.Equal(t, []string{"docker", "python"}, keywords)
}

func TestExtractSpecialSpellings(t *testing.T) {
	e := newTestExtractor(30)

	keywords := e.Extract("Worked with C++, C# and Node.js daily")
	assert.Contains(t, keywords, "c++")
	assert.Contains(t, keywords, "c#")
	assert.Contains(t, keywords, "node.js")

	// alternate spelling without the dot
	keywords = e.Extract("Backend services in NodeJS")
	assert.Contains(t, keywords, "node.js")
}

func TestExtractDoesNotMatchSubstrings(t *testing.T) {
	e := newTestExtractor(30)

	keywords := e.Extract("JavaScript only here")
	assert.Contains(t, keywords, "javascript")
	assert.NotContains(t, keywords, "java")
}

func TestExtractMultiWordTerms(t *testing.T) {
	e := newTestExtractor(30)

	keywords := e.Extract("Background in machine learning and machine-learning pipelines")
	assert.Contains(t, keywords, "machine learning")
}

func TestExtractSupplementalTokens(t *testing.T) {
	e := newTestExtractor(30)

	// non-dictionary tokens need frequency >= 2 to qualify
	keywords := e.Extract("golang golang observability observability singleton")
	assert.Equal(t, []string{"golang", "observability"}, keywords)
}

func TestExtractDeterministic(t *testing.T) {
	e := newTestExtractor(30)
	text := "Python, Docker, Kubernetes, AWS, terraform and Jenkins pipelines"

	first := e.Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}

func TestExtractDegenerateInput(t *testing.T) {
	e := newTestExtractor(30)

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n\t  "))
	assert.NotNil(t, e.Extract(""))
}

func TestExtractTopNCap(t *testing.T) {
	e := newTestExtractor(2)

	keywords := e.Extract("Python, SQL, Docker, Kubernetes, AWS")
	assert.Len(t, keywords, 2)
}

func TestExtractFiltersStopwordsAndNumbers(t *testing.T) {
	e := newTestExtractor(30)

	keywords := e.Extract("the the the and and 2020 2020 12345 12345")
	assert.Empty(t, keywords)
}
