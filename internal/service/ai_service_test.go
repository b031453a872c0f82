package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

const validAIResponse = `{
  "technical_skills": 85,
  "experience_level": 70,
  "education": 90,
  "domain_knowledge": 65,
  "overall_score": 78,
  "strengths": ["strong python background", "cloud experience"],
  "gaps": ["no kubernetes exposure"],
  "recommendation": "GOOD_MATCH",
  "summary": "Solid backend candidate with minor infrastructure gaps."
}`

func TestAnalyzeHappyPath(t *testing.T) {
	provider := &fakeCompleter{response: validAIResponse}
	s := NewAIService(provider, 0)

	analysis := s.Analyze(context.Background(), "resume text", "job text")

	require.True(t, analysis.Enabled)
	require.NotNil(t, analysis.OverallScore)
	assert.Equal(t, 78.0, *analysis.OverallScore)
	assert.Equal(t, 85.0, *analysis.TechnicalSkills)
	assert.Equal(t, "GOOD_MATCH", analysis.Recommendation)
	assert.Equal(t, []string{"strong python background", "cloud experience"}, analysis.Strengths)
	assert.Equal(t, []string{"no kubernetes exposure"}, analysis.Gaps)
	assert.NotEmpty(t, analysis.Summary)
}

func TestAnalyzePromptContainsBothTexts(t *testing.T) {
	provider := &fakeCompleter{response: validAIResponse}
	s := NewAIService(provider, 0)

	s.Analyze(context.Background(), "RESUME-BODY", "JOB-BODY")

	assert.Contains(t, provider.prompt, "RESUME-BODY")
	assert.Contains(t, provider.prompt, "JOB-BODY")
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	provider := &fakeCompleter{response: "```json\n" + validAIResponse + "\n```"}
	s := NewAIService(provider, 0)

	analysis := s.Analyze(context.Background(), "resume", "job")
	assert.True(t, analysis.Enabled)
}

func TestAnalyzeUppercasesRecommendation(t *testing.T) {
	response := `{
	  "technical_skills": 50, "experience_level": 50, "education": 50,
	  "domain_knowledge": 50, "overall_score": 50,
	  "strengths": [], "gaps": [],
	  "recommendation": "partial_match",
	  "summary": "Middling fit."
	}`
	s := NewAIService(&fakeCompleter{response: response}, 0)

	analysis := s.Analyze(context.Background(), "resume", "job")

	require.True(t, analysis.Enabled)
	assert.Equal(t, "PARTIAL_MATCH", analysis.Recommendation)
}

func TestAnalyzeProviderError(t *testing.T) {
	s := NewAIService(&fakeCompleter{err: errors.New("rate limited")}, 0)

	analysis := s.Analyze(context.Background(), "resume", "job")

	assert.False(t, analysis.Enabled)
	assert.Nil(t, analysis.OverallScore)
}

func TestAnalyzeWithoutProvider(t *testing.T) {
	s := NewAIService(nil, 0)
	assert.False(t, s.Analyze(context.Background(), "resume", "job").Enabled)
}

func TestAnalyzeRejectsInvalidResponses(t *testing.T) {
	cases := map[string]string{
		"not json":               "I think the candidate is great!",
		"missing recommendation": `{"technical_skills": 80, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "summary": "x"}`,
		"unknown recommendation": `{"technical_skills": 80, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "recommendation": "MAYBE", "summary": "x"}`,
		"score out of range":     `{"technical_skills": 180, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "recommendation": "GOOD_MATCH", "summary": "x"}`,
		"missing score":          `{"experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "recommendation": "GOOD_MATCH", "summary": "x"}`,
		"non-numeric score":      `{"technical_skills": "high", "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "recommendation": "GOOD_MATCH", "summary": "x"}`,
		"strengths not a list":   `{"technical_skills": 80, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": "python", "gaps": [], "recommendation": "GOOD_MATCH", "summary": "x"}`,
		"non-string strength":    `{"technical_skills": 80, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [42], "gaps": [], "recommendation": "GOOD_MATCH", "summary": "x"}`,
		"empty summary":          `{"technical_skills": 80, "experience_level": 80, "education": 80, "domain_knowledge": 80, "overall_score": 80, "strengths": [], "gaps": [], "recommendation": "GOOD_MATCH", "summary": ""}`,
	}

	for name, response := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewAIService(&fakeCompleter{response: response}, 0)
			analysis := s.Analyze(context.Background(), "resume", "job")
			assert.False(t, analysis.Enabled)
		})
	}
}

func TestAnalyzeAcceptsQuotedNumbers(t *testing.T) {
	response := `{
	  "technical_skills": "85", "experience_level": 70, "education": 90,
	  "domain_knowledge": 65, "overall_score": "78",
	  "strengths": ["x"], "gaps": [],
	  "recommendation": "STRONG_MATCH",
	  "summary": "Quoted but parseable."
	}`
	s := NewAIService(&fakeCompleter{response: response}, 0)

	analysis := s.Analyze(context.Background(), "resume", "job")

	require.True(t, analysis.Enabled)
	assert.Equal(t, 78.0, *analysis.OverallScore)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON(`  {"a":1}  `))
}
