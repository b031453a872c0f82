package dto

import "encoding/json"

// AIAnalysis is the optional qualitative section of the response. When Enabled
// is false every other field is omitted; the client must treat that as "no AI
// section", never as a zero score.
type AIAnalysis struct {
	Enabled         bool     `json:"enabled"`
	OverallScore    *float64 `json:"overall_score,omitempty"`
	TechnicalSkills *float64 `json:"technical_skills,omitempty"`
	ExperienceLevel *float64 `json:"experience_level,omitempty"`
	Education       *float64 `json:"education,omitempty"`
	DomainKnowledge *float64 `json:"domain_knowledge,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
}

type aiAnalysisJSON AIAnalysis

// MarshalJSON keeps the two shapes of the section stable: disabled is exactly
// {"enabled":false}, enabled always carries strengths and gaps as arrays even
// when the provider listed none.
func (a AIAnalysis) MarshalJSON() ([]byte, error) {
	if !a.Enabled {
		return []byte(`{"enabled":false}`), nil
	}
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Gaps == nil {
		a.Gaps = []string{}
	}
	return json.Marshal(aiAnalysisJSON(a))
}

// AnalysisResult is the JSON contract consumed by the web client. Field names
// and optionality are stable; semantic_score is omitted entirely when the
// embedding provider was unavailable.
type AnalysisResult struct {
	MatchScore      int        `json:"match_score"`
	SemanticScore   *float64   `json:"semantic_score,omitempty"`
	KeywordScore    int        `json:"keyword_score"`
	GPTAnalysis     AIAnalysis `json:"gpt_analysis"`
	MatchedKeywords []string   `json:"matched_keywords"`
	MissingKeywords []string   `json:"missing_keywords"`
	JobKeywords     []string   `json:"job_keywords"`
	ResumeKeywords  []string   `json:"resume_keywords"`
}
