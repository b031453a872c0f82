package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/resumecritic/engine/internal/dto"
)

// Completer is the narrow capability the qualitative analyzer depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService produces the optional structured judgment of resume-to-job fit.
// It never raises to the caller: a missing provider, a provider failure, or
// a malformed response all degrade to {enabled:false}. The result is
// all-or-nothing; no partially valid AI output is ever surfaced.
type AIService struct {
	provider Completer
	validate *validator.Validate
	timeout  time.Duration
}

func NewAIService(provider Completer, timeout time.Duration) *AIService {
	return &AIService{
		provider: provider,
		validate: validator.New(),
		timeout:  timeout,
	}
}

// aiPayload is the schema the provider is asked to return. Pointers
// distinguish a missing score from a genuine zero.
type aiPayload struct {
	TechnicalSkills *float64 `validate:"required,gte=0,lte=100"`
	ExperienceLevel *float64 `validate:"required,gte=0,lte=100"`
	Education       *float64 `validate:"required,gte=0,lte=100"`
	DomainKnowledge *float64 `validate:"required,gte=0,lte=100"`
	OverallScore    *float64 `validate:"required,gte=0,lte=100"`
	Summary         string   `validate:"required"`
	Recommendation  string   `validate:"required,oneof=STRONG_MATCH GOOD_MATCH PARTIAL_MATCH WEAK_MATCH"`
	Strengths       []string
	Gaps            []string
}

// Analyze builds the prompt, invokes the provider and validates its output.
func (s *AIService) Analyze(ctx context.Context, resumeText, jobText string) dto.AIAnalysis {
	if s.provider == nil {
		return dto.AIAnalysis{Enabled: false}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.provider.Complete(ctx, buildAnalysisPrompt(resumeText, jobText))
	if err != nil {
		log.Printf("AI analysis disabled: provider error: %v", err)
		return dto.AIAnalysis{Enabled: false}
	}

	payload, err := parseAIResponse(response)
	if err != nil {
		log.Printf("AI analysis disabled: %v", err)
		return dto.AIAnalysis{Enabled: false}
	}
	if err := s.validate.Struct(payload); err != nil {
		log.Printf("AI analysis disabled: response failed validation: %v", err)
		return dto.AIAnalysis{Enabled: false}
	}

	return dto.AIAnalysis{
		Enabled:         true,
		OverallScore:    payload.OverallScore,
		TechnicalSkills: payload.TechnicalSkills,
		ExperienceLevel: payload.ExperienceLevel,
		Education:       payload.Education,
		DomainKnowledge: payload.DomainKnowledge,
		Summary:         payload.Summary,
		Recommendation:  payload.Recommendation,
		Strengths:       payload.Strengths,
		Gaps:            payload.Gaps,
	}
}

func buildAnalysisPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`You are an expert HR recruiter. Analyze how well this resume matches the job requirements.

JOB DESCRIPTION:
%s

RESUME:
%s

Evaluate the candidate on these criteria (score each 0-100):
1. Technical Skills Match
2. Experience Level
3. Education & Qualifications
4. Domain Knowledge
5. Overall Fit

Provide your response in this exact JSON format:
{
  "technical_skills": <score>,
  "experience_level": <score>,
  "education": <score>,
  "domain_knowledge": <score>,
  "overall_score": <average>,
  "strengths": ["strength1", "strength2"],
  "gaps": ["gap1", "gap2"],
  "recommendation": "<STRONG_MATCH|GOOD_MATCH|PARTIAL_MATCH|WEAK_MATCH>",
  "summary": "<2-3 sentence summary>"
}

Only return valid JSON.`, jobText, resumeText)
}

// parseAIResponse extracts the schema fields from the provider output.
// gjson tolerates the sloppy JSON LLMs produce; strict range and presence
// checks happen afterwards via the validator.
func parseAIResponse(response string) (*aiPayload, error) {
	clean := CleanJSON(response)
	if !gjson.Valid(clean) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	payload := &aiPayload{
		TechnicalSkills: numberField(clean, "technical_skills"),
		ExperienceLevel: numberField(clean, "experience_level"),
		Education:       numberField(clean, "education"),
		DomainKnowledge: numberField(clean, "domain_knowledge"),
		OverallScore:    numberField(clean, "overall_score"),
		Summary:         gjson.Get(clean, "summary").String(),
		Recommendation:  strings.ToUpper(gjson.Get(clean, "recommendation").String()),
	}

	var err error
	if payload.Strengths, err = stringListField(clean, "strengths"); err != nil {
		return nil, err
	}
	if payload.Gaps, err = stringListField(clean, "gaps"); err != nil {
		return nil, err
	}
	return payload, nil
}

func numberField(json, path string) *float64 {
	r := gjson.Get(json, path)
	switch {
	case r.Type == gjson.Number:
		v := r.Float()
		return &v
	case r.Type == gjson.String:
		// models occasionally quote their numbers
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.String()), 64); err == nil {
			return &v
		}
	}
	return nil
}

func stringListField(json, path string) ([]string, error) {
	r := gjson.Get(json, path)
	if !r.Exists() || !r.IsArray() {
		return nil, fmt.Errorf("field %q is missing or not a list", path)
	}
	var values []string
	for _, item := range r.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("field %q contains a non-string entry", path)
		}
		values = append(values, item.String())
	}
	return values, nil
}

// CleanJSON strips the markdown fences LLMs like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
