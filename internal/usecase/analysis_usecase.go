package usecase

import (
	"context"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/resumecritic/engine/internal/dto"
	"github.com/resumecritic/engine/internal/keyword"
	"github.com/resumecritic/engine/internal/model"
	"github.com/resumecritic/engine/internal/service"
)

// Weights for the final aggregation. They are renormalized over the
// components that actually produced a score, so an unavailable semantic or
// AI score never drags the match score toward zero.
type Weights struct {
	Keyword  float64
	Semantic float64
	AI       float64
}

type AnalysisUsecase struct {
	keywords *keyword.Extractor
	semantic *service.SemanticService
	ai       *service.AIService
	weights  Weights
}

func NewAnalysisUsecase(keywords *keyword.Extractor, semantic *service.SemanticService, ai *service.AIService, weights Weights) *AnalysisUsecase {
	if weights.Keyword <= 0 {
		weights = Weights{Keyword: 0.3, Semantic: 0.5, AI: 0.2}
	}
	return &AnalysisUsecase{
		keywords: keywords,
		semantic: semantic,
		ai:       ai,
		weights:  weights,
	}
}

// Analyze runs the full pipeline for one request: keyword extraction and
// matching, then semantic scoring and AI analysis concurrently, then
// aggregation. Everything is request-scoped; nothing survives the response.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, doc *model.ExtractedDocument, jobText string, analysisID string) *dto.AnalysisResult {
	resumeKeywords := uc.keywords.Extract(doc.RawText)
	jobKeywords := uc.keywords.Extract(jobText)
	orGroups := keyword.ExtractORGroups(jobText, jobKeywords)
	matchResult := keyword.Match(resumeKeywords, jobKeywords, orGroups)

	var (
		semanticScore model.OptionalScore
		aiAnalysis    dto.AIAnalysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		semanticScore = uc.semantic.Score(gctx, doc.RawText, jobText)
		return nil
	})
	g.Go(func() error {
		aiAnalysis = uc.ai.Analyze(gctx, doc.RawText, jobText)
		return nil
	})
	_ = g.Wait()

	if !semanticScore.Present {
		log.Printf("[%s] semantic score absent: %s", analysisID, semanticScore.Reason)
	}
	if !aiAnalysis.Enabled {
		log.Printf("[%s] ai analysis disabled", analysisID)
	}

	aiScore := model.AbsentScore("ai analysis disabled")
	if aiAnalysis.Enabled && aiAnalysis.OverallScore != nil {
		aiScore = model.PresentScore(*aiAnalysis.OverallScore)
	}
	matchScore := AggregateScore(uc.weights, matchResult.KeywordScore, semanticScore, aiScore)

	result := &dto.AnalysisResult{
		MatchScore:      matchScore,
		KeywordScore:    matchResult.KeywordScore,
		GPTAnalysis:     aiAnalysis,
		MatchedKeywords: matchResult.MatchedKeywords,
		MissingKeywords: matchResult.MissingKeywords,
		JobKeywords:     jobKeywords,
		ResumeKeywords:  resumeKeywords,
	}
	if semanticScore.Present {
		rounded := math.Round(semanticScore.Value*10) / 10
		result.SemanticScore = &rounded
	}
	return result
}

// AggregateScore combines the available component scores under the weighting
// policy. Absent components surrender their weight proportionally to the
// present ones; with only the keyword score available the match score equals
// it. Rounding is half-up so identical inputs always aggregate identically.
func AggregateScore(w Weights, keywordScore int, semantic, ai model.OptionalScore) int {
	sum := float64(keywordScore) * w.Keyword
	totalWeight := w.Keyword
	if semantic.Present {
		sum += semantic.Value * w.Semantic
		totalWeight += w.Semantic
	}
	if ai.Present {
		sum += ai.Value * w.AI
		totalWeight += w.AI
	}

	score := int(math.Floor(sum/totalWeight + 0.5))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
