package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/resumecritic/engine/internal/model"
)

// Embedder is the narrow capability the semantic scorer depends on, so the
// provider is swappable and mockable.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SemanticService embeds resume and job text and scores their cosine
// similarity on a 0-100 scale. Every failure mode degrades to an absent
// score; it never fails the request.
type SemanticService struct {
	embedder      Embedder
	maxChunkChars int
	timeout       time.Duration
}

func NewSemanticService(embedder Embedder, maxChunkChars int, timeout time.Duration) *SemanticService {
	if maxChunkChars <= 0 {
		maxChunkChars = 8000
	}
	return &SemanticService{
		embedder:      embedder,
		maxChunkChars: maxChunkChars,
		timeout:       timeout,
	}
}

// Score embeds both texts independently. Long inputs are chunked and the
// chunk vectors averaged, so neither side is silently dropped.
func (s *SemanticService) Score(ctx context.Context, resumeText, jobText string) model.OptionalScore {
	if s.embedder == nil {
		return model.AbsentScore("embedding provider not configured")
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return model.AbsentScore("empty input text")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resumeVec, err := s.embedText(ctx, resumeText)
	if err != nil {
		log.Printf("Semantic score unavailable: resume embedding: %v", err)
		return model.AbsentScore("embedding unavailable")
	}
	jobVec, err := s.embedText(ctx, jobText)
	if err != nil {
		log.Printf("Semantic score unavailable: job embedding: %v", err)
		return model.AbsentScore("embedding unavailable")
	}

	similarity, err := cosineSimilarity(resumeVec, jobVec)
	if err != nil {
		log.Printf("Semantic score unavailable: %v", err)
		return model.AbsentScore("degenerate embedding")
	}

	// negative cosine means "less than unrelated"; clamp to the floor
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	return model.PresentScore(similarity * 100)
}

func (s *SemanticService) embedText(ctx context.Context, text string) ([]float32, error) {
	chunks := chunkText(text, s.maxChunkChars)
	if len(chunks) == 1 {
		return s.embedder.GenerateEmbedding(ctx, chunks[0])
	}

	var sum []float64
	for _, chunk := range chunks {
		vec, err := s.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		if len(vec) != len(sum) {
			return nil, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(vec), len(sum))
		}
		for i, v := range vec {
			sum[i] += float64(v)
		}
	}

	avg := make([]float32, len(sum))
	for i, v := range sum {
		avg[i] = float32(v / float64(len(chunks)))
	}
	return avg, nil
}

// chunkText splits on paragraph boundaries, hard-splitting any paragraph
// longer than the limit.
func chunkText(text string, maxChars int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for len(para) > maxChars {
			cut := maxChars
			for cut > 0 && !utf8.RuneStart(para[cut]) {
				cut--
			}
			// invalid UTF-8 can walk cut all the way to 0; split mid-sequence
			// rather than loop without progress
			if cut == 0 {
				cut = maxChars
			}
			flush()
			chunks = append(chunks, para[:cut])
			para = para[cut:]
		}
		if current.Len()+len(para)+2 > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	if len(chunks) == 0 {
		chunks = []string{text}
	}
	return chunks
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
