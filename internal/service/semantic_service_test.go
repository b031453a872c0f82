package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	base    []float32
	err     error
	calls   int
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for needle, vec := range f.vectors {
		if strings.Contains(text, needle) {
			return vec, nil
		}
	}
	return f.base, nil
}

func TestScoreIdenticalEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{base: []float32{0.5, 0.5, 0.1}}
	s := NewSemanticService(embedder, 8000, 0)

	score := s.Score(context.Background(), "resume text", "job text")

	require.True(t, score.Present)
	assert.InDelta(t, 100.0, score.Value, 0.01)
}

func TestScoreOrthogonalEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"resume": {1, 0},
		"job":    {0, 1},
	}}
	s := NewSemanticService(embedder, 8000, 0)

	score := s.Score(context.Background(), "resume text", "job text")

	// zero similarity is still a present score, not an absent one
	require.True(t, score.Present)
	assert.InDelta(t, 0.0, score.Value, 0.01)
}

func TestScoreClampsNegativeSimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"resume": {1, 0},
		"job":    {-1, 0},
	}}
	s := NewSemanticService(embedder, 8000, 0)

	score := s.Score(context.Background(), "resume text", "job text")

	require.True(t, score.Present)
	assert.Equal(t, 0.0, score.Value)
}

func TestScoreEmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("upstream down")}
	s := NewSemanticService(embedder, 8000, 0)

	score := s.Score(context.Background(), "resume text", "job text")

	assert.False(t, score.Present)
	assert.Equal(t, "embedding unavailable", score.Reason)
}

func TestScoreWithoutEmbedder(t *testing.T) {
	s := NewSemanticService(nil, 8000, 0)

	score := s.Score(context.Background(), "resume text", "job text")

	assert.False(t, score.Present)
	assert.Equal(t, "embedding provider not configured", score.Reason)
}

func TestScoreEmptyInput(t *testing.T) {
	s := NewSemanticService(&fakeEmbedder{base: []float32{1}}, 8000, 0)

	assert.False(t, s.Score(context.Background(), "", "job").Present)
	assert.False(t, s.Score(context.Background(), "resume", "  ").Present)
}

func TestScoreChunksLongInputAndAverages(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"alpha": {1, 0},
			"beta":  {0, 1},
		},
		base: []float32{1, 0},
	}
	s := NewSemanticService(embedder, 6, 0)

	// resume splits into two chunks whose vectors average to (0.5, 0.5)
	score := s.Score(context.Background(), "alpha\n\nbeta", "job")

	require.True(t, score.Present)
	assert.InDelta(t, 70.7, score.Value, 0.2)
	assert.GreaterOrEqual(t, embedder.calls, 3)
}

func TestChunkText(t *testing.T) {
	chunks := chunkText("one\n\ntwo\n\nthree", 8)
	assert.Equal(t, []string{"one\n\ntwo", "three"}, chunks)

	chunks = chunkText("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)

	assert.Len(t, chunkText("short", 100), 1)
}

func TestChunkTextInvalidUTF8MakesProgress(t *testing.T) {
	// continuation bytes never start a rune, so the boundary backoff must
	// not stall the splitter
	chunks := chunkText(strings.Repeat("\x80", 20), 4)

	require.NotEmpty(t, chunks)
	total := 0
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		total += len(chunk)
	}
	assert.Equal(t, 20, total)
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	_, err = cosineSimilarity([]float32{1}, []float32{1, 2})
	assert.Error(t, err)

	_, err = cosineSimilarity([]float32{0, 0}, []float32{1, 2})
	assert.Error(t, err)
}
