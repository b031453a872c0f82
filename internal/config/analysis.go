package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AnalysisConfig holds the tunables of the analysis pipeline. Weights are
// renormalized over the components that are actually available, so they only
// need to be positive, not sum to 1.
type AnalysisConfig struct {
	MaxUploadBytes int64
	KeywordTopN    int
	TermsPath      string
	MaxChunkChars  int

	SemanticTimeout time.Duration
	AITimeout       time.Duration

	SemanticWeight float64
	KeywordWeight  float64
	AIWeight       float64

	// "gemini" or "openrouter"
	LLMProvider string
}

var (
	analysisConfig *AnalysisConfig
	analysisOnce   sync.Once
)

func LoadAnalysisConfig() *AnalysisConfig {
	analysisOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		analysisConfig = &AnalysisConfig{
			MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
			KeywordTopN:     getEnvInt("KEYWORD_TOP_N", 30),
			TermsPath:       os.Getenv("TECHNICAL_TERMS_PATH"),
			MaxChunkChars:   getEnvInt("MAX_CHUNK_CHARS", 8000),
			SemanticTimeout: getEnvDuration("SEMANTIC_TIMEOUT", 30*time.Second),
			AITimeout:       getEnvDuration("AI_TIMEOUT", 45*time.Second),
			SemanticWeight:  getEnvFloat("SEMANTIC_WEIGHT", 0.5),
			KeywordWeight:   getEnvFloat("KEYWORD_WEIGHT", 0.3),
			AIWeight:        getEnvFloat("AI_WEIGHT", 0.2),
			LLMProvider:     provider,
		}
	})
	return analysisConfig
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
