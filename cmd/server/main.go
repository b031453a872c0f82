package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/resumecritic/engine/internal/config"
	"github.com/resumecritic/engine/internal/domain/fiber/handler"
	"github.com/resumecritic/engine/internal/keyword"
	"github.com/resumecritic/engine/internal/middleware"
	"github.com/resumecritic/engine/internal/service"
	"github.com/resumecritic/engine/internal/usecase"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	analysisConfig := config.LoadAnalysisConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(analysisConfig.MaxUploadBytes) + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	// Gemini carries embeddings and is the default LLM; a missing key is a
	// first-class disabled state, not a startup failure.
	var gemini *service.GeminiService
	if g, err := service.NewGeminiService(ctx, config.LoadGeminiConfig()); err != nil {
		log.Printf("Gemini unavailable, semantic scoring disabled: %v", err)
	} else {
		gemini = g
	}

	var completer service.Completer
	switch analysisConfig.LLMProvider {
	case "openrouter":
		if or, err := service.NewOpenRouterService(config.LoadOpenRouterConfig()); err != nil {
			log.Printf("OpenRouter unavailable, AI analysis disabled: %v", err)
		} else {
			completer = or
		}
	default:
		if gemini != nil {
			completer = gemini
		} else {
			log.Println("No LLM provider configured, AI analysis disabled")
		}
	}

	var embedder service.Embedder
	if gemini != nil {
		embedder = gemini
	}

	terms := keyword.LoadTerms(analysisConfig.TermsPath)
	extractor := keyword.NewExtractor(terms, analysisConfig.KeywordTopN)
	semantic := service.NewSemanticService(embedder, analysisConfig.MaxChunkChars, analysisConfig.SemanticTimeout)
	ai := service.NewAIService(completer, analysisConfig.AITimeout)
	uc := usecase.NewAnalysisUsecase(extractor, semantic, ai, usecase.Weights{
		Keyword:  analysisConfig.KeywordWeight,
		Semantic: analysisConfig.SemanticWeight,
		AI:       analysisConfig.AIWeight,
	})
	analyzeHandler := handler.NewAnalyzeHandler(uc, analysisConfig.MaxUploadBytes)

	analyzeHandler.RegisterRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ResumeCritic backend running!"})
	})

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}
