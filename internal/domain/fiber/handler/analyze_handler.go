package handler

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/resumecritic/engine/internal/middleware"
	"github.com/resumecritic/engine/internal/model"
	"github.com/resumecritic/engine/internal/usecase"
	"github.com/resumecritic/engine/internal/util"
)

type AnalyzeHandler struct {
	uc             *usecase.AnalysisUsecase
	maxUploadBytes int64
}

func NewAnalyzeHandler(uc *usecase.AnalysisUsecase, maxUploadBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

func (h *AnalyzeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/analyze", middleware.RateLimiter(10, 1*time.Minute), h.Analyze)
}

// Analyze handles one multipart analysis request: resume file + job_text.
// Input and document errors reject the request; semantic and AI failures are
// absorbed downstream, so a valid upload always yields a full result.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "missing_resume",
			Message:   "resume file is required",
		}, err)
	}

	jobText := strings.TrimSpace(strings.ToValidUTF8(c.FormValue("job_text"), "�"))
	if jobText == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "missing_job_text",
			Message:   "job_text is required",
		})
	}

	if file.Size > h.maxUploadBytes {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusRequestEntityTooLarge,
			ErrorCode: "file_too_large",
			Message:   "uploaded file is too large",
		})
	}

	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "corrupt_document",
			Message:   "cannot read uploaded file",
		}, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes+1))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "corrupt_document",
			Message:   "cannot read uploaded file",
		}, err)
	}

	doc, err := util.ExtractDocument(data, file.Filename, h.maxUploadBytes)
	if err != nil {
		return h.documentError(c, err)
	}

	analysisID := uuid.NewString()
	log.Printf("[%s] analyzing %s resume (%d chars) against job text (%d chars)",
		analysisID, doc.SourceFormat, doc.CharCount, len(jobText))

	result := h.uc.Analyze(c.UserContext(), doc, jobText, analysisID)
	log.Printf("[%s] match score %d (keyword %d)", analysisID, result.MatchScore, result.KeywordScore)

	return c.JSON(result)
}

func (h *AnalyzeHandler) documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrUnsupportedFormat):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "unsupported_format",
			Message:   "unsupported resume file type (use pdf, doc, docx or txt)",
		}, err)
	case errors.Is(err, model.ErrFileTooLarge):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusRequestEntityTooLarge,
			ErrorCode: "file_too_large",
			Message:   "uploaded file is too large",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      fiber.StatusBadRequest,
			ErrorCode: "corrupt_document",
			Message:   "could not extract text from the resume",
		}, err)
	}
}
