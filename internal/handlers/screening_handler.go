package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const (
	FieldResumes        = "resumes"
	FieldJobDescription = "jobDescription"
)

type ScreeningHandler struct {
	screeningService services.ScreeningService
	storageService   services.StorageService
	maxFileSize      int64
	maxFiles         int
	log              *zap.Logger
}

func NewScreeningHandler(
	screeningService services.ScreeningService,
	storageService services.StorageService,
	maxFileSize int64,
	maxFiles int,
	log *zap.Logger,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningService: screeningService,
		storageService:   storageService,
		maxFileSize:      maxFileSize,
		maxFiles:         maxFiles,
		log:              log,
	}
}

// HandleScreen handles POST /api/screening/screen
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	var (
		files          []*multipart.FileHeader
		jobDescription string
	)

	form, err := c.MultipartForm()
	if err == nil {
		files = form.File[FieldResumes]
		if values := form.Value[FieldJobDescription]; len(values) > 0 {
			jobDescription = values[0]
		}
	}

	if len(files) > h.maxFiles {
		return badRequest(c, tooManyFilesMessage(h.maxFiles))
	}

	// Every part is checked before anything is written to staging.
	mediaTypes := make([]string, len(files))
	for i, file := range files {
		mediaType, err := validateResumeFile(file, h.maxFileSize)
		if err != nil {
			return h.fail(c, err)
		}
		mediaTypes[i] = mediaType
	}

	if err := services.ValidateScreeningInput(len(files), jobDescription); err != nil {
		return h.fail(c, err)
	}

	staged := make([]models.UploadedResume, 0, len(files))
	defer func() {
		for _, resume := range staged {
			if err := h.storageService.Remove(resume.Path); err != nil {
				h.log.Warn("failed to sweep staged file", zap.String("path", resume.Path), zap.Error(err))
			}
		}
	}()

	for i, file := range files {
		resume, err := h.storageService.Stage(file, mediaTypes[i])
		if err != nil {
			return h.fail(c, err)
		}
		staged = append(staged, resume)
	}

	result, err := h.screeningService.Screen(c.UserContext(), staged, jobDescription)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(models.ScreenResponse{
		Success:      true,
		TotalResumes: len(files),
		Results:      result.Results,
		Failures:     result.Failures,
	})
}

func (h *ScreeningHandler) fail(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return badRequest(c, verr.Message)
	}

	h.log.Error("screening error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: message,
	})
}
