package handlers

import (
	"fmt"
	"mime"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const MsgUnsupportedFileType = "Unsupported file type"

const zipMediaType = "application/zip"

func fileTooLargeMessage(maxFileSize int64) string {
	return fmt.Sprintf("File too large. Max size is %dMB", maxFileSize>>20)
}

func tooManyFilesMessage(maxFiles int) string {
	return fmt.Sprintf("Too many files. Max is %d", maxFiles)
}

// validateResumeFile checks the declared media type, the size and the actual
// content of an uploaded part. It returns the normalized media type.
func validateResumeFile(file *multipart.FileHeader, maxFileSize int64) (string, error) {
	declared, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil || !services.SupportedMediaType(declared) {
		return "", services.NewValidationError("resumes", MsgUnsupportedFileType)
	}

	if file.Size > maxFileSize {
		return "", services.NewValidationError("resumes", fileTooLargeMessage(maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to inspect uploaded file: %w", err)
	}

	if !contentMatches(detected, declared) {
		return "", services.NewValidationError("resumes", MsgUnsupportedFileType)
	}

	return declared, nil
}

// contentMatches reports whether the sniffed type fits the declared one. The
// DOCX sniffer only inspects the first few archive entries, so any zip is
// accepted for DOCX and the parser rejects archives that are not Word files.
func contentMatches(detected *mimetype.MIME, declared string) bool {
	if declared != models.MediaTypeDOCX {
		return detected.Is(declared)
	}

	for m := detected; m != nil; m = m.Parent() {
		if m.Is(models.MediaTypeDOCX) || m.Is(zipMediaType) {
			return true
		}
	}
	return false
}
