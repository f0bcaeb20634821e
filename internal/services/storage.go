package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

type StorageService interface {
	Stage(file *multipart.FileHeader, mediaType string) (models.UploadedResume, error)
	Remove(filePath string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	now        func() time.Time
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		now:        time.Now,
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// Stage copies an uploaded part into the upload directory under a
// timestamp-prefixed unique name so concurrent requests never collide.
func (s *storageService) Stage(file *multipart.FileHeader, mediaType string) (models.UploadedResume, error) {
	uniqueFilename := fmt.Sprintf("%d-%s-%s",
		s.now().UnixMilli(),
		uuid.New().String(),
		sanitizeFilename(file.Filename),
	)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return models.UploadedResume{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return models.UploadedResume{}, fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return models.UploadedResume{}, fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return models.UploadedResume{}, fmt.Errorf("failed to save file: %w", err)
	}

	return models.UploadedResume{
		Path:         filePath,
		MediaType:    mediaType,
		OriginalName: file.Filename,
		Staged:       true,
	}, nil
}

// Remove deletes a staged file. A file that is already gone is not an error.
func (s *storageService) Remove(filePath string) error {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "resume"
	}
	return name
}
