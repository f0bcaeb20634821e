package models

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UploadedResume is a resume file waiting to be screened. Staged files live in
// the upload directory and are removed once their screening task finishes.
type UploadedResume struct {
	Path         string
	MediaType    string
	OriginalName string
	Staged       bool
}
