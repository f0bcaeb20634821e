package services

import (
	"fmt"

	"alfredoptarigan/resume-screener/internal/models"
)

type TextExtractor interface {
	Extract(filePath, mediaType string) (string, error)
}

type textExtractor struct {
	pdfParser  PDFParserService
	docxParser DOCXParserService
}

func NewTextExtractor(pdfParser PDFParserService, docxParser DOCXParserService) TextExtractor {
	return &textExtractor{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

// Extract dispatches on the declared media type. It never removes filePath.
func (e *textExtractor) Extract(filePath, mediaType string) (string, error) {
	switch mediaType {
	case models.MediaTypePDF:
		return e.pdfParser.ExtractText(filePath)
	case models.MediaTypeDOCX:
		return e.docxParser.ExtractText(filePath)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
}

// SupportedMediaType reports whether mediaType can be extracted.
func SupportedMediaType(mediaType string) bool {
	return mediaType == models.MediaTypePDF || mediaType == models.MediaTypeDOCX
}
