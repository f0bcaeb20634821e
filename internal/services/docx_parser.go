package services

import (
	"fmt"
	"os"

	"code.sajari.com/docconv"
)

type DOCXParserService interface {
	ExtractText(filePath string) (string, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

// ExtractText returns the raw body text of a Word document, styling dropped.
// docconv panics on archives without a content types part; that is reported
// as an extraction error.
func (d *docxParserService) ExtractText(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed DOCX: %v", ErrExtraction, r)
		}
	}()

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrExtraction, err)
	}
	defer f.Close()

	text, _, err = docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read DOCX: %v", ErrExtraction, err)
	}

	return text, nil
}
