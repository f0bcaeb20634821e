package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// fragmentGapRatio is the horizontal gap, relative to the font size, above
// which two glyphs on the same baseline belong to separate text fragments.
const fragmentGapRatio = 0.2

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// textFragment is a run of text drawn at one vertical position.
type textFragment struct {
	Y    float64
	Text string
}

// ExtractText rebuilds the lines of every page. The pdf package panics on some
// malformed documents; those panics are reported as extraction errors.
func (p *pdfParserService) ExtractText(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed PDF: %v", ErrExtraction, r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrExtraction, err)
	}
	defer f.Close()

	var lines []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		lines = append(lines, groupRows(buildFragments(page.Content().Text))...)
	}

	return strings.Join(lines, "\n"), nil
}

// buildFragments merges consecutive glyphs into fragments. A new fragment
// starts when the vertical position changes, when the pen moves backwards or
// when the horizontal gap to the previous glyph is wider than a word gap.
func buildFragments(glyphs []pdf.Text) []textFragment {
	var (
		fragments []textFragment
		current   strings.Builder
		currentY  float64
		endX      float64
		open      bool
	)

	flush := func() {
		if text := strings.TrimSpace(current.String()); open && text != "" {
			fragments = append(fragments, textFragment{Y: currentY, Text: text})
		}
		current.Reset()
		open = false
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}

		if open {
			gap := g.X - endX
			tolerance := math.Max(g.FontSize, 1) * fragmentGapRatio
			if g.Y != currentY || gap > tolerance || gap < -tolerance {
				flush()
			}
		}

		if !open {
			currentY = g.Y
			open = true
		}

		current.WriteString(g.S)
		endX = g.X + g.W
	}
	flush()

	return fragments
}

// groupRows groups fragments by exact vertical coordinate. Fragments in a row
// are joined with single spaces in emission order and rows keep the order in
// which they were first seen. Coordinates that differ by a fraction of a point
// produce separate rows.
func groupRows(fragments []textFragment) []string {
	var order []float64
	rows := make(map[float64][]string)

	for _, frag := range fragments {
		if _, seen := rows[frag.Y]; !seen {
			order = append(order, frag.Y)
		}
		rows[frag.Y] = append(rows[frag.Y], frag.Text)
	}

	lines := make([]string, 0, len(order))
	for _, y := range order {
		lines = append(lines, strings.Join(rows[y], " "))
	}

	return lines
}
