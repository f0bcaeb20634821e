package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
	"alfredoptarigan/resume-screener/internal/testdocs"
)

const screenPath = "/api/screening/screen"

var pdfBody = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

type mockScreeningService struct {
	mu       sync.Mutex
	result   *models.ScreeningResult
	err      error
	files    []models.UploadedResume
	jd       string
	existing int
}

func (m *mockScreeningService) Screen(_ context.Context, files []models.UploadedResume, jobDescription string) (*models.ScreeningResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files = files
	m.jd = jobDescription
	for _, f := range files {
		if _, err := os.Stat(f.Path); err == nil {
			m.existing++
		}
	}
	return m.result, m.err
}

type upload struct {
	name        string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, uploads []upload, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+FieldResumes+`"; filename="`+u.name+`"`)
		h.Set("Content-Type", u.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, screenPath, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func newTestApp(t *testing.T, svc services.ScreeningService, maxFileSize int64, maxFiles int) (*fiber.App, string) {
	t.Helper()

	dir := t.TempDir()
	storage := services.NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	screening := NewScreeningHandler(svc, storage, maxFileSize, maxFiles, zap.NewNop())
	app := NewRouter(RouterConfig{
		AllowOrigins: "*",
		BodyLimit:    16 << 20,
	}, screening, NewHealthHandler("fake"))

	return app, dir
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandleScreen_Success(t *testing.T) {
	t.Parallel()

	svc := &mockScreeningService{result: &models.ScreeningResult{
		Results: []models.CandidateResult{
			services.EvaluateResume("a.pdf", "short", models.ScoreRecord{Score: 90, MatchedSkills: []string{"Go"}, MissingSkills: []string{}, ExperienceMatch: models.ExperienceGood}),
			services.EvaluateResume("b.pdf", "short", models.ScoreRecord{Score: 20, MatchedSkills: []string{}, MissingSkills: []string{}, ExperienceMatch: models.ExperiencePoor}),
		},
	}}
	app, dir := newTestApp(t, svc, 5<<20, 10)

	req := multipartRequest(t,
		[]upload{
			{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody},
			{name: "b.pdf", contentType: models.MediaTypePDF, content: pdfBody},
		},
		map[string]string{FieldJobDescription: "Go backend engineer"},
	)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[models.ScreenResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.TotalResumes)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "a.pdf", body.Results[0].Filename)
	assert.Equal(t, "Strong Match", body.Results[0].Category.Label)
	assert.Nil(t, body.Failures)

	require.Len(t, svc.files, 2)
	assert.Equal(t, "a.pdf", svc.files[0].OriginalName)
	assert.Equal(t, models.MediaTypePDF, svc.files[0].MediaType)
	assert.True(t, svc.files[0].Staged)
	assert.Equal(t, "Go backend engineer", svc.jd)
	assert.Equal(t, 2, svc.existing, "files are staged while screening runs")

	assertEmptyDir(t, dir)
}

func TestHandleScreen_ReportsIsolatedFailures(t *testing.T) {
	t.Parallel()

	svc := &mockScreeningService{result: &models.ScreeningResult{
		Results:  []models.CandidateResult{},
		Failures: []models.ScreeningFailure{{Filename: "a.pdf", Error: "a.pdf: extraction failed"}},
	}}
	app, _ := newTestApp(t, svc, 5<<20, 10)

	req := multipartRequest(t,
		[]upload{{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody}},
		map[string]string{FieldJobDescription: "jd"},
	)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[models.ScreenResponse](t, resp)
	assert.Equal(t, 1, body.TotalResumes)
	assert.Empty(t, body.Results)
	require.Len(t, body.Failures, 1)
	assert.Equal(t, "a.pdf", body.Failures[0].Filename)
}

func TestHandleScreen_BadRequests(t *testing.T) {
	t.Parallel()

	oversized := append(append([]byte{}, pdfBody...), bytes.Repeat([]byte("0"), 1<<20)...)

	tests := []struct {
		name    string
		uploads []upload
		fields  map[string]string
		message string
	}{
		{
			name:    "no_files",
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: services.MsgNoResumes,
		},
		{
			name:    "missing_job_description",
			uploads: []upload{{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody}},
			message: services.MsgNoJobDescription,
		},
		{
			name:    "blank_job_description",
			uploads: []upload{{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody}},
			fields:  map[string]string{FieldJobDescription: "  \n\t "},
			message: services.MsgNoJobDescription,
		},
		{
			name:    "unsupported_type",
			uploads: []upload{{name: "notes.txt", contentType: "text/plain", content: []byte("hello")}},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: MsgUnsupportedFileType,
		},
		{
			name:    "content_does_not_match_declared_type",
			uploads: []upload{{name: "fake.pdf", contentType: models.MediaTypePDF, content: []byte("just some text")}},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: MsgUnsupportedFileType,
		},
		{
			name: "mixed_batch_rejected_as_a_whole",
			uploads: []upload{
				{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody},
				{name: "b.png", contentType: "image/png", content: []byte("\x89PNG\r\n\x1a\n")},
			},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: MsgUnsupportedFileType,
		},
		{
			name:    "pdf_declared_as_docx",
			uploads: []upload{{name: "cv.docx", contentType: models.MediaTypeDOCX, content: pdfBody}},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: MsgUnsupportedFileType,
		},
		{
			name:    "docx_declared_as_pdf",
			uploads: []upload{{name: "cv.pdf", contentType: models.MediaTypePDF, content: testdocs.DOCX("Jane Doe")}},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: MsgUnsupportedFileType,
		},
		{
			name:    "file_too_large",
			uploads: []upload{{name: "big.pdf", contentType: models.MediaTypePDF, content: oversized}},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: "File too large. Max size is 1MB",
		},
		{
			name: "too_many_files",
			uploads: []upload{
				{name: "1.pdf", contentType: models.MediaTypePDF, content: pdfBody},
				{name: "2.pdf", contentType: models.MediaTypePDF, content: pdfBody},
				{name: "3.pdf", contentType: models.MediaTypePDF, content: pdfBody},
			},
			fields:  map[string]string{FieldJobDescription: "jd"},
			message: "Too many files. Max is 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockScreeningService{result: &models.ScreeningResult{}}
			app, dir := newTestApp(t, svc, 1<<20, 2)

			resp, err := app.Test(multipartRequest(t, tt.uploads, tt.fields), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body := decode[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.message, body.Error)

			assert.Nil(t, svc.files, "screening must not run")
			assertEmptyDir(t, dir)
		})
	}
}

func TestHandleScreen_NotMultipart(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &mockScreeningService{}, 5<<20, 10)

	req := httptest.NewRequest(http.MethodPost, screenPath, strings.NewReader(`{"jobDescription":"jd"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, services.MsgNoResumes, decode[models.ErrorResponse](t, resp).Error)
}

func TestHandleScreen_ScreeningError(t *testing.T) {
	t.Parallel()

	svc := &mockScreeningService{err: errors.New("a.pdf: " + services.ErrScoringFailed.Error())}
	app, dir := newTestApp(t, svc, 5<<20, 10)

	req := multipartRequest(t,
		[]upload{{name: "a.pdf", contentType: models.MediaTypePDF, content: pdfBody}},
		map[string]string{FieldJobDescription: "jd"},
	)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decode[models.ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "a.pdf")
	assertEmptyDir(t, dir)
}

func TestHandleScreen_AcceptsRealDocuments(t *testing.T) {
	t.Parallel()

	svc := &mockScreeningService{result: &models.ScreeningResult{Results: []models.CandidateResult{}}}
	app, dir := newTestApp(t, svc, 5<<20, 10)

	req := multipartRequest(t,
		[]upload{
			// Word puts docProps and customXml ahead of word/document.xml.
			{name: "jane.docx", contentType: models.MediaTypeDOCX, content: testdocs.DOCX("Jane Doe", "jane@example.com")},
			{name: "john.pdf", contentType: models.MediaTypePDF, content: testdocs.PDF([]string{"John Roe"})},
		},
		map[string]string{FieldJobDescription: "Go backend engineer"},
	)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, svc.files, 2)
	assert.Equal(t, models.MediaTypeDOCX, svc.files[0].MediaType)
	assert.Equal(t, "jane.docx", svc.files[0].OriginalName)
	assert.Equal(t, models.MediaTypePDF, svc.files[1].MediaType)
	assertEmptyDir(t, dir)
}

func TestContentMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  []byte
		declared string
		want     bool
	}{
		{name: "pdf", content: pdfBody, declared: models.MediaTypePDF, want: true},
		{name: "docx", content: testdocs.DOCX("Jane"), declared: models.MediaTypeDOCX, want: true},
		{name: "plain_zip_as_docx", content: testdocs.Zip([][2]string{{"a.txt", "a"}}), declared: models.MediaTypeDOCX, want: true},
		{name: "pdf_as_docx", content: pdfBody, declared: models.MediaTypeDOCX, want: false},
		{name: "text_as_pdf", content: []byte("hello"), declared: models.MediaTypePDF, want: false},
		{name: "zip_as_pdf", content: testdocs.Zip([][2]string{{"a.txt", "a"}}), declared: models.MediaTypePDF, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, contentMatches(mimetype.Detect(tt.content), tt.declared))
		})
	}
}
