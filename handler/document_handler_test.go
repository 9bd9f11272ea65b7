package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/logger"
	"github.com/Aashish23092/ocr-financial-aid/service"
)

const w2Text = `Form W-2 Wage and Tax Statement 2023
1 Wages, tips, other compensation 48,250.00
2 Federal income tax withheld 5,400.00`

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubOCR struct{ text string }

func (s stubOCR) Name() string { return "stub" }

func (s stubOCR) Recognize(ctx context.Context, img []byte) (*dto.OCRPage, error) {
	return &dto.OCRPage{PageNumber: 1, Text: s.text, Confidence: 95}, nil
}

type stubPDF struct{}

func (stubPDF) ExtractTextLayer(pdfData []byte, password string) ([]dto.OCRPage, error) {
	return nil, nil
}

func (stubPDF) ExtractImages(pdfData []byte, password string) ([][]byte, error) {
	return nil, nil
}

// docView is the part of a ScannedDoc response the tests look at. The
// extraction union has no JSON decoder of its own.
type docView struct {
	ID            string             `json:"id"`
	Status        dto.DocumentStatus `json:"status"`
	AssignedOwner dto.Owner          `json:"assignedOwner"`
	DetectedType  dto.FormType       `json:"detectedType"`
	ExtractedData *struct {
		Wages float64 `json:"wages"`
	} `json:"extractedData"`
}

type uploadView struct {
	Documents []docView `json:"documents"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := service.NewDocumentService(stubOCR{text: w2Text}, nil, stubPDF{}, nil, service.NewDocumentStore(), service.Options{
		WorkerConcurrency: 2,
		MinTextLayerChars: 20,
	})
	return NewRouter(NewDocumentHandler(svc, 1<<20), []string{"*"})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		part, err := w.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(t), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestUploadAndWorksheet(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, uploadRequest(t,
		map[string]string{"owner": "parent2"},
		map[string][]byte{"w2.png": pngBytes(t)}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded uploadView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	require.Len(t, uploaded.Documents, 1)
	doc := uploaded.Documents[0]
	assert.Equal(t, dto.StatusComplete, doc.Status)
	assert.Equal(t, dto.FormTypeW2, doc.DetectedType)
	assert.Equal(t, dto.OwnerParent2, doc.AssignedOwner)
	require.NotNil(t, doc.ExtractedData)
	assert.Equal(t, 48250.0, doc.ExtractedData.Wages)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+doc.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/worksheet", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var ws dto.WorksheetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	assert.Equal(t, 1, ws.DocumentCount)
	assert.NotEmpty(t, ws.Sections)
}

func TestUploadValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, uploadRequest(t, nil, map[string][]byte{"notes.txt": []byte("hello")}))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = serve(router, uploadRequest(t, map[string]string{"owner": "uncle"}, map[string][]byte{"w2.png": pngBytes(t)}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	rec = serve(router, uploadRequest(t, nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignOwnerAndDelete(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, uploadRequest(t, nil, map[string][]byte{"w2.png": pngBytes(t)}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var uploaded uploadView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	id := uploaded.Documents[0].ID
	assert.Equal(t, dto.OwnerUnassigned, uploaded.Documents[0].AssignedOwner)

	rec = serve(router, jsonRequest(http.MethodPatch, "/api/v1/documents/"+id+"/owner", `{"owner":"student"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var doc docView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, dto.OwnerStudent, doc.AssignedOwner)

	rec = serve(router, jsonRequest(http.MethodPatch, "/api/v1/documents/"+id+"/owner", `{"owner":"cousin"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+id, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(dto.ExtractTextRequest{
		Text: "Form 1040 U.S. Individual Income Tax Return 2023\n11 Adjusted gross income 91,300.00\n24 Total tax 9,120.00",
	})
	require.NoError(t, err)

	rec := serve(router, jsonRequest(http.MethodPost, "/api/v1/extract", string(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		FormType   dto.FormType `json:"formType"`
		AGI        float64      `json:"agi"`
		FederalTax float64      `json:"federalTax"`
		Extraction struct {
			AGI float64 `json:"agi"`
		} `json:"extraction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, dto.FormType1040, data.FormType)
	assert.Equal(t, 91300.0, data.AGI)
	assert.Equal(t, 9120.0, data.FederalTax)
	assert.Equal(t, 91300.0, data.Extraction.AGI)

	rec = serve(router, jsonRequest(http.MethodPost, "/api/v1/extract", `{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, jsonRequest(http.MethodPost, "/api/v1/extract", `not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
