package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/logger"
	"github.com/Aashish23092/ocr-financial-aid/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	maxFileSize     int64
	log             *zap.SugaredLogger
}

func NewDocumentHandler(documentService *service.DocumentService, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		log:             logger.GetLogger(),
	}
}

// RegisterRoutes mounts the document endpoints on api
func (h *DocumentHandler) RegisterRoutes(api *gin.RouterGroup) {
	documents := api.Group("/documents")
	{
		documents.POST("", h.UploadDocuments)
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.PATCH("/:id/owner", h.AssignOwner)
		documents.DELETE("/:id", h.DeleteDocument)
	}
	api.POST("/extract", h.ExtractText)
	api.GET("/worksheet", h.GetWorksheet)
}

// UploadDocuments handles POST /documents. Every file is processed; files
// that fail end up as documents in the error state rather than failing the
// request.
func (h *DocumentHandler) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, apperrors.Wrap(err, apperrors.ValidationError, "failed to parse multipart form"))
		return
	}

	request := &dto.DocumentUploadRequest{
		Files:    form.File["files[]"],
		Owner:    c.PostForm("owner"),
		Password: c.PostForm("password"),
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, err)
		return
	}
	owner, _ := dto.ParseOwner(request.Owner)

	uploads := make([]dto.Upload, 0, len(request.Files))
	for _, fh := range request.Files {
		data, err := readUpload(fh)
		if err != nil {
			h.sendError(c, apperrors.Wrap(err, apperrors.ValidationError, "failed to read uploaded file"))
			return
		}
		uploads = append(uploads, dto.Upload{
			FileName: fh.Filename,
			Data:     data,
			Owner:    owner,
			Password: request.Password,
		})
	}

	h.log.Infow("Processing uploaded documents", "count", len(uploads), "owner", owner)
	docs := h.documentService.ProcessBatch(c.Request.Context(), uploads)

	c.JSON(http.StatusCreated, dto.DocumentUploadResponse{
		Documents:   docs,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs := h.documentService.ListDocuments()
	c.JSON(http.StatusOK, dto.DocumentListResponse{Documents: docs, Count: len(docs)})
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Param("id"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// AssignOwner handles PATCH /documents/:id/owner
func (h *DocumentHandler) AssignOwner(c *gin.Context) {
	var req dto.AssignOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, apperrors.Wrap(err, apperrors.ValidationError, "invalid request body"))
		return
	}

	doc, err := h.documentService.AssignOwner(c.Param("id"), req.Owner)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.DeleteDocument(c.Param("id")); err != nil {
		h.sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExtractText handles POST /extract for callers that ran OCR themselves
func (h *DocumentHandler) ExtractText(c *gin.Context) {
	var req dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, apperrors.Wrap(err, apperrors.ValidationError, "invalid request body"))
		return
	}
	if req.Text == "" && len(req.Words) == 0 {
		h.sendError(c, apperrors.Validation("text or words are required"))
		return
	}

	c.JSON(http.StatusOK, h.documentService.ExtractText(req.Text, req.Words))
}

func (h *DocumentHandler) GetWorksheet(c *gin.Context) {
	sections, count := h.documentService.Worksheet()
	c.JSON(http.StatusOK, dto.WorksheetResponse{
		Sections:      sections,
		DocumentCount: count,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// sendError writes err as a dto.ErrorResponse with the status it carries
func (h *DocumentHandler) sendError(c *gin.Context, err error) {
	status := apperrors.HTTPStatusOf(err)
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.Detail != "" {
			message += ": " + appErr.Detail
		}
	}

	if status >= http.StatusInternalServerError {
		h.log.Errorw("Request failed", "path", c.FullPath(), "error", err)
	} else {
		h.log.Debugw("Request rejected", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   string(apperrors.TypeOf(err)),
		Message: message,
		Code:    status,
	})
}
