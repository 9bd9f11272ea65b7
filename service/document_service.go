package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
	"github.com/Aashish23092/ocr-financial-aid/client"
	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/logger"
	"github.com/Aashish23092/ocr-financial-aid/utils"
	"github.com/Aashish23092/ocr-financial-aid/utils/worksheet"
)

const (
	// pages with fewer recognized characters are retried with the fallback provider
	minOCRChars = 10

	sourceTextLayer = "text_layer"
)

// QRDecoder reads a QR payload from an encoded page image
type QRDecoder interface {
	Decode(data []byte) (string, error)
}

type Options struct {
	WorkerConcurrency int
	MinTextLayerChars int
}

type DocumentService struct {
	primary  client.OCRProvider
	fallback client.OCRProvider // nil when no fallback is configured
	pdf      PDFProcessor
	qr       QRDecoder
	store    *DocumentStore
	metrics  *documentMetrics
	opts     Options
	log      *zap.SugaredLogger
}

func NewDocumentService(
	primary client.OCRProvider,
	fallback client.OCRProvider,
	pdfProcessor PDFProcessor,
	qr QRDecoder,
	store *DocumentStore,
	opts Options,
) *DocumentService {
	if opts.WorkerConcurrency <= 0 {
		opts.WorkerConcurrency = 1
	}
	return &DocumentService{
		primary:  primary,
		fallback: fallback,
		pdf:      pdfProcessor,
		qr:       qr,
		store:    store,
		metrics:  newDocumentMetrics(),
		opts:     opts,
		log:      logger.GetLogger(),
	}
}

// ProcessDocument recognizes and extracts one upload. It never returns an
// error: failures are recorded on the document, which ends in the error state.
func (s *DocumentService) ProcessDocument(ctx context.Context, upload dto.Upload) *dto.ScannedDoc {
	return s.process(ctx, s.register(upload), upload)
}

// ProcessBatch processes uploads concurrently, bounded by the configured
// worker count. Documents are registered before any work starts so the store
// lists them in upload order. Results keep the upload order.
func (s *DocumentService) ProcessBatch(ctx context.Context, uploads []dto.Upload) []*dto.ScannedDoc {
	docs := make([]*dto.ScannedDoc, len(uploads))
	for i, up := range uploads {
		docs[i] = s.register(up)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.WorkerConcurrency)
	for i, up := range uploads {
		g.Go(func() error {
			docs[i] = s.process(gctx, docs[i], up)
			return nil
		})
	}
	_ = g.Wait()
	return docs
}

// register stores a new document in the processing state
func (s *DocumentService) register(upload dto.Upload) *dto.ScannedDoc {
	doc := dto.NewScannedDoc(uuid.NewString(), upload.FileName, upload.Owner)
	s.store.Save(doc)
	return doc
}

func (s *DocumentService) process(ctx context.Context, doc *dto.ScannedDoc, upload dto.Upload) *dto.ScannedDoc {
	s.metrics.inFlight.Inc()
	start := time.Now()
	defer func() {
		s.metrics.inFlight.Dec()
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	result, err := s.recognize(ctx, upload)
	if err != nil {
		failure := errors.New(failureMessage(err))
		doc = s.finish(doc, func(d *dto.ScannedDoc) error { return d.Fail(failure) })
		s.metrics.processed.WithLabelValues(string(dto.StatusError), "").Inc()
		s.log.Warnw("Document processing failed",
			"documentID", doc.ID,
			"file", logger.MaskFileName(upload.FileName),
			"error", err)
		return doc
	}

	data := utils.ExtractFinancialData(result.Text, stackPages(result.Pages))
	doc = s.finish(doc, func(d *dto.ScannedDoc) error {
		if err := d.Complete(data); err != nil {
			return err
		}
		d.Source = result.Source
		return nil
	})

	s.metrics.processed.WithLabelValues(string(dto.StatusComplete), string(data.FormType)).Inc()
	for _, w := range data.Warnings {
		s.metrics.warnings.WithLabelValues(w.Field, string(w.Severity)).Inc()
	}
	s.log.Infow("Document processed",
		"documentID", doc.ID,
		"file", logger.MaskFileName(upload.FileName),
		"formType", data.FormType,
		"source", result.Source,
		"ssn", logger.MaskSSN(data.SSN),
		"confidence", data.ConfidenceScore,
		"warnings", len(data.Warnings),
		"duration", time.Since(start))
	return doc
}

// finish applies the terminal transition to the stored document, keeping any
// owner change made while it was processing. A document deleted in the
// meantime stays deleted; the caller still gets the finished local copy.
func (s *DocumentService) finish(doc *dto.ScannedDoc, transition func(*dto.ScannedDoc) error) *dto.ScannedDoc {
	stored, err := s.store.Update(doc.ID, transition)
	if err == nil {
		return stored
	}
	s.log.Debugw("Document not stored after processing",
		"documentID", doc.ID, "error", err)
	_ = transition(doc)
	return doc
}

// ExtractText runs extraction on OCR output the caller produced
func (s *DocumentService) ExtractText(text string, words []dto.RecognizedWord) dto.ExtractedData {
	return utils.ExtractFinancialData(text, words)
}

func (s *DocumentService) ListDocuments() []*dto.ScannedDoc {
	return s.store.List()
}

func (s *DocumentService) GetDocument(id string) (*dto.ScannedDoc, error) {
	return s.store.Get(id)
}

// AssignOwner moves a document to another household member
func (s *DocumentService) AssignOwner(id string, owner string) (*dto.ScannedDoc, error) {
	o, err := dto.ParseOwner(owner)
	if err != nil {
		return nil, err
	}
	return s.store.Update(id, func(doc *dto.ScannedDoc) error {
		doc.AssignedOwner = o
		doc.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DocumentService) DeleteDocument(id string) error {
	return s.store.Delete(id)
}

// Worksheet aggregates the completed documents into the CSS Profile worksheet
func (s *DocumentService) Worksheet() ([]dto.WorksheetSection, int) {
	docs := s.store.Snapshot()
	return worksheet.Aggregate(docs), len(docs)
}

func (s *DocumentService) recognize(ctx context.Context, upload dto.Upload) (*dto.OCRResult, error) {
	if len(upload.Data) == 0 {
		return nil, apperrors.Validation("file is empty")
	}

	mime := mimetype.Detect(upload.Data)
	switch {
	case mime.Is("application/pdf"):
		return s.recognizePDF(ctx, upload)
	case strings.HasPrefix(mime.String(), "image/"):
		page, source, err := s.recognizeImage(ctx, upload.Data)
		if err != nil {
			return nil, err
		}
		return pagesResult([]dto.OCRPage{*page}, source), nil
	default:
		return nil, apperrors.New(apperrors.UnsupportedFormatError,
			"unsupported file type", mime.String())
	}
}

func (s *DocumentService) recognizePDF(ctx context.Context, upload dto.Upload) (*dto.OCRResult, error) {
	pages, err := s.pdf.ExtractTextLayer(upload.Data, upload.Password)
	if err != nil {
		s.log.Debugw("PDF text layer unavailable",
			"file", logger.MaskFileName(upload.FileName), "error", err)
	}

	var chars int
	for _, p := range pages {
		chars += visibleChars(p.Text)
	}
	if chars >= s.opts.MinTextLayerChars && chars > 0 {
		return pagesResult(pages, sourceTextLayer), nil
	}

	s.log.Debugw("PDF has little embedded text, falling back to image OCR",
		"file", logger.MaskFileName(upload.FileName), "chars", chars)

	images, imgErr := s.pdf.ExtractImages(upload.Data, upload.Password)
	if imgErr != nil {
		return nil, apperrors.Wrap(imgErr, apperrors.PDFFailedError, "could not read the PDF")
	}
	if len(images) == 0 {
		return nil, apperrors.New(apperrors.PDFFailedError,
			"the PDF has no readable text or page images", "")
	}

	var ocrPages []dto.OCRPage
	var source string
	var lastErr error
	for i, img := range images {
		page, src, err := s.recognizeImage(ctx, img)
		if err != nil {
			lastErr = err
			s.log.Warnw("OCR failed for a PDF page",
				"file", logger.MaskFileName(upload.FileName), "page", i+1, "error", err)
			continue
		}
		page.PageNumber = i + 1
		ocrPages = append(ocrPages, *page)
		if source == "" {
			source = src
		}
	}
	if len(ocrPages) == 0 {
		return nil, lastErr
	}
	return pagesResult(ocrPages, source), nil
}

// recognizeImage runs the primary provider and retries with the fallback when
// the primary fails or reads almost nothing. QR payloads are appended to the
// page text.
func (s *DocumentService) recognizeImage(ctx context.Context, img []byte) (*dto.OCRPage, string, error) {
	page, err := s.primary.Recognize(ctx, img)
	source := s.primary.Name()

	if (err != nil || visibleChars(page.Text) < minOCRChars) && s.fallback != nil {
		s.metrics.ocrFallback.Inc()
		alt, altErr := s.fallback.Recognize(ctx, img)
		switch {
		case altErr == nil && (err != nil || visibleChars(alt.Text) > visibleChars(page.Text)):
			page, source, err = alt, s.fallback.Name(), nil
		case err != nil:
			err = errors.Join(err, altErr)
		}
	}
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.OCRFailedError, "text recognition failed")
	}

	if s.qr != nil {
		if payload, qrErr := s.qr.Decode(img); qrErr == nil && payload != "" {
			page.Text = strings.TrimRight(page.Text, "\n") + "\n" + payload
		}
	}
	return page, source, nil
}

func pagesResult(pages []dto.OCRPage, source string) *dto.OCRResult {
	texts := make([]string, len(pages))
	var conf float64
	for i, p := range pages {
		texts[i] = p.Text
		conf += p.Confidence
	}
	return &dto.OCRResult{
		Text:       strings.Join(texts, "\n"),
		Confidence: conf / float64(len(pages)),
		Pages:      pages,
		Source:     source,
	}
}

// stackPages concatenates page words into one coordinate space by shifting
// each page down by the height of the pages before it.
func stackPages(pages []dto.OCRPage) []dto.RecognizedWord {
	var words []dto.RecognizedWord
	var offset float64
	for _, p := range pages {
		var extent float64
		for _, w := range p.Words {
			extent = max(extent, w.BoundingBox.Y1)
			w.BoundingBox.Y0 += offset
			w.BoundingBox.Y1 += offset
			words = append(words, w)
		}
		if p.Height > 0 {
			extent = p.Height
		}
		offset += extent
	}
	return words
}

func visibleChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func failureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Message + ": " + appErr.Detail
		}
		return appErr.Message
	}
	return err.Error()
}
