package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

// PDFProcessor reads the embedded text layer of a PDF and, for scans, the
// page images.
type PDFProcessor interface {
	ExtractTextLayer(pdfData []byte, password string) ([]dto.OCRPage, error)
	ExtractImages(pdfData []byte, password string) ([][]byte, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractTextLayer returns one page per PDF page with positioned words in a
// top-down coordinate space. Pages without a text layer come back empty.
func (p *pdfProcessor) ExtractTextLayer(pdfData []byte, password string) (pages []dto.OCRPage, err error) {
	// ledongthuc/pdf panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("failed to read pdf text layer: %v", r)
		}
	}()

	r, err := openReader(pdfData, password)
	if err != nil {
		return nil, err
	}

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		texts := page.Content().Text
		height := mediaBoxHeight(page, texts)
		words := layoutWords(texts, height)

		pages = append(pages, dto.OCRPage{
			PageNumber: i,
			Width:      mediaBoxWidth(page, words),
			Height:     height,
			Text:       wordsText(words),
			Confidence: 100,
			Words:      words,
		})
	}
	return pages, nil
}

func openReader(pdfData []byte, password string) (*pdf.Reader, error) {
	src := bytes.NewReader(pdfData)
	if password == "" {
		r, err := pdf.NewReader(src, int64(len(pdfData)))
		if err != nil {
			return nil, fmt.Errorf("failed to open pdf: %w", err)
		}
		return r, nil
	}

	// the callback is retried until it returns "", so offer the password once
	offered := false
	r, err := pdf.NewReaderEncrypted(src, int64(len(pdfData)), func() string {
		if offered {
			return ""
		}
		offered = true
		return password
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open encrypted pdf: %w", err)
	}
	return r, nil
}

func mediaBoxHeight(page pdf.Page, texts []pdf.Text) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		return box.Index(3).Float64() - box.Index(1).Float64()
	}
	// no own MediaBox: the highest glyph top stands in for the page height
	var h float64
	for _, t := range texts {
		h = max(h, t.Y+t.FontSize)
	}
	return h
}

func mediaBoxWidth(page pdf.Page, words []dto.RecognizedWord) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		return box.Index(2).Float64() - box.Index(0).Float64()
	}
	var w float64
	for _, word := range words {
		w = max(w, word.BoundingBox.X1)
	}
	return w
}

type glyph struct {
	r      rune
	x0, x1 float64
	y      float64
	size   float64
}

// layoutWords groups the glyph runs of a content stream into words. PDF y
// grows upward, so boxes are flipped against the page height.
func layoutWords(texts []pdf.Text, height float64) []dto.RecognizedWord {
	var glyphs []glyph
	for _, t := range texts {
		runes := []rune(t.S)
		if len(runes) == 0 {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		step := t.W / float64(len(runes))
		for i, r := range runes {
			x := t.X + float64(i)*step
			glyphs = append(glyphs, glyph{r: r, x0: x, x1: x + step, y: t.Y, size: size})
		}
	}
	if len(glyphs) == 0 {
		return nil
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		if sameBaseline(glyphs[i], glyphs[j]) {
			return glyphs[i].x0 < glyphs[j].x0
		}
		return glyphs[i].y > glyphs[j].y
	})

	var words []dto.RecognizedWord
	var current []glyph
	flush := func() {
		if len(current) == 0 {
			return
		}
		var sb strings.Builder
		top := current[0].y + current[0].size
		for _, g := range current {
			sb.WriteRune(g.r)
			top = max(top, g.y+g.size)
		}
		words = append(words, dto.RecognizedWord{
			Text:       sb.String(),
			Confidence: 100,
			BoundingBox: dto.BoundingBox{
				X0: current[0].x0,
				Y0: height - top,
				X1: current[len(current)-1].x1,
				Y1: height - current[0].y,
			},
		})
		current = current[:0]
	}

	for _, g := range glyphs {
		if unicode.IsSpace(g.r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			if !sameBaseline(prev, g) || g.x0-prev.x1 > prev.size*0.25 {
				flush()
			}
		}
		current = append(current, g)
	}
	flush()
	return words
}

func sameBaseline(a, b glyph) bool {
	tol := min(a.size, b.size) / 2
	d := a.y - b.y
	return d <= tol && d >= -tol
}

// wordsText renders words as lines, breaking wherever the next word starts
// on a new baseline.
func wordsText(words []dto.RecognizedWord) string {
	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			prev := words[i-1].BoundingBox
			tol := min(prev.Height(), w.BoundingBox.Height()) / 2
			if d := w.BoundingBox.Y1 - prev.Y1; d > tol || d < -tol {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// pdfcpu names extracted images <base>_<page>_<object>.<ext>
var extractedPageRe = regexp.MustCompile(`_(\d+)_[^_]+$`)

// ExtractImages writes the PDF to a temp file, lets pdfcpu dump every embedded
// image and returns the encoded images in page order.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([][]byte, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sortByPage(names)

	images := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tempDir, name))
		if err != nil {
			continue
		}
		images = append(images, data)
	}
	return images, nil
}

func sortByPage(names []string) {
	pageOf := func(name string) int {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		m := extractedPageRe.FindStringSubmatch(base)
		if m == nil {
			return 0
		}
		n, _ := strconv.Atoi(m[1])
		return n
	}
	sort.SliceStable(names, func(i, j int) bool {
		pi, pj := pageOf(names[i]), pageOf(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
}
