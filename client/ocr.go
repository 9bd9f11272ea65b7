package client

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

// OCRProvider recognizes the text and word boxes of one page image
type OCRProvider interface {
	Name() string
	Recognize(ctx context.Context, img []byte) (*dto.OCRPage, error)
}

// pageSize reads the pixel size of an encoded image. When the format is not
// decodable it falls back to the extent of the recognized words.
func pageSize(img []byte, words []dto.RecognizedWord) (float64, float64) {
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(img)); err == nil {
		return float64(cfg.Width), float64(cfg.Height)
	}
	var w, h float64
	for _, word := range words {
		w = max(w, word.BoundingBox.X1)
		h = max(h, word.BoundingBox.Y1)
	}
	return w, h
}

func averageConfidence(words []dto.RecognizedWord) float64 {
	if len(words) == 0 {
		return 0
	}
	var total float64
	for _, w := range words {
		total += w.Confidence
	}
	return total / float64(len(words))
}
