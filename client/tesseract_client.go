package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	if language == "" {
		language = "eng"
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

func (tc *TesseractClient) Name() string { return "tesseract" }

// Recognize runs Tesseract on an encoded image and returns the page text with
// word-level boxes. A gosseract client is not safe for concurrent use, so
// every call gets its own.
func (tc *TesseractClient) Recognize(ctx context.Context, img []byte) (*dto.OCRPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	words := make([]dto.RecognizedWord, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		words = append(words, dto.RecognizedWord{
			Text:       word,
			Confidence: b.Confidence,
			BoundingBox: dto.BoundingBox{
				X0: float64(b.Box.Min.X),
				Y0: float64(b.Box.Min.Y),
				X1: float64(b.Box.Max.X),
				Y1: float64(b.Box.Max.Y),
			},
		})
	}

	width, height := pageSize(img, words)
	return &dto.OCRPage{
		PageNumber: 1,
		Width:      width,
		Height:     height,
		Text:       text,
		Confidence: averageConfidence(words),
		Words:      words,
	}, nil
}
