package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

// PaddleClient calls a PaddleOCR serving endpoint (PaddleHub ocr_system)
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewPaddleClient(apiURL string) *PaddleClient {
	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *PaddleClient) Name() string { return "paddle" }

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleRegion struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	TextRegion [][2]float64 `json:"text_region"`
}

type paddleResponse struct {
	Status  string           `json:"status"`
	Msg     string           `json:"msg"`
	Results [][]paddleRegion `json:"results"`
}

// Recognize posts the base64 image and converts each detected text line into
// words, splitting the line box proportionally to character offsets.
func (p *PaddleClient) Recognize(ctx context.Context, img []byte) (*dto.OCRPage, error) {
	payload, err := json.Marshal(paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(img)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var lines []string
	var words []dto.RecognizedWord
	if len(result.Results) > 0 {
		for _, region := range result.Results[0] {
			text := strings.TrimSpace(region.Text)
			if text == "" {
				continue
			}
			lines = append(lines, text)
			words = append(words, splitRegion(text, region.Confidence*100, regionBox(region.TextRegion))...)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("PaddleOCR extracted no text from image")
	}

	width, height := pageSize(img, words)
	return &dto.OCRPage{
		PageNumber: 1,
		Width:      width,
		Height:     height,
		Text:       strings.Join(lines, "\n"),
		Confidence: averageConfidence(words),
		Words:      words,
	}, nil
}

// regionBox is the axis-aligned box around a (possibly rotated) quadrilateral
func regionBox(points [][2]float64) dto.BoundingBox {
	if len(points) == 0 {
		return dto.BoundingBox{}
	}
	box := dto.BoundingBox{X0: points[0][0], Y0: points[0][1], X1: points[0][0], Y1: points[0][1]}
	for _, pt := range points[1:] {
		box.X0 = min(box.X0, pt[0])
		box.Y0 = min(box.Y0, pt[1])
		box.X1 = max(box.X1, pt[0])
		box.Y1 = max(box.Y1, pt[1])
	}
	return box
}

// splitRegion turns one recognized line into words, giving each word the
// horizontal slice of the line box its characters occupy.
func splitRegion(text string, confidence float64, box dto.BoundingBox) []dto.RecognizedWord {
	runes := []rune(text)
	perRune := box.Width() / float64(len(runes))

	var words []dto.RecognizedWord
	start := -1
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, dto.RecognizedWord{
				Text:       string(runes[start:i]),
				Confidence: confidence,
				BoundingBox: dto.BoundingBox{
					X0: box.X0 + float64(start)*perRune,
					Y0: box.Y0,
					X1: box.X0 + float64(i)*perRune,
					Y1: box.Y1,
				},
			})
			start = -1
		}
	}
	return words
}
