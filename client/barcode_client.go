package client

import (
	"bytes"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// BarcodeReader decodes QR codes printed on tax documents, such as the
// payment voucher and e-file codes some preparers add to a 1040.
type BarcodeReader struct{}

func NewBarcodeReader() *BarcodeReader {
	return &BarcodeReader{}
}

// Decode returns the text of the QR code in an encoded image
func (b *BarcodeReader) Decode(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return b.DecodeImage(img)
}

// DecodeImage returns the text of the QR code in img
func (b *BarcodeReader) DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}
	return result.GetText(), nil
}
