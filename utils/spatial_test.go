package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

func word(text string, x0, y0, x1, y1 float64) dto.RecognizedWord {
	return dto.RecognizedWord{
		Text:        text,
		Confidence:  90,
		BoundingBox: dto.BoundingBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
	}
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, CalculateSimilarity("wages", "wages"))
	assert.Equal(t, 0.0, CalculateSimilarity("wages", ""))
	assert.InDelta(t, 0.8, CalculateSimilarity("wages", "wagcs"), 0.001)
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestFindAnchor(t *testing.T) {
	doc := NewSpatialDocument([]dto.RecognizedWord{
		word("1", 0, 10, 5, 20),
		word("Wages,", 10, 10, 60, 20),
		word("tips,", 65, 10, 90, 20),
		word("compensatlon", 95, 10, 200, 20),
		word("Federal", 300, 10, 360, 20),
	})
	require.NotNil(t, doc)

	box, ok := doc.FindAnchor("Wages, tips, other compensation")
	require.True(t, ok)
	assert.Equal(t, 95.0, box.X0)

	_, ok = doc.FindAnchor("Dependents")
	assert.False(t, ok)

	_, ok = doc.FindAnchor("   ")
	assert.False(t, ok)
}

func TestNilSpatialDocument(t *testing.T) {
	doc := NewSpatialDocument(nil)
	assert.Nil(t, doc)
	assert.Equal(t, 0, doc.Len())

	_, ok := doc.FindAnchor("wages")
	assert.False(t, ok)

	_, ok = doc.ScanRegion(dto.BoundingBox{X1: 100, Y1: 100}, moneyRe)
	assert.False(t, ok)
}

func TestScanRegionReadingOrder(t *testing.T) {
	doc := NewSpatialDocument([]dto.RecognizedWord{
		word("second", 60, 12, 100, 22),
		word("first", 10, 10, 50, 20),
		word("third", 10, 40, 50, 50),
		word("outside", 500, 500, 520, 510),
	})

	got, ok := doc.ScanRegion(dto.BoundingBox{X0: 0, Y0: 0, X1: 200, Y1: 100}, regexp.MustCompile(`.+`))
	require.True(t, ok)
	assert.Equal(t, "first second third", got)
}

func TestScanRegionBelowAnchor(t *testing.T) {
	doc := NewSpatialDocument([]dto.RecognizedWord{
		word("Wages,", 10, 10, 60, 20),
		word("compensation", 95, 10, 200, 20),
		word("52,000.00", 100, 25, 160, 35),
		word("7,800.00", 400, 25, 460, 35),
	})

	anchor, ok := doc.FindAnchor("Wages, tips, other compensation")
	require.True(t, ok)

	got, ok := doc.ScanRegion(BelowRegion(anchor), moneyRe)
	require.True(t, ok)
	assert.Equal(t, "52,000.00", got)
}

func TestRightRegion(t *testing.T) {
	r := RightRegion(dto.BoundingBox{X0: 10, Y0: 100, X1: 50, Y1: 110})
	assert.Equal(t, 50.0, r.X0)
	assert.Equal(t, 95.0, r.Y0)
	assert.Equal(t, 850.0, r.X1)
	assert.Equal(t, 115.0, r.Y1)
}

func TestFindAnchorUsesLineContext(t *testing.T) {
	// "3 Social security wages 4 Social security tax withheld" on one row
	doc := NewSpatialDocument([]dto.RecognizedWord{
		word("3", 0, 100, 5, 110),
		word("Social", 10, 100, 50, 110),
		word("security", 55, 100, 110, 110),
		word("wages", 115, 100, 150, 110),
		word("4", 300, 100, 305, 110),
		word("Social", 310, 100, 350, 110),
		word("security", 355, 100, 410, 110),
		word("tax", 415, 100, 435, 110),
		word("withheld", 440, 100, 500, 110),
	})

	wages, ok := doc.FindAnchor("Social security wages")
	require.True(t, ok)
	assert.Equal(t, 55.0, wages.X0)

	tax, ok := doc.FindAnchor("Social security tax withheld")
	require.True(t, ok)
	assert.Equal(t, 355.0, tax.X0)
}
