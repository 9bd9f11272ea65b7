package dto

import (
	"errors"
	"testing"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannedDocCompleteIsTerminal(t *testing.T) {
	doc := NewScannedDoc("doc-1", "w2.pdf", OwnerParent1)
	require.Equal(t, StatusProcessing, doc.Status)

	err := doc.Complete(ExtractedData{FormType: FormTypeW2, RawText: "W-2", ConfidenceScore: 100})
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, doc.Status)
	assert.Equal(t, FormTypeW2, doc.DetectedType)
	assert.Equal(t, "W-2", doc.RawText)

	err = doc.Fail(errors.New("late failure"))
	assert.Equal(t, apperrors.InvalidStatusTransitionError, apperrors.TypeOf(err))
	assert.Equal(t, StatusComplete, doc.Status)

	err = doc.Complete(ExtractedData{})
	assert.Error(t, err)
}

func TestScannedDocFail(t *testing.T) {
	doc := NewScannedDoc("doc-2", "scan.png", OwnerUnassigned)

	require.NoError(t, doc.Fail(errors.New("OCR failed: no text")))
	assert.Equal(t, StatusError, doc.Status)
	assert.Equal(t, "OCR failed: no text", doc.Error)
	assert.Nil(t, doc.ExtractedData)
	assert.Error(t, doc.Complete(ExtractedData{}))
}

func TestParseOwner(t *testing.T) {
	for _, s := range []string{"student", "parent1", "parent2", ""} {
		owner, err := ParseOwner(s)
		assert.NoError(t, err)
		assert.Equal(t, Owner(s), owner)
	}

	_, err := ParseOwner("grandparent")
	assert.Equal(t, apperrors.ValidationError, apperrors.TypeOf(err))
}

func TestBoundingBoxGeometry(t *testing.T) {
	b := BoundingBox{X0: 10, Y0: 20, X1: 30, Y1: 60}

	x, y := b.Center()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 40.0, y)
	assert.Equal(t, 20.0, b.Width())
	assert.Equal(t, 40.0, b.Height())
	assert.True(t, b.Contains(10, 60))
	assert.False(t, b.Contains(9.9, 40))
}
