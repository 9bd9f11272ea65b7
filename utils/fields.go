package utils

import (
	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/utils/taxrules"
)

// regionFunc turns an anchor box into the rectangle its value is expected in
type regionFunc func(anchor dto.BoundingBox) dto.BoundingBox

// locateField reads one currency field of cfg from plain text
func locateField(text string, cfg taxrules.YearConfig, id string) float64 {
	fc, ok := cfg.Field(id)
	if !ok {
		return 0
	}
	return LocateCurrency(text, KeywordRegex(fc.Keywords), LineRegex(fc.Line))
}

// locateSpatialField tries every keyword of the field as an anchor in doc and
// scans region(anchor) for a money value. Without word boxes, or when no
// anchor yields a value, it falls back to locateField.
func locateSpatialField(text string, doc *SpatialDocument, cfg taxrules.YearConfig, id string, region regionFunc) float64 {
	fc, ok := cfg.Field(id)
	if !ok {
		return 0
	}
	if doc != nil {
		for _, kw := range fc.Keywords {
			anchor, found := doc.FindAnchor(kw)
			if !found {
				continue
			}
			if m, found := doc.ScanRegion(region(anchor), moneyRe); found {
				if v := ParseAmount(m); v > 0 {
					return v
				}
			}
		}
	}
	return LocateCurrency(text, KeywordRegex(fc.Keywords), LineRegex(fc.Line))
}
