package utils

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

const (
	// AnchorSimilarityThreshold is the minimum similarity FindAnchor accepts
	AnchorSimilarityThreshold = 0.70

	// SameLineTolerance is the vertical band in which words count as one line
	SameLineTolerance = 10.0
)

// SpatialDocument indexes the recognized words of one page
type SpatialDocument struct {
	words []dto.RecognizedWord
	keys  []string

	// reading order: order[k] is a word index, pos[i] its position in order
	order []int
	pos   []int
	line  []int
}

// NewSpatialDocument builds the index. It returns nil when words is empty so
// callers can treat "no layout" and "no document" the same way.
func NewSpatialDocument(words []dto.RecognizedWord) *SpatialDocument {
	if len(words) == 0 {
		return nil
	}
	doc := &SpatialDocument{
		words: words,
		keys:  make([]string, len(words)),
	}
	for i, w := range words {
		doc.keys[i] = anchorKey(w.Text)
	}
	doc.order, doc.line = readingOrder(words)
	doc.pos = make([]int, len(words))
	for k, i := range doc.order {
		doc.pos[i] = k
	}
	return doc
}

// Len returns the number of indexed words
func (d *SpatialDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// FindAnchor locates the word that best matches the longest token of phrase.
// Candidates that clear AnchorSimilarityThreshold are ranked by similarity
// plus how many of the phrase's other tokens sit next to them on the same
// line, so "Social security tax withheld" lands on the second "security" of
// a W-2 row rather than the first.
func (d *SpatialDocument) FindAnchor(phrase string) (dto.BoundingBox, bool) {
	if d == nil {
		return dto.BoundingBox{}, false
	}
	target, others := splitPhrase(phrase)
	if target == "" {
		return dto.BoundingBox{}, false
	}

	best, bestScore := -1, 0.0
	for i, key := range d.keys {
		if key == "" {
			continue
		}
		sim := CalculateSimilarity(target, key)
		if sim < AnchorSimilarityThreshold {
			continue
		}
		score := sim + contextWeight*d.contextScore(i, others)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return dto.BoundingBox{}, false
	}
	return d.words[best].BoundingBox, true
}

const contextWeight = 0.5

// contextScore is the fraction of tokens found among the words around i on
// its own line, looking len(tokens) words either way.
func (d *SpatialDocument) contextScore(i int, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	window := len(tokens) + 1
	p := d.pos[i]
	lo, hi := max(0, p-window), min(len(d.order)-1, p+window)

	found := 0
	for _, tok := range tokens {
		for k := lo; k <= hi; k++ {
			j := d.order[k]
			if j == i || d.line[j] != d.line[i] || d.keys[j] == "" {
				continue
			}
			if CalculateSimilarity(tok, d.keys[j]) >= AnchorSimilarityThreshold {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(tokens))
}

// ScanRegion joins the words whose centers fall inside rect in reading order
// and returns the first match of pattern in that text.
func (d *SpatialDocument) ScanRegion(rect dto.BoundingBox, pattern *regexp.Regexp) (string, bool) {
	if d == nil || pattern == nil {
		return "", false
	}

	var inside []dto.RecognizedWord
	for _, w := range d.words {
		if rect.Contains(w.BoundingBox.Center()) {
			inside = append(inside, w)
		}
	}
	if len(inside) == 0 {
		return "", false
	}

	order, _ := readingOrder(inside)
	texts := make([]string, 0, len(order))
	for _, i := range order {
		texts = append(texts, inside[i].Text)
	}

	m := pattern.FindString(strings.Join(texts, " "))
	return m, m != ""
}

// BelowRegion is the rectangle under an anchor, used for grid-style boxes
// such as the W-2. Sizes scale with the anchor height so the same shape
// works for PDF points and OCR pixels.
func BelowRegion(anchor dto.BoundingBox) dto.BoundingBox {
	h := anchorHeight(anchor)
	return dto.BoundingBox{
		X0: anchor.X0 - 12*h,
		Y0: anchor.Y1,
		X1: anchor.X0 + 25*h,
		Y1: anchor.Y1 + 4*h,
	}
}

// RightRegion is the wide rectangle to the right of an anchor, used for
// line-style forms such as the 1040.
func RightRegion(anchor dto.BoundingBox) dto.BoundingBox {
	h := anchorHeight(anchor)
	return dto.BoundingBox{
		X0: anchor.X1,
		Y0: anchor.Y0 - h/2,
		X1: anchor.X1 + 80*h,
		Y1: anchor.Y1 + h/2,
	}
}

func anchorHeight(b dto.BoundingBox) float64 {
	if h := b.Height(); h > 0 {
		return h
	}
	return SameLineTolerance
}

// readingOrder sorts word indexes top to bottom, grouping words whose
// vertical centers are within SameLineTolerance of the line's first word,
// then left to right. line[i] is the line number of word i.
func readingOrder(words []dto.RecognizedWord) (order []int, line []int) {
	order = make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	centerY := func(i int) float64 {
		_, y := words[i].BoundingBox.Center()
		return y
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centerY(order[a]) < centerY(order[b])
	})

	line = make([]int, len(words))
	for start, n := 0, 0; start < len(order); n++ {
		lineY := centerY(order[start])
		end := start + 1
		for end < len(order) && centerY(order[end])-lineY <= SameLineTolerance {
			end++
		}
		group := order[start:end]
		sort.SliceStable(group, func(a, b int) bool {
			return words[group[a]].BoundingBox.X0 < words[group[b]].BoundingBox.X0
		})
		for _, i := range group {
			line[i] = n
		}
		start = end
	}
	return order, line
}

// splitPhrase returns the longest token of phrase and the remaining distinct
// tokens.
func splitPhrase(phrase string) (longest string, others []string) {
	var tokens []string
	for _, tok := range strings.Fields(phrase) {
		if key := anchorKey(tok); key != "" {
			tokens = append(tokens, key)
		}
	}
	for _, tok := range tokens {
		if len([]rune(tok)) > len([]rune(longest)) {
			longest = tok
		}
	}
	seen := map[string]bool{longest: true}
	for _, tok := range tokens {
		if !seen[tok] {
			seen[tok] = true
			others = append(others, tok)
		}
	}
	return longest, others
}

// anchorKey lowercases a word and trims surrounding punctuation
func anchorKey(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(s)
}
