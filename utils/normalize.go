package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// "2,000. 00" -> "2,000.00"
	splitDecimalRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+)\.\s+(\d{2})\b`)

	// "52.000,00" -> "52,000.00"
	europeanGroupedRe = regexp.MustCompile(`\b(\d{1,3}(?:\.\d{3})+),(\d{2})\b`)

	// "500,00" -> "500.00"
	commaDecimalRe = regexp.MustCompile(`\b(\d+),(\d{2})\b`)

	// whole tokens made of digits and the letters OCR confuses with them
	confusableRunRe = regexp.MustCompile(`\b[0-9lIO](?:[0-9lIO,.]*[0-9lIO])?\b`)

	keywordTypos = strings.NewReplacer(
		"$chedule", "Schedule",
		"Gr0ss", "Gross",
		"lncome", "Income",
		"ltemized", "Itemized",
	)

	digitConfusions = strings.NewReplacer("l", "1", "I", "1", "O", "0")
)

// maxNormalizePasses bounds the fixed-point loop in Normalize
const maxNormalizePasses = 5

// Normalize cleans OCR and PDF text of broken number formats, character
// confusions inside numbers and known keyword typos. It is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := norm.NFKC.String(raw)
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizePass(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func normalizePass(text string) string {
	text = splitDecimalRe.ReplaceAllString(text, "$1.$2")

	text = europeanGroupedRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := europeanGroupedRe.FindStringSubmatch(m)
		return strings.ReplaceAll(sub[1], ".", ",") + "." + sub[2]
	})
	text = commaDecimalRe.ReplaceAllString(text, "$1.$2")

	text = confusableRunRe.ReplaceAllStringFunc(text, repairNumericRun)

	return keywordTypos.Replace(text)
}

// repairNumericRun maps l/I -> 1 and O -> 0 in a run that already holds a
// digit. Runs of letters only ("IO", "Ol") are left alone.
func repairNumericRun(run string) string {
	if len(run) < 2 || !strings.ContainsAny(run, "0123456789") || !strings.ContainsAny(run, "lIO") {
		return run
	}
	return digitConfusions.Replace(run)
}
