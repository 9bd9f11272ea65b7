package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	numberTokenRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	centsTokenRe  = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}$`)
	// whole dollars only count when digit-grouped; bare integers are ZIP
	// codes, years, street numbers and the like
	wholeTokenRe = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)

	// moneyRe is the value pattern region scans look for
	moneyRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d+\.\d{2}`)

	// a line that starts another numbered field, e.g. "12a Standard deduction"
	numberedFieldRe = regexp.MustCompile(`^\s*\d{1,2}[a-z]?\s+[A-Za-z]`)

	// "Form 1098", "Form(s) 1099" directly before a number
	formRefRe = regexp.MustCompile(`(?i)\bforms?(?:\(s\))?\s*$`)
)

// lookahead is how many lines after the anchor line may hold a wrapped value
const lookahead = 2

// KeywordRegex builds a case-insensitive alternation of keywords. Whitespace
// inside a keyword matches any amount of whitespace, including none.
func KeywordRegex(keywords []string) *regexp.Regexp {
	var alts []string
	for _, kw := range keywords {
		parts := strings.Fields(kw)
		if len(parts) == 0 {
			continue
		}
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alt := strings.Join(parts, `\s*`)
		if isWordRune(firstRune(kw)) {
			alt = `\b` + alt
		}
		if isWordRune(lastRune(kw)) {
			alt += `\b`
		}
		alts = append(alts, alt)
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

// LineRegex matches a line that starts with the given form line number
func LineRegex(line string) *regexp.Regexp {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(line) + `(?:\s|$)`)
}

// LocateCurrency finds the dollar amount belonging to the label matched by
// keywordRe or lineRe. Either regex may be nil. An anchor line with no value
// nearby gives way to the next anchor line. It returns 0 when nothing
// qualifies.
func LocateCurrency(text string, keywordRe, lineRe *regexp.Regexp) float64 {
	if text == "" || (keywordRe == nil && lineRe == nil) {
		return 0
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		anchor, ok := anchorEnd(line, keywordRe, lineRe)
		if !ok {
			continue
		}

		if v, ok := firstAmount(line[anchor:]); ok {
			return v
		}
		if v, ok := lastAmount(line[:anchor]); ok {
			return v
		}
		for _, next := range lines[i+1 : min(len(lines), i+1+lookahead)] {
			// the next numbered field owns its own value
			if numberedFieldRe.MatchString(next) {
				break
			}
			if v, ok := firstAmount(next); ok {
				return v
			}
		}
	}
	return 0
}

// anchorEnd returns the offset just past the label in line. A keyword match
// wins over a line-number match on the same line.
func anchorEnd(line string, keywordRe, lineRe *regexp.Regexp) (int, bool) {
	if keywordRe != nil {
		if loc := keywordRe.FindStringIndex(line); loc != nil {
			return loc[1], true
		}
	}
	if lineRe != nil {
		if loc := lineRe.FindStringIndex(line); loc != nil {
			return loc[1], true
		}
	}
	return 0, false
}

type amountToken struct {
	raw   string
	value float64
	cents bool
}

// amountTokens lists the candidate amounts in s in order. Numbers glued to a
// letter or hyphen ("1099-R", "W-2", "12a", SSNs) and form numbers are not
// amounts.
func amountTokens(s string) []amountToken {
	var out []amountToken
	for _, loc := range numberTokenRe.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		raw := strings.TrimRight(s[start:end], ",")
		end = start + len(raw)

		if start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s[:start]); r == '-' || unicode.IsLetter(r) {
				continue
			}
		}
		if end < len(s) {
			if r, _ := utf8.DecodeRuneInString(s[end:]); r == '-' || unicode.IsLetter(r) {
				continue
			}
		}

		if formRefRe.MatchString(s[:start]) {
			continue
		}

		switch {
		case centsTokenRe.MatchString(raw):
			out = append(out, amountToken{raw: raw, value: ParseAmount(raw), cents: true})
		case wholeTokenRe.MatchString(raw):
			v := ParseAmount(raw)
			if v <= 100 {
				continue
			}
			out = append(out, amountToken{raw: raw, value: v})
		}
	}
	return out
}

// firstAmount prefers the first explicit money value, then the first
// grouped-digit value.
func firstAmount(s string) (float64, bool) {
	tokens := amountTokens(s)
	for _, t := range tokens {
		if t.cents {
			return t.value, true
		}
	}
	if len(tokens) > 0 {
		return tokens[0].value, true
	}
	return 0, false
}

// lastAmount is firstAmount scanning from the end, for text before an anchor.
func lastAmount(s string) (float64, bool) {
	tokens := amountTokens(s)
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].cents {
			return tokens[i].value, true
		}
	}
	if len(tokens) > 0 {
		return tokens[len(tokens)-1].value, true
	}
	return 0, false
}

// ParseAmount converts "1,234.56" or "$1,234" to a float rounded to cents.
// Anything unparseable is 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}
	return d.Round(2).InexactFloat64()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	s = strings.TrimSpace(s)
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	s = strings.TrimSpace(s)
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
