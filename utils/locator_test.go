package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateCurrency(t *testing.T) {
	agiKeywords := KeywordRegex([]string{"Adjusted gross income"})

	tests := []struct {
		name    string
		text    string
		keyword []string
		line    string
		want    float64
	}{
		{
			name:    "closest after anchor beats last in line",
			text:    "11 Adjusted gross income. Subtract line 10 from line 9 . . . . . . 11 135,200.00",
			keyword: []string{"Adjusted gross income"},
			line:    "11",
			want:    135200,
		},
		{
			name:    "first money value after anchor",
			text:    "1 Wages, tips, other compensation 52,000.00 2 Federal income tax withheld 6,100.00",
			keyword: []string{"Wages, tips, other compensation"},
			want:    52000,
		},
		{
			name:    "grouped digits without cents",
			text:    "Net profit or (loss) 14,500",
			keyword: []string{"Net profit"},
			want:    14500,
		},
		{
			name:    "year is not an amount",
			text:    "Total tax 2023 4,812",
			keyword: []string{"Total tax"},
			want:    4812,
		},
		{
			name:    "ungrouped whole number is not an amount",
			text:    "Net profit or (loss) 14500",
			keyword: []string{"Net profit"},
			want:    0,
		},
		{
			name:    "zip code under a street number anchor",
			text:    "5 Oak Ave\nSpringfield IL 62704\nc Employer name\n5 Medicare wages and tips 52,000.00",
			keyword: []string{"Medicare wages and tips"},
			line:    "5",
			want:    52000,
		},
		{
			name:    "value before anchor when nothing follows",
			text:    "12,345.67 Medical and dental expenses",
			keyword: []string{"Medical and dental expenses"},
			want:    12345.67,
		},
		{
			name:    "wrapped onto next line",
			text:    "4a IRA distributions\n  20,000.00\n4b Taxable amount 15,000.00",
			keyword: []string{"IRA distributions"},
			want:    20000,
		},
		{
			name:    "stops at next numbered field",
			text:    "Ordinary dividends\n4a IRA distributions\n4b Taxable amount 15,000.00",
			keyword: []string{"Ordinary dividends"},
			want:    0,
		},
		{
			name:    "line number anchor",
			text:    "header\n31 See instructions 8,250.00",
			keyword: []string{"Net profit"},
			line:    "31",
			want:    8250,
		},
		{
			name:    "glued numbers ignored",
			text:    "Wages from Form W-2 and 1099-R 123-45-6789",
			keyword: []string{"Wages"},
			want:    0,
		},
		{
			name:    "no anchor",
			text:    "nothing to see 1,000.00",
			keyword: []string{"Adjusted gross income"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocateCurrency(tt.text, KeywordRegex(tt.keyword), LineRegex(tt.line))
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 0.0, LocateCurrency("", agiKeywords, nil))
	assert.Equal(t, 0.0, LocateCurrency("AGI 1,000.00", nil, nil))
}

func TestKeywordRegex(t *testing.T) {
	re := KeywordRegex([]string{"Adjusted gross income", "AGI"})
	assert.True(t, re.MatchString("ADJUSTED GROSSINCOME"))
	assert.True(t, re.MatchString("your agi is"))
	assert.False(t, re.MatchString("magic"))

	assert.Nil(t, KeywordRegex(nil))
	assert.Nil(t, KeywordRegex([]string{"  "}))
}

func TestLineRegex(t *testing.T) {
	re := LineRegex("8b")
	assert.True(t, re.MatchString("  8b Adjusted gross income"))
	assert.False(t, re.MatchString("8 Other income"))
	assert.False(t, re.MatchString("1,234.00"))
	assert.Nil(t, LineRegex(""))
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1234.56, ParseAmount("$1,234.56"))
	assert.Equal(t, 0.0, ParseAmount("abc"))
	assert.Equal(t, 0.0, ParseAmount("-5"))
	assert.Equal(t, 0.0, ParseAmount(""))
	assert.Equal(t, 10.13, ParseAmount("10.125"))
}
