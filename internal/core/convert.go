package core

// convert.go turns raw CSV cells into typed record fields.
//
// Dates follow the single M/D/YY pattern of the upload format. Numbers follow
// JavaScript's unary-plus rules: blank cells are 0, garbage is NaN.

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5/pgtype"
)

// TwoDigitYearPivot is the last two-digit year read as 19xx; 69 → 1969, 68 → 2068.
const TwoDigitYearPivot = 68

var (
	// shortDateRegex matches M/D/YY with 1-2 digit parts. Leading blanks
	// before a part are tolerated, trailing text is not.
	shortDateRegex = regexp.MustCompile(`^\s*(\d{1,2})/\s*(\d{1,2})/\s*(\d{1,2})$`)

	// numericRegex validates a decimal literal after trimming.
	// Matches integers, decimals, and scientific notation.
	numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	hexRegex    = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	octalRegex  = regexp.MustCompile(`^0[oO][0-7]+$`)
	binaryRegex = regexp.MustCompile(`^0[bB][01]+$`)
)

// ParseShortDate parses an M/D/YY cell into a UTC calendar date.
//
// Out-of-range parts roll over the way a calendar does (2/30/24 is March 1st,
// month 0 is December of the previous year). A cell that does not match the
// pattern returns an invalid date rather than an error.
func ParseShortDate(s string) pgtype.Date {
	m := shortDateRegex.FindStringSubmatch(s)
	if m == nil {
		return pgtype.Date{Valid: false}
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])

	year := 2000 + yy
	if yy > TwoDigitYearPivot {
		year = 1900 + yy
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return pgtype.Date{Time: t, Valid: true}
}

// CoerceNumber converts a cell to float64 with JavaScript unary-plus semantics.
//
//	""        → 0
//	" 12.5 "  → 12.5
//	"1e3"     → 1000
//	"0x1F"    → 31
//	"Infinity"→ +Inf
//	"12abc"   → NaN
func CoerceNumber(s string) float64 {
	s = strings.TrimFunc(s, isJSWhitespace)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if numericRegex.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}
		// ParseFloat already returns ±Inf on overflow, matching JS.
		return f
	}

	switch {
	case hexRegex.MatchString(s):
		return radixValue(s[2:], 16)
	case octalRegex.MatchString(s):
		return radixValue(s[2:], 8)
	case binaryRegex.MatchString(s):
		return radixValue(s[2:], 2)
	}

	return math.NaN()
}

// radixValue accumulates digits as float64 so long literals degrade in
// precision instead of overflowing.
func radixValue(digits string, base int) float64 {
	var v float64
	for _, c := range digits {
		d, _ := strconv.ParseInt(string(c), base, 8)
		v = v*float64(base) + float64(d)
	}
	return v
}

func isJSWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
