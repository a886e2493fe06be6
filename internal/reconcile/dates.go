// Package reconcile compares the activity recorded in a log dataset with
// the activity reviewers reported for themselves.
//
// Everything in this package is a pure function of its arguments: no
// logging, no I/O and no errors. Malformed input degrades to dropped rows
// or zero values.
package reconcile

import (
	"regexp"
	"strings"
	"unicode"
)

// NormalizeConfirmedDate converts a log confirmation timestamp into a
// canonical YYYY-MM-DD date. Only the text before the first whitespace is
// read. Accepted forms, in order:
//
//	2026-1-16   year-month-day
//	1/16/2026   month/day/year
//
// It returns "" when the timestamp is empty or not in either form.
func NormalizeConfirmedDate(raw string) string {
	datePart := raw
	if i := strings.IndexFunc(raw, unicode.IsSpace); i >= 0 {
		datePart = raw[:i]
	}

	switch {
	case strings.Contains(datePart, "-"):
		seg := strings.Split(datePart, "-")
		if len(seg) < 3 {
			return ""
		}
		return canonicalDate(seg[0], seg[1], seg[2])
	case strings.Contains(datePart, "/"):
		seg := strings.Split(datePart, "/")
		if len(seg) < 3 {
			return ""
		}
		return canonicalDate(seg[2], seg[0], seg[1])
	}
	return ""
}

var (
	fourDigits   = regexp.MustCompile(`\d{4}`)
	rangeSegment = regexp.MustCompile(`[+,]`)
)

// ExpandReportDates converts a report date expression into the canonical
// dates it names, in input order. Report dates are day first:
//
//	16/1/2026        one day
//	15+16/1/2026     days 15 and 16 of January 2026
//	15/1 + 16/1/2026 a day/month pair using the year found elsewhere
//
// Segments are separated by "+" or ",". A bare day takes its month and
// year from the next segment that has them. A day/month pair without a
// year uses the first four-digit number in the expression; without one
// the pair is dropped. Unreadable segments are dropped. Duplicates are
// kept.
func ExpandReportDates(raw string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return []string{}
	}

	fallbackYear := fourDigits.FindString(cleaned)

	segments := rangeSegment.Split(cleaned, -1)
	parts := make([][]string, len(segments))
	for i, s := range segments {
		parts[i] = strings.Split(s, "/")
	}

	dates := make([]string, 0, len(parts))
	for i, seg := range parts {
		var day, month, year string
		switch len(seg) {
		case 3:
			day, month, year = seg[0], seg[1], seg[2]
		case 2:
			day, month, year = seg[0], seg[1], fallbackYear
		case 1:
			day = seg[0]
			month, year = borrowMonthYear(parts[i+1:], fallbackYear)
		default:
			continue
		}
		if d := canonicalDate(year, month, day); d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}

// borrowMonthYear returns the month and year of the first later segment
// that carries a month.
func borrowMonthYear(rest [][]string, fallbackYear string) (month, year string) {
	for _, seg := range rest {
		switch len(seg) {
		case 3:
			return seg[1], seg[2]
		case 2:
			return seg[1], fallbackYear
		}
	}
	return "", ""
}

// canonicalDate joins year, month and day as YYYY-MM-DD, zero padding month
// and day to two characters. Any empty component yields "".
func canonicalDate(year, month, day string) string {
	if year == "" || month == "" || day == "" {
		return ""
	}
	return year + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
