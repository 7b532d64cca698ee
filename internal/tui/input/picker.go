// Package input filters what the user types into the month and year pickers.
package input

import (
	"strconv"
	"strings"
	"time"
)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchingYears returns the years whose decimal form starts with the digits
// typed so far.
func MatchingYears(typed string, years []int) []int {
	prefix := Digits(typed)
	if prefix == "" {
		return years
	}
	matches := make([]int, 0, len(years))
	for _, y := range years {
		if strings.HasPrefix(strconv.Itoa(y), prefix) {
			matches = append(matches, y)
		}
	}
	return matches
}

// MatchingMonths returns the months whose name starts with typed, ignoring case.
func MatchingMonths(typed string) []time.Month {
	prefix := strings.ToLower(strings.TrimSpace(typed))
	matches := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), prefix) {
			matches = append(matches, m)
		}
	}
	return matches
}

// MonthAutocomplete returns the month typed identifies, if exactly one
// month name starts with it.
func MonthAutocomplete(typed string) (time.Month, bool) {
	matches := MatchingMonths(typed)
	if len(matches) != 1 {
		return 0, false
	}
	return matches[0], true
}
