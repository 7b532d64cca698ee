package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned for clock strings ParseClock cannot read.
var ErrInvalidTimeFormat = errors.New(`time must look like "9:30 AM" or "21:30"`)

// ParseClock converts "H:MM" or "HH:MM", optionally followed by AM or PM,
// into minutes since midnight. Empty input is 0.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	meridian := ""
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		meridian = upper[len(upper)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, ErrInvalidTimeFormat
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return 0, ErrInvalidTimeFormat
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidTimeFormat
	}

	switch meridian {
	case "":
		if hours > 23 {
			return 0, ErrInvalidTimeFormat
		}
	case "AM":
		if hours < 1 || hours > 12 {
			return 0, ErrInvalidTimeFormat
		}
		if hours == 12 {
			hours = 0
		}
	case "PM":
		if hours < 1 || hours > 12 {
			return 0, ErrInvalidTimeFormat
		}
		if hours != 12 {
			hours += 12
		}
	}
	return hours*60 + minutes, nil
}

// ClockMinutes is ParseClock for ordering: unreadable input sorts as 0.
func ClockMinutes(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// FormatClock renders minutes since midnight as "h:mm AM".
func FormatClock(minutes int) string {
	minutes = max(0, min(24*60-1, minutes))
	h, m := minutes/60, minutes%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// NormalizeClock canonicalises a clock string. Empty stays empty.
func NormalizeClock(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(m), nil
}
