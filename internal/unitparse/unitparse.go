// Package unitparse extracts numeric quantities from free-text specification
// fields. Every function degrades to an explicit default or a false ok flag
// on unparseable input; nothing here returns an error.
package unitparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangePattern  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	gbPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(gb|tb)`)
	yearsPattern  = regexp.MustCompile(`(\d+)\s*years?`)
	hoursPattern  = regexp.MustCompile(`(\d+)\s*hours?`)
	inchesPattern = regexp.MustCompile(`(\d+\.?\d*)\s*(?:inch(?:es)?|")`)
	nitsPattern   = regexp.MustCompile(`(\d+)\s*nits?`)
)

// LeadTimeDays parses a delivery-time expression such as "15-30 days",
// "10 days" or "2 weeks" into an average lead time in days. Unparseable
// input yields the supplied default.
func LeadTimeDays(s string, def float64) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}

	factor := 1.0
	if strings.Contains(s, "week") {
		factor = 7
	}

	if m := rangePattern.FindStringSubmatch(s); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return (lo + hi) / 2 * factor
	}

	if m := numberPattern.FindString(s); m != "" {
		n, _ := strconv.ParseFloat(m, 64)
		return n * factor
	}

	return def
}

// Gigabytes extracts a capacity in GB, converting TB values.
func Gigabytes(s string) (float64, bool) {
	m := gbPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "tb" {
		n *= 1024
	}
	return n, true
}

// WarrantyYears extracts a warranty duration in whole years.
func WarrantyYears(s string) (int, bool) {
	m := yearsPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// Hours extracts an hour count, e.g. battery life.
func Hours(s string) (int, bool) {
	m := hoursPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// Inches extracts a screen diagonal.
func Inches(s string) (float64, bool) {
	m := inchesPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	return n, err == nil
}

// Nits extracts a display brightness.
func Nits(s string) (float64, bool) {
	m := nitsPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	return n, err == nil
}

// LeadingNumber extracts the first number appearing anywhere in s.
func LeadingNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	return n, err == nil
}
