package jsonresume

import (
	"regexp"
	"strings"

	"github.com/igegov/cv-portfolio/internal/types"
)

var (
	ongoingPattern   = regexp.MustCompile(`(?i)^(present|current|ongoing)$`)
	fullISOPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	yearMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearOnlyPattern  = regexp.MustCompile(`^(\d{4})$`)
	monthYearPattern = regexp.MustCompile(`^([A-Za-z]{3,9})\s+(\d{4})$`)
	yearRangePattern = regexp.MustCompile(`^(\d{4})\s*-\s*(\d{4})$`)
)

// monthNumbers maps the first three letters of a month name to its number
var monthNumbers = map[string]string{
	"jan": "01",
	"feb": "02",
	"mar": "03",
	"apr": "04",
	"may": "05",
	"jun": "06",
	"jul": "07",
	"aug": "08",
	"sep": "09",
	"oct": "10",
	"nov": "11",
	"dec": "12",
}

// NormalizeDate converts a free-form date into ISO-8601 (YYYY-MM-DD).
// Accepted forms are YYYY-MM-DD, YYYY-MM, YYYY and "<Month> YYYY".
// The second return value is false when the date is ongoing ("Present") or unrecognized.
func NormalizeDate(input string) (string, bool) {
	value := strings.TrimSpace(input)
	if value == "" || ongoingPattern.MatchString(value) {
		return "", false
	}

	if m := fullISOPattern.FindStringSubmatch(value); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}

	if m := yearMonthPattern.FindStringSubmatch(value); m != nil {
		return m[1] + "-" + m[2] + "-01", true
	}

	if m := yearOnlyPattern.FindStringSubmatch(value); m != nil {
		return m[1] + "-01-01", true
	}

	if m := monthYearPattern.FindStringSubmatch(value); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[1][:3])]; ok {
			return m[2] + "-" + month + "-01", true
		}
	}

	return "", false
}

// IsOngoing reports whether the date text marks an open-ended period
func IsOngoing(input string) bool {
	return ongoingPattern.MatchString(strings.TrimSpace(input))
}

// PortfolioDates derives a full-calendar-year date range from a portfolio year.
// "2021-2025" spans 2021-01-01..2025-12-31; a single date spans its whole year.
func PortfolioDates(year string) (start, end string) {
	trimmed := strings.TrimSpace(year)
	if trimmed == "" {
		return "", ""
	}

	if m := yearRangePattern.FindStringSubmatch(trimmed); m != nil {
		return m[1] + "-01-01", m[2] + "-12-31"
	}

	normalized, ok := NormalizeDate(trimmed)
	if !ok {
		return "", ""
	}

	y := normalized[:4]
	return y + "-01-01", y + "-12-31"
}

// DroppedDate is a source date string that did not survive normalization
type DroppedDate struct {
	Path  string
	Value string
}

// DroppedDates lists the non-empty, non-ongoing source dates that Map silently omits.
// It exists for diagnostics only; Map itself never reports them.
func DroppedDates(cv *types.CVData) []DroppedDate {
	if cv == nil {
		return nil
	}

	var dropped []DroppedDate
	check := func(path, value string) {
		if strings.TrimSpace(value) == "" || IsOngoing(value) {
			return
		}
		if _, ok := NormalizeDate(value); !ok {
			dropped = append(dropped, DroppedDate{Path: path, Value: value})
		}
	}

	for _, item := range cv.Experience {
		check("experience."+item.ID+".startDate", item.StartDate)
		check("experience."+item.ID+".endDate", item.EndDate)
	}
	for _, item := range cv.Education {
		check("education."+item.ID+".startDate", item.StartDate)
		check("education."+item.ID+".endDate", item.EndDate)
	}
	for _, item := range cv.Portfolio {
		if strings.TrimSpace(item.Year) == "" {
			continue
		}
		if start, _ := PortfolioDates(item.Year); start == "" {
			dropped = append(dropped, DroppedDate{Path: "portfolio." + item.ID + ".year", Value: item.Year})
		}
	}
	return dropped
}
