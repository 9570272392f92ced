package jsonresume

import (
	"strings"

	"github.com/igegov/cv-portfolio/internal/types"
)

// countryCodes maps lowercased country names to ISO-3166-1 alpha-2 codes
var countryCodes = map[string]string{
	"bulgaria":                 "BG",
	"usa":                      "US",
	"united states":            "US",
	"united states of america": "US",
	"england":                  "GB",
	"united kingdom":           "GB",
	"uk":                       "GB",
	"germany":                  "DE",
	"france":                   "FR",
	"spain":                    "ES",
}

// ParseLocation splits "City, Region" free text into a structured location.
// The first part is the city and the last part (if any) the region.
func ParseLocation(location string) *types.Location {
	var parts []string
	for _, p := range strings.Split(location, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	loc := &types.Location{City: parts[0]}
	if len(parts) > 1 {
		loc.Region = parts[len(parts)-1]
		loc.CountryCode = countryCodes[strings.ToLower(loc.Region)]
	}
	return loc
}
