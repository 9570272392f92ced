// Package links maintains the outbound game URLs of collection portfolio items.
package links

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRetryCandidates caps the alternative slugs tried for a broken link.
const MaxRetryCandidates = 4

var (
	megawaysRe  = regexp.MustCompile(`(?i)mega\s*ways`)
	camelCaseRe = regexp.MustCompile(`([a-z])([A-Z])`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
	theRe       = regexp.MustCompile(`(?i)\bthe\b`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// Slugify turns a game name into a URL path segment: "Piñatas & Ponies" becomes
// "pinatas-ponies", "DragonBoyz" becomes "dragon-boyz".
func Slugify(name string) string {
	s := megawaysRe.ReplaceAllString(name, "megaways")
	s = camelCaseRe.ReplaceAllString(s, "$1-$2")
	s = stripMarks(s)
	s = strings.ReplaceAll(s, "&", "-")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripMarks decomposes s (NFKD) and drops the combining marks.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// BaseSlug returns the last path segment of an existing URL, or the slug of name
// when there is no usable URL.
func BaseSlug(name, existingURL string) string {
	if existingURL != "" {
		parts := strings.Split(existingURL, "/")
		if last := parts[len(parts)-1]; last != "" {
			return last
		}
	}
	return Slugify(name)
}

// RetryCandidates lists alternative slugs for a name whose base slug did not resolve,
// in the order they should be tried.
func RetryCandidates(name, baseSlug string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(slug string) {
		if slug == "" || slug == baseSlug || seen[slug] {
			return
		}
		seen[slug] = true
		out = append(out, slug)
	}

	add(Slugify(theRe.ReplaceAllString(name, " ")))
	add(Slugify(digitsRe.ReplaceAllString(name, " ")))
	add(Slugify(strings.ReplaceAll(name, "&", " and ")))

	if len(baseSlug) > 1 && strings.HasSuffix(baseSlug, "s") {
		add(strings.TrimSuffix(baseSlug, "s"))
	} else {
		add(baseSlug + "s")
	}

	if strings.Contains(baseSlug, "judgment") {
		add(strings.ReplaceAll(baseSlug, "judgment", "judgement"))
	}
	if strings.Contains(baseSlug, "judgement") {
		add(strings.ReplaceAll(baseSlug, "judgement", "judgment"))
	}

	if len(out) > MaxRetryCandidates {
		out = out[:MaxRetryCandidates]
	}
	return out
}
