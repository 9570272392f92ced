package jsonresume

import (
	"net/url"
	"strings"

	"github.com/igegov/cv-portfolio/internal/types"
)

// networkHosts maps hostname fragments to display network names, checked in order
var networkHosts = []struct {
	fragment string
	network  string
}{
	{"linkedin.com", "LinkedIn"},
	{"github.com", "GitHub"},
	{"vimeo.com", "Vimeo"},
	{"youtube.com", "YouTube"},
	{"youtu.be", "YouTube"},
	{"imdb.com", "IMDb"},
}

// IsHTTPURL reports whether value is a well-formed absolute http(s) URL
func IsHTTPURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// NetworkFromURL derives a network name from a URL's hostname.
// Unknown hosts return the bare hostname; unparseable URLs return "Web".
func NetworkFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return "Web"
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, h := range networkHosts {
		if strings.Contains(host, h.fragment) {
			return h.network
		}
	}
	return host
}

// UsernameFromURL returns the last non-empty path segment of a URL, or ""
func UsernameFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// BuildProfiles merges contact-derived URLs into a profile list keyed by URL.
// Explicit linkedin/vimeo/imdb fields are inserted first; generic links follow.
// The first entry seen for a URL wins and later duplicates are dropped.
func BuildProfiles(contact types.Contact) []types.Profile {
	profiles := make([]types.Profile, 0, len(contact.Links)+3)
	seen := make(map[string]struct{})

	add := func(rawURL, network string) {
		key := strings.TrimSpace(rawURL)
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		profiles = append(profiles, types.Profile{
			Network:  network,
			Username: UsernameFromURL(key),
			URL:      key,
		})
	}

	explicit := []struct {
		url     string
		network string
	}{
		{contact.LinkedIn, "LinkedIn"},
		{contact.Vimeo, "Vimeo"},
		{contact.IMDb, "IMDb"},
	}
	for _, e := range explicit {
		if IsHTTPURL(e.url) {
			add(e.url, e.network)
		}
	}

	for _, link := range contact.Links {
		if IsHTTPURL(link.URL) {
			add(link.URL, NetworkFromURL(link.URL))
		}
	}

	return profiles
}
