package gemdocs

import "strings"

// Link is a titled manifest entry pointing at one documentation page.
type Link struct {
	Title string
	URL   string
}

// manifestItemPrefix marks a manifest list item carrying a link.
const manifestItemPrefix = "- ["

// ParseManifest extracts links from line-oriented manifest text where each
// entry has the form "- [Title](URL)". Order and duplicates are preserved.
// Items missing the "](" or ")" delimiters are skipped and returned as
// warnings; lines that are not list items are ignored.
func ParseManifest(text string) (links []Link, warnings []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, manifestItemPrefix) {
			continue
		}

		link, ok := parseManifestLine(line)
		if !ok {
			warnings = append(warnings, line)
			continue
		}
		links = append(links, link)
	}
	return links, warnings
}

func parseManifestLine(line string) (Link, bool) {
	titlePart, rest, ok := strings.Cut(line, "](")
	if !ok {
		return Link{}, false
	}
	rawURL, _, ok := strings.Cut(rest, ")")
	if !ok {
		return Link{}, false
	}

	url := strings.TrimSpace(rawURL)
	if url == "" {
		return Link{}, false
	}

	return Link{
		Title: strings.TrimSpace(strings.TrimPrefix(titlePart, manifestItemPrefix)),
		URL:   url,
	}, true
}

// documentSourceSuffixes are stripped from fetched URLs to form storage keys.
// Longest first so ".md.txt" is removed as a unit.
var documentSourceSuffixes = []string{".md.txt", ".md", ".txt"}

// NormalizeURL returns the storage key for a fetched URL by removing
// trailing document-source extensions. NormalizeURL(NormalizeURL(u)) equals
// NormalizeURL(u).
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	for {
		trimmed := url
		for _, suffix := range documentSourceSuffixes {
			if strings.HasSuffix(trimmed, suffix) {
				trimmed = strings.TrimSuffix(trimmed, suffix)
				break
			}
		}
		if trimmed == url {
			return url
		}
		url = trimmed
	}
}
