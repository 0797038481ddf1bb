package domain

import (
	"regexp"
	"strings"
)

// DefaultAssetExtensions lists the extensions of asset targets that are never
// checked as page links.
var DefaultAssetExtensions = []string{"png", "jpg", "jpeg", "gif", "svg", "webp", "ico", "pdf", "css", "js"}

var (
	// proseLinkRegex matches the target of [text](target).
	proseLinkRegex = regexp.MustCompile(`\]\(([^)#"?\s]+)\)`)
	// hrefRegex matches the target of href="target".
	hrefRegex = regexp.MustCompile(`href="([^"#?]+)"`)
)

// LinkReference is a link target as written in a content file.
type LinkReference struct {
	File ContentFile
	Href string
}

// Extractor finds internal link targets in raw content text.
type Extractor struct {
	assets map[string]bool
}

// NewExtractor creates an Extractor that skips targets ending in one of the
// given asset extensions (without the dot, matched case-insensitively).
func NewExtractor(assetExtensions []string) *Extractor {
	assets := make(map[string]bool, len(assetExtensions))
	for _, ext := range assetExtensions {
		assets[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Extractor{assets: assets}
}

// Extract returns the distinct internal link targets in content. Prose links
// come first, then href attributes, each in order of first appearance.
func (e *Extractor) Extract(content string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, re := range []*regexp.Regexp{proseLinkRegex, hrefRegex} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			href := m[1]
			if seen[href] || !e.IsInternal(href) {
				continue
			}
			seen[href] = true
			links = append(links, href)
		}
	}
	return links
}

// IsInternal reports whether href points at a page of this site.
// External URLs, mail links, same-page anchors and asset files are not.
func (e *Extractor) IsInternal(href string) bool {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return false
	case strings.HasPrefix(href, "mailto:"):
		return false
	case strings.HasPrefix(href, "#"):
		return false
	}
	return !e.isAsset(href)
}

func (e *Extractor) isAsset(href string) bool {
	dot := strings.LastIndexByte(href, '.')
	if dot < 0 {
		return false
	}
	ext := href[dot+1:]
	if strings.ContainsRune(ext, '/') {
		return false
	}
	return e.assets[strings.ToLower(ext)]
}
