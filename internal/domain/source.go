// Package domain holds the content-tree model and the pure link-checking
// algorithms: route derivation, link extraction, link resolution and report
// aggregation. It performs no I/O.
package domain

import "strings"

// ContentExtension is the file extension of content documents.
const ContentExtension = ".mdx"

// ContentSource is a directory of content files mounted at a URL prefix.
// Dir is slash separated and relative to the site root.
type ContentSource struct {
	Dir    string
	Prefix string
}

// DefaultSources returns the site's content sources in lookup order.
func DefaultSources() []ContentSource {
	return []ContentSource{
		{Dir: "content", Prefix: "/docs"},
		{Dir: "spellbook", Prefix: "/spellbook"},
		{Dir: "bestiary", Prefix: "/bestiary"},
		{Dir: "magicitems", Prefix: "/magicitems"},
	}
}

// Contains reports whether the site-relative path lies inside the source's
// directory. Containment is by whole path segments, so "content" does not
// contain "contentx/a.mdx".
func (s ContentSource) Contains(path string) bool {
	dir := strings.TrimSuffix(s.Dir, "/")
	return strings.HasPrefix(path, dir+"/")
}

// Rel returns path relative to the source directory, without a leading slash.
func (s ContentSource) Rel(path string) string {
	return strings.TrimPrefix(path, strings.TrimSuffix(s.Dir, "/")+"/")
}

// ContentFile is one content document found during a run.
// Path is slash separated and relative to the site root.
type ContentFile struct {
	Path   string
	Source ContentSource
}

// OwningSource returns the first source whose directory contains path.
func OwningSource(sources []ContentSource, path string) (ContentSource, bool) {
	for _, s := range sources {
		if s.Contains(path) {
			return s, true
		}
	}
	return ContentSource{}, false
}
