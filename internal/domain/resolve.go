package domain

import (
	"path"
	"strings"
)

// ResolvedLink is a LinkReference canonicalised to a route. OK is false when
// the reference could not be attributed to any content source; such links
// are skipped, never reported as broken.
type ResolvedLink struct {
	Reference LinkReference
	Route     Route
	OK        bool
}

// Resolver turns link references into absolute routes.
type Resolver struct {
	sources []ContentSource
}

// NewResolver creates a Resolver over the given sources.
func NewResolver(sources []ContentSource) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve canonicalises ref. Absolute targets only lose one trailing slash.
// Relative targets are resolved against the route directory of the file they
// appear in, using "." and ".." segment semantics.
func (r *Resolver) Resolve(ref LinkReference) ResolvedLink {
	if strings.HasPrefix(ref.Href, "/") {
		route := ref.Href
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		return ResolvedLink{Reference: ref, Route: Route(route), OK: true}
	}

	src, ok := OwningSource(r.sources, ref.File.Path)
	if !ok {
		return ResolvedLink{Reference: ref}
	}

	resolved := path.Join(RouteDir(src, ref.File.Path), ref.Href)
	if base := path.Base(resolved); base == "index" {
		resolved = path.Dir(resolved)
	}
	return ResolvedLink{Reference: ref, Route: Route(resolved), OK: true}
}

// RouteDir returns the route directory that relative links in file resolve
// against: the source prefix joined with the file's directory inside the
// source. Index files resolve from their own directory like any other file.
func RouteDir(src ContentSource, file string) string {
	relDir := path.Dir(src.Rel(file))
	if relDir == "." {
		relDir = ""
	}
	return path.Join("/", src.Prefix, relDir)
}
