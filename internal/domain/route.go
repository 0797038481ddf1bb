package domain

import (
	"sort"
	"strings"
)

// Route is a canonical absolute URL path served by the site.
type Route string

// String returns the route as a plain string.
func (r Route) String() string { return string(r) }

// DeriveRoute maps a content file to the route it is published at.
// The extension is stripped and a final "index" segment is dropped, so
// "content/combat/index.mdx" under prefix "/docs" becomes "/docs/combat".
func DeriveRoute(f ContentFile, ext string) Route {
	rel := strings.TrimSuffix(f.Source.Rel(f.Path), ext)
	if rel == "index" {
		rel = ""
	}
	rel = strings.TrimSuffix(rel, "/index")
	if rel == "" {
		if f.Source.Prefix == "" {
			return "/"
		}
		return Route(f.Source.Prefix)
	}
	return Route(f.Source.Prefix + "/" + rel)
}

// Collision records a route claimed by more than one content file.
type Collision struct {
	Route Route
	Files []string
}

// RouteSet is the set of routes derived for one run. It is immutable once
// built by BuildRouteSet.
type RouteSet struct {
	origins    map[Route][]string
	collisions []Route
}

// BuildRouteSet derives the route of every file. Files that map to an
// already claimed route are recorded as collisions and do not replace the
// first claimant.
func BuildRouteSet(files []ContentFile, ext string) RouteSet {
	rs := RouteSet{origins: make(map[Route][]string, len(files))}
	for _, f := range files {
		r := DeriveRoute(f, ext)
		prev, exists := rs.origins[r]
		if exists && len(prev) == 1 {
			rs.collisions = append(rs.collisions, r)
		}
		rs.origins[r] = append(prev, f.Path)
	}
	return rs
}

// Has reports whether r is a member of the set.
func (rs RouteSet) Has(r Route) bool {
	_, ok := rs.origins[r]
	return ok
}

// Len returns the number of distinct routes.
func (rs RouteSet) Len() int { return len(rs.origins) }

// Origin returns the first file that produced r.
func (rs RouteSet) Origin(r Route) (string, bool) {
	files, ok := rs.origins[r]
	if !ok {
		return "", false
	}
	return files[0], true
}

// Sorted returns all routes in lexical order.
func (rs RouteSet) Sorted() []Route {
	out := make([]Route, 0, len(rs.origins))
	for r := range rs.origins {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Collisions returns every route claimed by more than one file, in the
// order the collisions were found.
func (rs RouteSet) Collisions() []Collision {
	out := make([]Collision, 0, len(rs.collisions))
	for _, r := range rs.collisions {
		files := make([]string, len(rs.origins[r]))
		copy(files, rs.origins[r])
		out = append(out, Collision{Route: r, Files: files})
	}
	return out
}
