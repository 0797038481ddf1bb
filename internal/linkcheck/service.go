// Package linkcheck provides the application service that validates internal
// links across the site's content sources.
package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"

	"github.com/dmdocs/linkcheck/internal/domain"
)

// FileLister abstracts recursive enumeration of content files. A missing
// directory must yield an error matching io/fs.ErrNotExist.
type FileLister interface {
	ListFiles(ctx context.Context, dir, ext string) ([]string, error)
}

// ContentReader abstracts reading a content file's full text.
type ContentReader interface {
	ReadFile(ctx context.Context, filename string) (string, error)
}

// Normalizer abstracts bringing file paths and link targets to one Unicode form.
type Normalizer interface {
	Path(p string) string
	Href(h string) string
}

// TitleReader abstracts extracting a page title from content frontmatter.
type TitleReader interface {
	GetTitle(content string) (string, error)
}

// identity is the Normalizer used when none is configured.
type identity struct{}

func (identity) Path(p string) string { return p }
func (identity) Href(h string) string { return h }

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug tracing of a run.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithNormalizer sets the Unicode normalizer applied to paths and links.
func WithNormalizer(n Normalizer) Option {
	return func(s *Service) { s.norm = n }
}

// WithTitleReader sets the frontmatter reader used by Routes.
func WithTitleReader(t TitleReader) Option {
	return func(s *Service) { s.titles = t }
}

// WithAssetExtensions replaces the asset extensions skipped by extraction.
func WithAssetExtensions(exts []string) Option {
	return func(s *Service) { s.extractor = domain.NewExtractor(exts) }
}

// WithExtension sets the content file extension.
func WithExtension(ext string) Option {
	return func(s *Service) { s.ext = ext }
}

// Service validates links over a fixed, ordered list of content sources.
type Service struct {
	sources   []domain.ContentSource
	ext       string
	lister    FileLister
	reader    ContentReader
	norm      Normalizer
	titles    TitleReader
	extractor *domain.Extractor
	resolver  *domain.Resolver
	logger    *slog.Logger
}

// NewService creates a Service over sources with the given dependencies.
func NewService(sources []domain.ContentSource, lister FileLister, reader ContentReader, opts ...Option) *Service {
	s := &Service{
		sources:   sources,
		ext:       domain.ContentExtension,
		lister:    lister,
		reader:    reader,
		norm:      identity{},
		extractor: domain.NewExtractor(domain.DefaultAssetExtensions),
		resolver:  domain.NewResolver(sources),
		logger:    slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// entry pairs a content file with the name it has on disk, which may differ
// from the normalised path used for routes and reports.
type entry struct {
	file domain.ContentFile
	disk string
}

// tree is the enumerated content of one run.
type tree struct {
	entries []entry
	routes  domain.RouteSet
}

// load enumerates every source and derives the route set. Missing source
// directories contribute nothing.
func (s *Service) load(ctx context.Context) (*tree, error) {
	var entries []entry
	for _, src := range s.sources {
		names, err := s.lister.ListFiles(ctx, src.Dir, s.ext)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("content source missing", "dir", src.Dir)
			continue
		}
		if err != nil {
			return nil, err
		}
		s.logger.Debug("content source listed", "dir", src.Dir, "prefix", src.Prefix, "files", len(names))
		for _, name := range names {
			entries = append(entries, entry{
				file: domain.ContentFile{Path: s.norm.Path(name), Source: src},
				disk: name,
			})
		}
	}

	files := make([]domain.ContentFile, len(entries))
	for i, e := range entries {
		files[i] = e.file
	}
	routes := domain.BuildRouteSet(files, s.ext)
	for _, c := range routes.Collisions() {
		s.logger.Debug("route collision", "route", c.Route, "files", c.Files)
	}
	return &tree{entries: entries, routes: routes}, nil
}

// CheckResult holds the outcome of a check run.
type CheckResult struct {
	Report domain.Report
}

// Check derives the route set, then scans every content file for internal
// links and records each one that resolves outside the set. The scan never
// stops early on a broken link; a file that cannot be read aborts the run.
func (s *Service) Check(ctx context.Context) (*CheckResult, error) {
	state := domain.StateInit
	s.logger.Debug("check started", "state", state, "sources", len(s.sources))

	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	state = domain.StateRoutesBuilt
	s.logger.Debug("routes built", "state", state, "routes", t.routes.Len(), "files", len(t.entries))

	state = domain.StateScanning
	var acc domain.Accumulator
	for _, e := range t.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := s.reader.ReadFile(ctx, e.disk)
		if err != nil {
			return nil, fmt.Errorf("reading content %s: %w", e.disk, err)
		}
		s.scanFile(e.file, content, t.routes, &acc)
	}

	report := acc.Report(t.routes.Len())
	s.logger.Debug("check finished", "state", report.State, "broken", len(report.Broken))
	return &CheckResult{Report: report}, nil
}

// scanFile extracts, resolves and checks the links of one file.
func (s *Service) scanFile(file domain.ContentFile, content string, routes domain.RouteSet, acc *domain.Accumulator) {
	for _, href := range s.extractor.Extract(content) {
		link := s.resolver.Resolve(domain.LinkReference{File: file, Href: s.norm.Href(href)})
		if !link.OK {
			s.logger.Debug("link skipped: file outside every source", "file", file.Path, "href", href)
			continue
		}
		if acc.Check(link, routes) {
			s.logger.Debug("broken link", "file", file.Path, "href", href, "resolved", link.Route)
		}
	}
}

// RouteInfo describes one published route.
type RouteInfo struct {
	Route domain.Route
	File  string
	Title string
}

// RoutesResult holds every derived route and the findings raised while
// deriving them.
type RoutesResult struct {
	Routes   []RouteInfo
	Findings []domain.Finding
}

// Routes lists every route in lexical order with the page title taken from
// the originating file's frontmatter. Route collisions and unreadable
// frontmatter are reported as warnings.
func (s *Service) Routes(ctx context.Context) (*RoutesResult, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	disk := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		disk[e.file.Path] = e.disk
	}

	result := &RoutesResult{Routes: []RouteInfo{}}
	for _, r := range t.routes.Sorted() {
		origin, _ := t.routes.Origin(r)
		info := RouteInfo{Route: r, File: origin}
		if s.titles != nil {
			title, finding, err := s.title(ctx, origin, disk[origin])
			if err != nil {
				return nil, err
			}
			info.Title = title
			if finding != nil {
				result.Findings = append(result.Findings, *finding)
			}
		}
		result.Routes = append(result.Routes, info)
	}

	for _, c := range t.routes.Collisions() {
		result.Findings = append(result.Findings, domain.Finding{
			Type:     domain.FindingRouteCollision,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("route %s is produced by %d files: %v", c.Route, len(c.Files), c.Files),
			Path:     c.Files[1],
		})
	}
	return result, nil
}

// title reads a page title. Malformed frontmatter is a finding, not an error.
func (s *Service) title(ctx context.Context, path, disk string) (string, *domain.Finding, error) {
	content, err := s.reader.ReadFile(ctx, disk)
	if err != nil {
		return "", nil, fmt.Errorf("reading content %s: %w", disk, err)
	}
	title, err := s.titles.GetTitle(content)
	if err != nil {
		return "", &domain.Finding{
			Type:     domain.FindingMalformedFrontmatter,
			Severity: domain.SeverityWarning,
			Message:  err.Error(),
			Path:     path,
		}, nil
	}
	return title, nil, nil
}
