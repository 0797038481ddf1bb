package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmdocs/linkcheck/internal/config"
	"github.com/dmdocs/linkcheck/internal/domain"
	"github.com/dmdocs/linkcheck/internal/fs"
	"github.com/dmdocs/linkcheck/internal/linkcheck"
)

// linkServicer abstracts the linkcheck.Service methods used by adapters.
type linkServicer interface {
	Check(ctx context.Context) (*linkcheck.CheckResult, error)
	Routes(ctx context.Context) (*linkcheck.RoutesResult, error)
}

// serviceWiring locates the site root and builds the service when a command
// runs, after persistent flags have been parsed.
type serviceWiring struct {
	root        func() string
	getwd       func() (string, error)
	marker      string
	wireService func(root string) (linkServicer, error)
}

func (w *serviceWiring) service() (linkServicer, error) {
	root := w.root()
	if root == "" {
		cwd, err := w.getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		root = fs.FindSiteRootImpl(cwd, w.marker)
	}
	slog.Debug("site root", "path", root)
	return w.wireService(root)
}

// newServiceWiring returns the production wiring for cfg.
func newServiceWiring(cfg *config.Config) *serviceWiring {
	return &serviceWiring{
		root:   GetRoot,
		getwd:  os.Getwd,
		marker: cfg.Sources[0].Dir,
		wireService: func(root string) (linkServicer, error) {
			return wireLinkService(cfg, root)
		},
	}
}

// wireLinkService builds a linkcheck.Service reading the site at root.
func wireLinkService(cfg *config.Config, root string) (linkServicer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, &ContextError{Op: "site root", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ContextError{Op: "site root", Path: root, Err: fmt.Errorf("not a directory")}
	}

	return linkcheck.NewService(
		cfg.ContentSources(),
		&fs.OSWalker{Root: root},
		&fs.OSContentReader{Root: root},
		linkcheck.WithLogger(slog.Default()),
		linkcheck.WithNormalizer(fs.NormAdapter{}),
		linkcheck.WithTitleReader(fs.FMAdapter{}),
		linkcheck.WithExtension(cfg.Extension),
		linkcheck.WithAssetExtensions(cfg.AssetExtensions),
	), nil
}

// newReportWriter is the production ReportWriterFactory.
func newReportWriter(path string) ReportWriter {
	return &fs.OSReportWriter{Path: path}
}

// --- checkAdapter ---

type checkAdapter struct {
	wiring *serviceWiring
}

func (a *checkAdapter) Check(ctx context.Context) (*CheckResult, error) {
	svc, err := a.wiring.service()
	if err != nil {
		return nil, err
	}
	svcResult, err := svc.Check(ctx)
	if err != nil {
		return nil, err
	}
	return convertReport(svcResult.Report), nil
}

// --- routesAdapter ---

type routesAdapter struct {
	wiring *serviceWiring
}

func (a *routesAdapter) Routes(ctx context.Context) (*RoutesResult, error) {
	svc, err := a.wiring.service()
	if err != nil {
		return nil, err
	}
	svcResult, err := svc.Routes(ctx)
	if err != nil {
		return nil, err
	}

	routes := make([]RouteEntry, len(svcResult.Routes))
	for i, r := range svcResult.Routes {
		routes[i] = RouteEntry{Route: r.Route.String(), File: r.File, Title: r.Title}
	}
	findings := make([]Finding, len(svcResult.Findings))
	for i, f := range svcResult.Findings {
		findings[i] = convertFinding(f)
	}
	return &RoutesResult{Routes: routes, Findings: findings}, nil
}

// convertReport converts a domain.Report to a cmd.CheckResult.
func convertReport(r domain.Report) *CheckResult {
	result := &CheckResult{
		State:      r.State.String(),
		RouteCount: r.RouteCount,
		Files:      []FileReport{},
	}
	for _, g := range r.Groups() {
		links := make([]BrokenLink, len(g.Links))
		for i, l := range g.Links {
			links[i] = BrokenLink{Href: l.Href, Resolved: l.Resolved.String()}
		}
		result.Files = append(result.Files, FileReport{File: g.File, Links: links})
	}
	return result
}

// convertFinding converts a domain.Finding to a cmd.Finding.
func convertFinding(f domain.Finding) Finding {
	return Finding{
		Type:     FindingType(f.Type),
		Severity: Severity(f.Severity),
		Message:  f.Message,
		Path:     f.Path,
	}
}
