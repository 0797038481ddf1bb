// Package fs provides filesystem adapters that implement linkcheck service interfaces.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmdocs/linkcheck/internal/frontmatter"
	"github.com/dmdocs/linkcheck/internal/lock"
	"github.com/dmdocs/linkcheck/internal/normalize"
)

// ErrSourceMissing is returned when a content source directory does not exist.
// Errors carrying it also match io/fs.ErrNotExist.
var ErrSourceMissing = errors.New("content source directory does not exist")

// OSWalker implements linkcheck.FileLister using filepath.WalkDir.
type OSWalker struct {
	Root string
}

// ListFilesImpl returns every regular file under dir whose name ends in ext,
// at any depth. Paths are relative to Root, slash separated and sorted.
func (w *OSWalker) ListFilesImpl(ctx context.Context, dir, ext string) ([]string, error) {
	base := filepath.Join(w.Root, filepath.FromSlash(dir))
	info, err := os.Stat(base)
	if errors.Is(err, iofs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMissing, dir, iofs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	err = filepath.WalkDir(base, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(w.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ListFiles delegates to ListFilesImpl.
func (w *OSWalker) ListFiles(ctx context.Context, dir, ext string) ([]string, error) {
	return w.ListFilesImpl(ctx, dir, ext)
}

// OSContentReader implements linkcheck.ContentReader using os.ReadFile.
type OSContentReader struct {
	Root string
}

// ReadFileImpl reads the full content of a file under the site root.
func (cr *OSContentReader) ReadFileImpl(_ context.Context, filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(cr.Root, filepath.FromSlash(filename)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFile delegates to ReadFileImpl.
func (cr *OSContentReader) ReadFile(ctx context.Context, filename string) (string, error) {
	return cr.ReadFileImpl(ctx, filename)
}

// NormAdapter implements linkcheck.Normalizer using the normalize package.
type NormAdapter struct{}

// Path normalises a site-relative file path.
func (NormAdapter) Path(p string) string { return normalize.Path(p) }

// Href normalises a written link target.
func (NormAdapter) Href(h string) string { return normalize.Href(h) }

// FMAdapter implements linkcheck.TitleReader using the frontmatter package.
type FMAdapter struct{}

// GetTitle extracts the title from frontmatter content.
func (FMAdapter) GetTitle(input string) (string, error) { return frontmatter.GetTitle(input) }

// OSReportWriter writes report files atomically under an advisory lock
// held on Path + ".lock".
type OSReportWriter struct {
	Path string
}

// WriteReport replaces the report file with data.
func (w *OSReportWriter) WriteReport(ctx context.Context, data []byte) error {
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return lock.NewFromPath(w.Path+".lock").With(ctx, func() error {
		tmp, err := os.CreateTemp(dir, filepath.Base(w.Path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("creating temp report: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("writing report: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if err := os.Chmod(tmp.Name(), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return os.Rename(tmp.Name(), w.Path)
	})
}

// FindSiteRootImpl walks up from start looking for a directory that contains
// marker. It falls back to start when no ancestor does.
func FindSiteRootImpl(start, marker string) string {
	dir := start
	for {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(marker)))
		if err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
