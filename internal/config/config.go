// Package config builds and validates the run configuration: which content
// directories exist, where they are mounted, and which targets are assets.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmdocs/linkcheck/internal/domain"
)

// ErrOverlappingSources is returned when two sources share a directory or
// mount at overlapping prefixes.
var ErrOverlappingSources = errors.New("overlapping content sources")

// Source is one content directory and its URL prefix.
type Source struct {
	Dir    string `validate:"required,endsnotwith=/"`
	Prefix string `validate:"omitempty,startswith=/,endsnotwith=/"`
}

// Config is the explicit configuration of a validation run.
type Config struct {
	Sources         []Source `validate:"required,min=1,dive"`
	Extension       string   `validate:"required,startswith=."`
	AssetExtensions []string `validate:"dive,required,alphanum"`
}

// Default returns the site's fixed configuration.
func Default() *Config {
	cfg := &Config{
		Extension:       domain.ContentExtension,
		AssetExtensions: append([]string(nil), domain.DefaultAssetExtensions...),
	}
	for _, s := range domain.DefaultSources() {
		cfg.Sources = append(cfg.Sources, Source{Dir: s.Dir, Prefix: s.Prefix})
	}
	return cfg
}

// Validate checks field constraints and that sources are pairwise disjoint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for i, a := range c.Sources {
		for _, b := range c.Sources[i+1:] {
			if nested(a.Dir, b.Dir) {
				return fmt.Errorf("%w: directories %q and %q", ErrOverlappingSources, a.Dir, b.Dir)
			}
			if a.Prefix == "" || b.Prefix == "" || nested(a.Prefix, b.Prefix) {
				return fmt.Errorf("%w: prefixes %q and %q", ErrOverlappingSources, a.Prefix, b.Prefix)
			}
		}
	}
	return nil
}

// ContentSources converts the configured sources to domain values, in order.
func (c *Config) ContentSources() []domain.ContentSource {
	out := make([]domain.ContentSource, len(c.Sources))
	for i, s := range c.Sources {
		out[i] = domain.ContentSource{Dir: s.Dir, Prefix: s.Prefix}
	}
	return out
}

// nested reports whether a equals b or one is a path-segment ancestor of the other.
func nested(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
