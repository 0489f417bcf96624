package pongo

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir      string
	files        fs.FS
	extension    string
	numberFormat string
	logger       *slog.Logger
	filters      map[string]FilterFunc
	globals      map[string]any
	sanitizer    *bluemonday.Policy
}

// FilterFunc is the engine-agnostic shape of a template filter. It receives
// the piped value and the filter parameter (nil when absent).
type FilterFunc func(input any, param any) (any, error)

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically a per-package embed.FS.
// Engines built from different packages' embedded filesystems resolve
// template names independently of each other.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides the extension appended to template names that carry
// none. The default is ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithNumberFormat sets the numeric pattern honoured by the number template
// function. A pattern without a grouping separator, such as "####", produces
// plain digits; any other pattern (or the empty default) applies the render
// locale's grouping rules.
func WithNumberFormat(pattern string) Option {
	return func(cfg *config) {
		cfg.numberFormat = strings.TrimSpace(pattern)
	}
}

// WithLogger sets the logger used for render diagnostics. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithFilter registers a template filter when the engine is constructed.
// pongo2 keeps a process-wide filter registry, so a name registered by one
// engine is visible to all of them; registering an existing name fails
// construction.
func WithFilter(name string, fn FilterFunc) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]FilterFunc)
		}
		cfg.filters[name] = fn
	}
}

// WithGlobals seeds values available to every template rendered by the
// engine. Per-render model keys shadow globals of the same name.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithSanitizer replaces the HTML sanitisation policy backing the sanitize
// filter. Like the filter registry itself, the policy is process-wide; the
// last engine constructed with this option wins.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}
