package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/language"

	"github.com/goliatone/go-render/pkg/render"
)

// Engine renders pongo2 templates behind the render.Renderer contract.
//
// An Engine is safe for concurrent use: the template set is fully built
// before any constructor returns and the parse cache is mutex-guarded.
// Engines produced by New, Default and DefaultDir never expose their
// template set, so no post-construction mutation is possible.
type Engine struct {
	mu sync.RWMutex

	set          *pongo2.TemplateSet
	source       source
	cache        map[string]*pongo2.Template
	ext          string
	numberFormat string
	logger       *slog.Logger
}

var _ render.Renderer = (*Engine)(nil)

// source supplies raw template bytes so non-UTF-8 sources can be decoded
// before parsing. Engines wrapping a caller-built set have none.
type source interface {
	load(name string) ([]byte, error)
}

type fsSource struct{ files fs.FS }

func (s fsSource) load(name string) ([]byte, error) {
	return fs.ReadFile(s.files, path.Clean(name))
}

type dirSource struct{ dir string }

func (s dirSource) load(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(name)))
}

// New constructs an Engine from the provided options. A template source
// (WithFS or WithBaseDir) is required.
func New(options ...Option) (*Engine, error) {
	cfg := applyOptions(options)

	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("pongo: a template source (WithFS or WithBaseDir) is required")
	}

	var loaders []pongo2.TemplateLoader
	var src source
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
		src = dirSource{dir: cfg.baseDir}
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
		src = fsSource{files: cfg.files}
	}

	return newEngine(pongo2.NewSet("go-render", loaders...), src, cfg)
}

// FromSet wraps an already-configured pongo2 template set.
//
// The returned Engine is safe for concurrent use provided the set is never
// mutated after this call and its loaders tolerate concurrent reads. The
// engine cannot enforce this; it is a precondition the caller owns. Because
// the set's loaders deliver parsed templates directly, the encoding argument
// of Render applies to the output only; template sources are assumed UTF-8.
func FromSet(set *pongo2.TemplateSet, options ...Option) (*Engine, error) {
	if set == nil {
		return nil, errors.New("pongo: template set is required")
	}
	return newEngine(set, nil, applyOptions(options))
}

// Default returns an Engine covering the common case: templates resolved
// against the given filesystem root, UTF-8 as the default encoding, the
// "####" numeric pattern (plain digits, no grouping) and every engine
// failure propagated to the caller rather than swallowed.
//
// Passing a per-package embed.FS scopes template resolution to that package,
// so independent renderers for different template directories can coexist in
// one process.
func Default(files fs.FS) (*Engine, error) {
	return New(WithFS(files), WithNumberFormat("####"))
}

// DefaultDir is Default over an on-disk template directory.
func DefaultDir(dir string) (*Engine, error) {
	return New(WithBaseDir(dir), WithNumberFormat("####"))
}

func applyOptions(options []Option) *config {
	cfg := &config{
		extension: ".tpl",
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func newEngine(set *pongo2.TemplateSet, src source, cfg *config) (*Engine, error) {
	engine := &Engine{
		set:          set,
		source:       src,
		cache:        make(map[string]*pongo2.Template),
		ext:          cfg.extension,
		numberFormat: cfg.numberFormat,
		logger:       cfg.logger,
	}

	registerDefaultFilters()
	if cfg.sanitizer != nil {
		sanitizePolicy.Store(cfg.sanitizer)
	}
	for name, fn := range cfg.filters {
		if err := RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register filter %q: %w", name, err)
		}
	}
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context, len(cfg.globals))
		}
		set.Globals.Update(pongo2.Context(cfg.globals))
	}

	return engine, nil
}

// Render implements render.Renderer. The template is parsed once per
// (name, encoding) pair and reused afterwards; evaluation happens on every
// call. Output is accumulated before anything reaches out, so a failed
// render writes nothing.
func (e *Engine) Render(name string, model any, locale language.Tag, encoding string, out io.Writer) error {
	if e == nil || e.set == nil {
		return render.NewError("pongo: engine is not initialized")
	}

	rendered, err := e.render(name, model, locale, encoding)
	if err != nil {
		e.logger.Error("template render failed",
			slog.String("template", name),
			slog.Any("error", err))
		return render.WrapMessage(fmt.Sprintf("render template %q", name), err)
	}

	if _, err := out.Write(rendered); err != nil {
		e.logger.Error("template output write failed",
			slog.String("template", name),
			slog.Any("error", err))
		return render.WrapMessage(fmt.Sprintf("write template %q output", name), err)
	}

	e.logger.Debug("template rendered",
		slog.String("template", name),
		slog.String("locale", locale.String()),
		slog.String("output", string(rendered)))
	return nil
}

func (e *Engine) render(name string, model any, locale language.Tag, encoding string) ([]byte, error) {
	enc, err := resolveEncoding(encoding)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.template(name, encoding, enc)
	if err != nil {
		return nil, err
	}

	ctx := pongo2.Context{
		"locale": locale.String(),
		"number": func(v any) string {
			return formatNumber(locale, e.numberFormat, v)
		},
	}
	modelCtx, err := toContext(model)
	if err != nil {
		return nil, err
	}
	ctx.Update(modelCtx)

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return nil, err
	}

	return encodeOutput(enc, buf.Bytes())
}

// template returns the parsed template for name, parsing it at most once per
// (name, encoding) pair.
func (e *Engine) template(name string, encoding string, enc sourceEncoding) (*pongo2.Template, error) {
	tplPath := name
	if path.Ext(tplPath) == "" {
		tplPath += e.ext
	}
	key := tplPath + "\x00" + encoding

	e.mu.RLock()
	tmpl, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[key]; ok {
		return tmpl, nil
	}

	tmpl, err := e.parse(tplPath, enc)
	if err != nil {
		return nil, err
	}
	e.cache[key] = tmpl
	return tmpl, nil
}

func (e *Engine) parse(tplPath string, enc sourceEncoding) (*pongo2.Template, error) {
	// UTF-8 sources, and engines wrapping a caller-built set, go through the
	// set's own loaders so template includes keep working.
	if enc.utf8 || e.source == nil {
		tmpl, err := e.set.FromFile(tplPath)
		if err != nil {
			return nil, fmt.Errorf("load template %q: %w", tplPath, err)
		}
		return tmpl, nil
	}

	raw, err := e.source.load(tplPath)
	if err != nil {
		return nil, fmt.Errorf("load template %q: %w", tplPath, err)
	}
	decoded, err := enc.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode template %q as %s: %w", tplPath, enc.name, err)
	}
	tmpl, err := e.set.FromBytes(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", tplPath, err)
	}
	return tmpl, nil
}
