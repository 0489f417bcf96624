package render

import (
	"io"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale the convenience entry points use when the
// caller does not supply one.
var DefaultLocale = language.MustParse("fr-FR")

// DefaultEncoding is the character encoding the convenience entry points use
// when the caller does not supply one.
const DefaultEncoding = "UTF-8"

// Renderer resolves a named template, evaluates it against a data model and
// streams the result into an output sink.
//
// Implementations must be safe for concurrent use once constructed. They
// never close the sink; ownership stays with the caller. A failed render may
// leave partial output behind — callers needing atomic-or-nothing output
// should render into a buffer and copy on success, which is what
// RenderString does.
type Renderer interface {
	// Render evaluates the template identified by name against model, using
	// locale for locale-sensitive formatting and encoding as both the
	// template source encoding and the output encoding. Every failure —
	// lookup, parse, evaluation, transcoding or writing — is reported as a
	// *Error.
	Render(name string, model any, locale language.Tag, encoding string, out io.Writer) error
}

// RendererFunc adapts a bare function to the Renderer interface.
type RendererFunc func(name string, model any, locale language.Tag, encoding string, out io.Writer) error

// Render calls fn.
func (fn RendererFunc) Render(name string, model any, locale language.Tag, encoding string, out io.Writer) error {
	return fn(name, model, locale, encoding, out)
}

// RenderString renders the named template into an in-memory buffer and
// returns the accumulated text. Failure conditions are those of
// Renderer.Render; on failure the returned string is empty.
func RenderString(r Renderer, name string, model any, locale language.Tag, encoding string) (string, error) {
	var buf strings.Builder
	if err := r.Render(name, model, locale, encoding, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDefault renders the named template with DefaultLocale and
// DefaultEncoding. It delegates to r.Render and adds no logic of its own.
func RenderDefault(r Renderer, name string, model any, out io.Writer) error {
	return r.Render(name, model, DefaultLocale, DefaultEncoding, out)
}

// RenderStringDefault returns the text produced by the named template using
// DefaultLocale and DefaultEncoding.
func RenderStringDefault(r Renderer, name string, model any) (string, error) {
	return RenderString(r, name, model, DefaultLocale, DefaultEncoding)
}
