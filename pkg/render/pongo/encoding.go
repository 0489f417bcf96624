package pongo

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/goliatone/go-render/pkg/render"
)

// sourceEncoding is a resolved character encoding. UTF-8 short-circuits both
// decode and encode since template sources and Go strings already are UTF-8.
type sourceEncoding struct {
	name string
	utf8 bool
	enc  encoding.Encoding
}

func resolveEncoding(name string) (sourceEncoding, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = render.DefaultEncoding
	}
	switch strings.ToLower(trimmed) {
	case "utf-8", "utf8":
		return sourceEncoding{name: trimmed, utf8: true}, nil
	}

	enc, err := htmlindex.Get(trimmed)
	if err != nil {
		return sourceEncoding{}, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return sourceEncoding{name: trimmed, enc: enc}, nil
}

func (s sourceEncoding) decode(b []byte) ([]byte, error) {
	return s.enc.NewDecoder().Bytes(b)
}

func encodeOutput(enc sourceEncoding, b []byte) ([]byte, error) {
	if enc.utf8 {
		return b, nil
	}
	out, err := enc.enc.NewEncoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("encode output as %s: %w", enc.name, err)
	}
	return out, nil
}
