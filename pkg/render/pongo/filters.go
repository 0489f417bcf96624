package pongo

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	defaultFiltersOnce sync.Once
	sanitizePolicy     atomic.Pointer[bluemonday.Policy]
)

// RegisterFilter makes fn available to templates as a pongo2 filter. The
// registry is process-wide; registering a name that already exists fails.
func RegisterFilter(name string, fn FilterFunc) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}

	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func registerDefaultFilters() {
	defaultFiltersOnce.Do(func() {
		sanitizePolicy.CompareAndSwap(nil, bluemonday.StrictPolicy())
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
		if !pongo2.FilterExists("lowerfirst") {
			_ = pongo2.RegisterFilter("lowerfirst", filterLowerFirst)
		}
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || (r == utf8.RuneError && size == 1) {
		return pongo2.AsValue(s), nil
	}
	return pongo2.AsValue(strings.ToLower(string(r)) + s[size:]), nil
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(sanitizePolicy.Load().Sanitize(in.String())), nil
}

// formatNumber renders v under the engine's numeric pattern. A pattern with
// no grouping separator, "####" being the conventional spelling, yields plain
// digits; anything else applies the locale's grouping and decimal rules.
func formatNumber(locale language.Tag, pattern string, v any) string {
	if pattern != "" && !strings.ContainsAny(pattern, ",  ") {
		return fmt.Sprint(v)
	}
	return message.NewPrinter(locale).Sprint(number.Decimal(v))
}
