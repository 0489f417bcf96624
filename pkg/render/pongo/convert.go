package pongo

import (
	"encoding/json"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// toContext converts an arbitrary data model into a pongo2 evaluation
// context. Maps and pongo2 contexts pass through unchanged; anything else is
// round-tripped through JSON so exported struct fields become addressable
// from template expressions under their JSON names.
func toContext(model any) (pongo2.Context, error) {
	switch v := model.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert model: %w", err)
		}
		out := map[string]any{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("convert model: %w", err)
		}
		return pongo2.Context(out), nil
	}
}
