package source

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/convexa/clientbook"
)

// ReadJSON reads rows from a JSON document.
//
// opts.JSONPath selects the rows, "$" by default: it must lead to an array of
// objects or to a single object. Object properties are the columns, in sorted
// order. Numbers are kept as json.Number.
func ReadJSON(r io.Reader, opts Options) (clientbook.RawTable, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot parse JSON: %w", err)
	}

	path := opts.JSONPath
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot select rows with %q: %w", path, err)
	}

	var items []any
	switch v := jval.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return clientbook.RawTable{}, fmt.Errorf("rows selected by %q are a %T, want an array of objects", path, jval)
	}

	t := clientbook.RawTable{Rows: make([]map[string]any, 0, len(items))}
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return clientbook.RawTable{}, fmt.Errorf("row %d selected by %q is a %T, want an object", i+1, path, item)
		}
		for k := range obj {
			if !slices.Contains(t.Columns, k) {
				t.Columns = append(t.Columns, k)
			}
		}
		t.Rows = append(t.Rows, obj)
	}
	slices.Sort(t.Columns)
	return t, nil
}
