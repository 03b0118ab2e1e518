package file

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/smartseek/internal/storage"
)

// Codec encodes the area-partitioned contents of a settings file.
//
// Files hold one top-level table per area:
//
//	{"sync": {"seekAmount": 5, "backKey": "Shift+J"}, "local": {...}}
type Codec interface {
	// Name identifies the format, e.g. "json".
	Name() string

	// Decode parses file contents. Empty input decodes to no areas.
	Decode(data []byte) (map[storage.Area]storage.Record, error)

	// Update returns data with values written into area. Content outside the
	// written fields is preserved.
	Update(data []byte, area storage.Area, values storage.Record) ([]byte, error)
}

// ForPath picks a codec from the file extension.
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONCodec{}, nil
	case ".toml":
		return TOMLCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: no codec for %q", storage.ErrUnsupportedDSN, path)
	}
}

// ParseError represents an error while parsing a settings file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// splitAreas converts a decoded document into area records. Top-level
// values that are not tables are ignored.
func splitAreas(doc map[string]any) map[storage.Area]storage.Record {
	areas := make(map[storage.Area]storage.Record, len(doc))
	for name, v := range doc {
		table, ok := v.(map[string]any)
		if !ok {
			continue
		}
		areas[storage.Area(name)] = storage.Record(table)
	}
	return areas
}

// mergeArea writes values into the area table of doc.
func mergeArea(doc map[string]any, area storage.Area, values storage.Record) map[string]any {
	if doc == nil {
		doc = make(map[string]any)
	}
	table, ok := doc[string(area)].(map[string]any)
	if !ok {
		table = make(map[string]any, len(values))
	}
	for k, v := range values {
		table[k] = v
	}
	doc[string(area)] = table
	return doc
}

func sortedKeys(r storage.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
