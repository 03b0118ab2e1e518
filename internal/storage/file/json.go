package file

import (
	"bytes"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/smartseek/internal/storage"
)

// JSONCodec stores areas as top-level JSON objects, the layout browser
// extension storage exports use. Writes patch the document in place so
// unrelated content and key order survive.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return "json" }

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) (map[storage.Area]storage.Record, error) {
	areas := make(map[storage.Area]storage.Record)
	if len(bytes.TrimSpace(data)) == 0 {
		return areas, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: "<json>", Message: "invalid JSON", Err: errors.New("invalid JSON")}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: "<json>", Message: "top level must be an object"}
	}

	root.ForEach(func(name, table gjson.Result) bool {
		if !table.IsObject() {
			return true
		}
		rec := make(storage.Record)
		table.ForEach(func(field, value gjson.Result) bool {
			rec[field.String()] = value.Value()
			return true
		})
		areas[storage.Area(name.String())] = rec
		return true
	})
	return areas, nil
}

// Update implements Codec.
func (JSONCodec) Update(data []byte, area storage.Area, values storage.Record) ([]byte, error) {
	out := data
	if len(bytes.TrimSpace(out)) == 0 {
		out = []byte("{}")
	}

	var err error
	for _, k := range sortedKeys(values) {
		out, err = sjson.SetBytes(out, escapePath(string(area))+"."+escapePath(k), values[k])
		if err != nil {
			return nil, err
		}
	}
	return pretty.Pretty(out), nil
}

// escapePath escapes the characters gjson/sjson treat as path syntax.
func escapePath(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
