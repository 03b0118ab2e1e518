package file

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/dshills/smartseek/internal/storage"
)

// YAMLCodec stores areas as YAML mappings.
type YAMLCodec struct{}

// Name implements Codec.
func (YAMLCodec) Name() string { return "yaml" }

// Decode implements Codec.
func (c YAMLCodec) Decode(data []byte) (map[storage.Area]storage.Record, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	return splitAreas(doc), nil
}

// Update implements Codec.
func (c YAMLCodec) Update(data []byte, area storage.Area, values storage.Record) ([]byte, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(mergeArea(doc, area, values))
}

func (YAMLCodec) parse(data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: "<yaml>", Message: err.Error(), Err: err}
	}
	return doc, nil
}
