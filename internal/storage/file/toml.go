package file

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/smartseek/internal/storage"
)

// TOMLCodec stores areas as TOML tables.
type TOMLCodec struct{}

// Name implements Codec.
func (TOMLCodec) Name() string { return "toml" }

// Decode implements Codec.
func (c TOMLCodec) Decode(data []byte) (map[storage.Area]storage.Record, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	return splitAreas(doc), nil
}

// Update implements Codec.
func (c TOMLCodec) Update(data []byte, area storage.Area, values storage.Record) ([]byte, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	return toml.Marshal(mergeArea(doc, area, values))
}

func (TOMLCodec) parse(data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{Path: "<toml>", Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return doc, nil
}
