package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/smartseek/internal/storage"
)

func TestJSONCodec_Decode(t *testing.T) {
	areas, err := JSONCodec{}.Decode([]byte(`{"sync": {"seekAmount": 5, "backKey": "Shift+J"}, "ignored": 3}`))
	require.NoError(t, err)
	assert.Equal(t, map[storage.Area]storage.Record{
		storage.AreaSync: {"seekAmount": 5.0, "backKey": "Shift+J"},
	}, areas)

	empty, err := JSONCodec{}.Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = JSONCodec{}.Decode([]byte(`{"sync": `))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = JSONCodec{}.Decode([]byte(`[1, 2]`))
	assert.ErrorAs(t, err, &perr)
}

func TestJSONCodec_UpdateEscapesKeys(t *testing.T) {
	out, err := JSONCodec{}.Update(nil, storage.AreaSync, storage.Record{"odd.key": "x"})
	require.NoError(t, err)

	areas, err := JSONCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "x", areas[storage.AreaSync]["odd.key"])
}

func TestTOMLCodec_Update(t *testing.T) {
	in := []byte("[sync]\nbackKey = \"j\"\n\n[local]\nversion = \"0.9.0\"\n")

	out, err := TOMLCodec{}.Update(in, storage.AreaSync, storage.Record{"seekAmount": 2.5})
	require.NoError(t, err)

	areas, err := TOMLCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"backKey": "j", "seekAmount": 2.5}, areas[storage.AreaSync])
	assert.Equal(t, storage.Record{"version": "0.9.0"}, areas[storage.AreaLocal])
}

func TestYAMLCodec_Update(t *testing.T) {
	out, err := YAMLCodec{}.Update(nil, storage.AreaSync, storage.Record{"forwardKey": "Shift+L"})
	require.NoError(t, err)

	areas, err := YAMLCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"forwardKey": "Shift+L"}, areas[storage.AreaSync])

	_, err = YAMLCodec{}.Decode([]byte("sync: [unclosed"))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
