package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDJSON(t *testing.T) {
	id := SnowflakeID(1921483993091477504)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"1921483993091477504"`, string(data))

	var decoded SnowflakeID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	// Plain numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`42`), &decoded))
	assert.Equal(t, SnowflakeID(42), decoded)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`true`), &decoded))
}

func TestSnowflakeIDScan(t *testing.T) {
	var id SnowflakeID
	require.NoError(t, id.Scan(int64(77)))
	assert.Equal(t, SnowflakeID(77), id)

	require.NoError(t, id.Scan([]byte("88")))
	assert.Equal(t, SnowflakeID(88), id)

	// NULL columns scan to the zero id.
	require.NoError(t, id.Scan(nil))
	assert.Equal(t, SnowflakeID(0), id)

	assert.Error(t, id.Scan(3.14))
}

func TestSnowflakeIDValue(t *testing.T) {
	v, err := SnowflakeID(9).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(9), v)
}
