package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	t.Parallel()

	t.Run("nil list encodes as empty array", func(t *testing.T) {
		t.Parallel()
		var l StringList
		v, err := l.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("values encode as JSON", func(t *testing.T) {
		t.Parallel()
		l := StringList{"golang", "webdev"}
		v, err := l.Value()
		require.NoError(t, err)
		assert.JSONEq(t, `["golang","webdev"]`, v.(string))
	})
}

func TestStringList_Scan(t *testing.T) {
	t.Parallel()

	t.Run("from string", func(t *testing.T) {
		t.Parallel()
		var l StringList
		require.NoError(t, l.Scan(`["a","b"]`))
		assert.Equal(t, StringList{"a", "b"}, l)
	})

	t.Run("from bytes", func(t *testing.T) {
		t.Parallel()
		var l StringList
		require.NoError(t, l.Scan([]byte(`["a"]`)))
		assert.Equal(t, StringList{"a"}, l)
	})

	t.Run("nil clears the list", func(t *testing.T) {
		t.Parallel()
		l := StringList{"a"}
		require.NoError(t, l.Scan(nil))
		assert.Nil(t, l)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()
		var l StringList
		assert.Error(t, l.Scan(42))
	})
}
