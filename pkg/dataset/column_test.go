package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {
	t.Run("accepts matching values and nulls", func(t *testing.T) {
		c, err := NewColumn("price", Double, []any{1.5, nil, 2.0})
		require.NoError(t, err)
		assert.Equal(t, Field{Name: "price", Type: Double}, c.Field)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("normalizes int literals to int64", func(t *testing.T) {
		c, err := NewColumn("id", Long, []any{1, 2})
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.Values[0])
	})

	t.Run("rejects mismatched representation", func(t *testing.T) {
		_, err := NewColumn("id", Long, []any{"oops"})
		assert.ErrorContains(t, err, "does not match declared type")
	})
}

func TestColumnCast(t *testing.T) {
	t.Run("same type is identity", func(t *testing.T) {
		c, err := NewColumn("id", Long, []any{int64(1), nil})
		require.NoError(t, err)
		out, err := c.Cast(Long)
		require.NoError(t, err)
		assert.Equal(t, c.Values, out.Values)
	})

	t.Run("int widens to double", func(t *testing.T) {
		c, err := NewColumn("id", Int, []any{int64(7), nil})
		require.NoError(t, err)
		out, err := c.Cast(Double)
		require.NoError(t, err)
		assert.Equal(t, Double, out.Field.Type)
		assert.Equal(t, float64(7), out.Values[0])
		assert.Nil(t, out.Values[1])
	})

	t.Run("integral widening keeps representation", func(t *testing.T) {
		c, err := NewColumn("n", Short, []any{int64(40)})
		require.NoError(t, err)
		out, err := c.Cast(Long)
		require.NoError(t, err)
		assert.Equal(t, int64(40), out.Values[0])
	})

	t.Run("double to string formats canonically", func(t *testing.T) {
		c, err := NewColumn("price", Double, []any{1.25, nil})
		require.NoError(t, err)
		out, err := c.Cast(String)
		require.NoError(t, err)
		assert.Equal(t, "1.25", out.Values[0])
		assert.Nil(t, out.Values[1])
	})

	t.Run("boolean to string", func(t *testing.T) {
		c, err := NewColumn("flag", Boolean, []any{true})
		require.NoError(t, err)
		out, err := c.Cast(String)
		require.NoError(t, err)
		assert.Equal(t, "true", out.Values[0])
	})

	t.Run("string to double is rejected", func(t *testing.T) {
		c, err := NewColumn("s", String, []any{"1.5"})
		require.NoError(t, err)
		_, err = c.Cast(Double)
		assert.ErrorContains(t, err, "cannot cast")
	})

	t.Run("boolean to date is rejected", func(t *testing.T) {
		c, err := NewColumn("flag", Boolean, []any{true})
		require.NoError(t, err)
		_, err = c.Cast(Date)
		assert.ErrorContains(t, err, "cannot cast")
	})
}

func TestFormatValue(t *testing.T) {
	day := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		value    any
		typ      Type
		expected string
	}{
		{name: "null", value: nil, typ: Double, expected: ""},
		{name: "long", value: int64(42), typ: Long, expected: "42"},
		{name: "double trims zeros", value: 1.50, typ: Double, expected: "1.5"},
		{name: "date", value: day, typ: Date, expected: "2020-01-15"},
		{name: "timestamp", value: day, typ: Timestamp, expected: "2020-01-15T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value, tt.typ))
		})
	}
}
