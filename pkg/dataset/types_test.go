package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Type
		wantErr  bool
	}{
		{name: "double", input: "double", expected: Double},
		{name: "uppercase", input: "STRING", expected: String},
		{name: "padded", input: " int ", expected: Int},
		{name: "bigint alias", input: "bigint", expected: Long},
		{name: "tinyint alias", input: "tinyint", expected: Byte},
		{name: "bool alias", input: "bool", expected: Boolean},
		{name: "unknown", input: "varchar", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTypeIsNumeric(t *testing.T) {
	for _, typ := range NumericLattice {
		assert.True(t, typ.IsNumeric(), "%s should be numeric", typ)
	}
	for _, typ := range []Type{String, Boolean, Date, Timestamp, Invalid} {
		assert.False(t, typ.IsNumeric(), "%s should not be numeric", typ)
	}
}

func TestNumericLatticeOrder(t *testing.T) {
	// Widest first; the resolver depends on this exact order.
	assert.Equal(t, []Type{Decimal, Double, Float, Long, Int, Short, Byte}, NumericLattice[:])
}

func TestInferLiteralType(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected Type
		ok       bool
	}{
		{name: "string", value: "web_scraped", expected: String, ok: true},
		{name: "int", value: 3, expected: Long, ok: true},
		{name: "int64", value: int64(3), expected: Long, ok: true},
		{name: "float64", value: 1.5, expected: Double, ok: true},
		{name: "bool", value: true, expected: Boolean, ok: true},
		{name: "time", value: time.Now(), expected: Timestamp, ok: true},
		{name: "slice", value: []string{"a"}, ok: false},
		{name: "nil", value: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferLiteralType(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
