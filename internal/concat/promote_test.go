package concat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "cprices/internal/errors"
	"cprices/pkg/dataset"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		observed []dataset.Type
		expected dataset.Type
		wantErr  bool
	}{
		{
			name:     "single type is returned as-is",
			observed: []dataset.Type{dataset.Boolean},
			expected: dataset.Boolean,
		},
		{
			name:     "int and double widen to double",
			observed: []dataset.Type{dataset.Int, dataset.Double},
			expected: dataset.Double,
		},
		{
			name:     "order of observation does not matter",
			observed: []dataset.Type{dataset.Double, dataset.Int},
			expected: dataset.Double,
		},
		{
			name:     "integral widths widen to the largest",
			observed: []dataset.Type{dataset.Byte, dataset.Short, dataset.Long},
			expected: dataset.Long,
		},
		{
			name:     "decimal is the widest numeric",
			observed: []dataset.Type{dataset.Double, dataset.Decimal, dataset.Int},
			expected: dataset.Decimal,
		},
		{
			name:     "string dominates numerics",
			observed: []dataset.Type{dataset.Double, dataset.String},
			expected: dataset.String,
		},
		{
			name:     "string dominates non-numerics too",
			observed: []dataset.Type{dataset.Boolean, dataset.String},
			expected: dataset.String,
		},
		{
			name:     "boolean vs date is unresolvable",
			observed: []dataset.Type{dataset.Boolean, dataset.Date},
			wantErr:  true,
		},
		{
			name:     "int vs boolean is unresolvable",
			observed: []dataset.Type{dataset.Int, dataset.Boolean},
			wantErr:  true,
		},
		{
			name:     "date vs timestamp is unresolvable",
			observed: []dataset.Type{dataset.Date, dataset.Timestamp},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve("price", tt.observed)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, pkgerrors.ErrUnresolvableTypes)
				assert.ErrorContains(t, err, "price")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
