package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineErrorIs(t *testing.T) {
	err := UnresolvableConflict("price", []string{"boolean", "date"})

	assert.ErrorIs(t, err, ErrUnresolvableTypes)
	assert.NotErrorIs(t, err, ErrArityMismatch)

	// Sentinel matching survives wrapping.
	wrapped := fmt.Errorf("combine stage: %w", err)
	assert.ErrorIs(t, wrapped, ErrUnresolvableTypes)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "conflict names column and types",
			err:      UnresolvableConflict("price", []string{"boolean", "date"}),
			contains: []string{"UNRESOLVABLE_TYPE_CONFLICT", "price", "boolean", "date"},
		},
		{
			name:     "arity carries the detail",
			err:      ArityMismatch("2 keys for 3 tables"),
			contains: []string{"ARITY_MISMATCH", "2 keys for 3 tables"},
		},
		{
			name:     "config names the field",
			err:      ConfigInvalid("tag_names", "must not be empty"),
			contains: []string{"CONFIG_INVALID", "tag_names"},
		},
		{
			name:     "type mismatch names the column",
			err:      TypeMismatch("city"),
			contains: []string{"TYPE_MISMATCH", "city"},
		},
		{
			name:     "storage wraps the operation",
			err:      Storage("load web_scraped/alpha", errors.New("no such file")),
			contains: []string{"STORAGE_ERROR", "load web_scraped/alpha", "no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}
