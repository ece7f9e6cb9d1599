package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/logger"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		entries := logger.CollectErrorEntries(errors.New("simple error"))
		assert.Equal(t, []logger.ErrorEntry{{Message: "simple error"}}, entries)
	})

	t.Run("zerr chain ends at plain cause", func(t *testing.T) {
		err := zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer")
		entries := logger.CollectErrorEntries(err)

		var messages []string
		for _, e := range entries {
			messages = append(messages, e.Message)
		}
		assert.Equal(t, []string{"outer", "middle", "root cause"}, messages)
	})

	t.Run("metadata stays on its link", func(t *testing.T) {
		inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
		outer := zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")

		entries := logger.CollectErrorEntries(outer)
		assert.Len(t, entries, 2)
		assert.Equal(t, map[string]any{"outer_key": "outer_val"}, entries[0].Metadata)
		assert.Equal(t, map[string]any{"inner_key": "inner_val"}, entries[1].Metadata)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, logger.CollectErrorEntries(nil))
	})
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted on main and cause",
			entries: []logger.ErrorEntry{
				{Message: "main", Metadata: map[string]any{"zebra": "z", "alpha": 1}},
				{Message: "cause", Metadata: map[string]any{"path": "a.circom"}},
			},
			want: "Error: main\n       alpha: 1\n       zebra: z\n\n  Caused by:\n    → cause\n      path: a.circom",
		},
		{
			name:    "multiline",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}, {Message: "cause1\ncause2"}},
			want:    "Error: line1\n       line2\n\n  Caused by:\n    → cause1\n      cause2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
