package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/vdf/vdf"
)

func TestGetRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "in.vdf", sampleDoc)

	tests := []struct {
		name    string
		cmd     Get
		want    string
		wantErr error
	}{
		{
			name: "string",
			cmd:  Get{Path: []string{"root", "sub", "b"}},
			want: "y\n",
		},
		{
			name: "mapping",
			cmd:  Get{Path: []string{"root", "sub"}, Format: "vdf"},
			want: "\"b\" \"y\"\n",
		},
		{
			name: "mapping_json",
			cmd:  Get{Path: []string{"root", "sub"}, Format: "json"},
			want: "{\"b\":\"y\"}\n",
		},
		{
			name: "whole_document",
			cmd:  Get{Format: "json"},
			want: "{\"root\":{\"a\":\"x\",\"sub\":{\"b\":\"y\"}}}\n",
		},
		{
			name:    "missing",
			cmd:     Get{Path: []string{"root", "sb"}},
			wantErr: vdf.ErrKeyNotFound,
		},
		{
			name:    "through_string",
			cmd:     Get{Path: []string{"root", "a", "b"}},
			wantErr: vdf.ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, buf := testContext(t, nil)

			cmd := tt.cmd
			cmd.Source = path

			err := cmd.Run(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	got := suggest("sb", []string{"a", "sub", "sab", "other"})
	assert.Contains(t, got, "sub")
	assert.Contains(t, got, "sab")
	assert.NotContains(t, got, "a")

	assert.Empty(t, suggest("zzz", []string{"a", "b"}))

	many := suggest("k", []string{"k1", "k2", "k3", "k4", "k5"})
	assert.Len(t, many, maxSuggestions)
}
