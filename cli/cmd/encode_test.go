package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/vdf/vdf"
)

func TestEncodeRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		input   string
		cmd     Encode
		want    string
		wantErr error
	}{
		{
			name:  "yaml",
			input: "root:\n  a: x\n  list:\n    - p\n    - q\n",
			want:  "\"root\"\n{\n\t\"a\" \"x\"\n\t\"list\"\n\t{\n\t\t\"0\" \"p\"\n\t\t\"1\" \"q\"\n\t}\n}\n",
		},
		{
			name:  "json_compact",
			input: `{"root": {"b": "y", "a": "x"}}`,
			cmd:   Encode{Compact: true},
			want:  "\"root\"\n{\n\"b\" \"y\"\n\"a\" \"x\"\n}\n",
		},
		{
			name:  "escape",
			input: "k: 'say \"hi\"'\n",
			cmd:   Encode{Escape: true},
			want:  "\"k\" \"say \\\"hi\\\"\"\n",
		},
		{
			name:    "not_a_mapping",
			input:   "just a string\n",
			wantErr: vdf.ErrInvalidTreeShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, buf := testContext(t, nil)

			cmd := tt.cmd
			cmd.Source = writeFile(t, dir, tt.name+".yaml", tt.input)

			err := cmd.Run(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, buf.String())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
