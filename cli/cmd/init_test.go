package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/vdf/vdf"
)

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				require.NoError(t, os.WriteFile(confPath, []byte("existing content"), 0o600))
			}

			ctx, _ := testContext(t, kong.Vars{ConfigIdentifier: confPath})

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, ErrWriteConfig)
				require.ErrorIs(t, err, tt.wantErr)

				content, readErr := os.ReadFile(confPath)
				require.NoError(t, readErr)
				assert.Equal(t, "existing content", string(content))

				return
			}

			require.NoError(t, err)

			content, err := os.ReadFile(confPath)
			require.NoError(t, err)

			tree, err := vdf.Decode(ctx, string(content))
			require.NoError(t, err)

			node, ok := tree.Lookup(ConfigIdentifier)
			require.True(t, ok)
			assert.True(t, node.IsMap())
		})
	}
}

func TestInitBuildTree(t *testing.T) {
	t.Parallel()

	var cli struct {
		Verbose bool     `help:"Enable verbose output" name:"verbose"`
		Output  string   `help:"Output file"           name:"output"`
		Count   int      `help:"Number of items"       name:"count"`
		Tags    []string `help:"Tags"                  name:"tags"`
		Empty   string   `help:"Unset"                 name:"empty"`
		Secret  string   `help:"Hidden"                name:"secret"  hidden:""`
	}

	parser, err := kong.New(&cli)
	require.NoError(t, err)

	ktx, err := parser.Parse([]string{
		"--verbose", "--output=test.txt", "--count=5",
		"--tags=a,b", "--secret=s",
	})
	require.NoError(t, err)

	ctx := WithContext(context.Background(), ktx)

	tree := (&Init{}).buildTree(ctx)

	conf, ok := tree.Lookup(ConfigIdentifier)
	require.True(t, ok)
	require.True(t, conf.IsMap())

	for path, want := range map[string]string{
		"verbose": "true",
		"output":  "test.txt",
		"count":   "5",
	} {
		got, ok := conf.Map.Get(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got.Str, path)
	}

	tag, ok := conf.Map.Get("tags", "1")
	require.True(t, ok)
	assert.Equal(t, "b", tag.Str)

	for _, key := range []string{"help", "empty", "secret"} {
		_, ok := conf.Map.Lookup(key)
		assert.False(t, ok, key)
	}
}
