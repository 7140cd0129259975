package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/vdf/pkg"
)

// configName is the base name of the configuration file and the key of its
// root block.
const configName = "config"

// basePathEnv names the PATH-like environment variable listing directories
// searched for #base files.
const basePathEnv = "VDF_BASE_PATH"

var defaultDirMode os.FileMode = 0o700

// exeName returns the name under which the configuration and cache
// directories are created: the executable's base name without extension,
// with leading dots removed. Debugger builds fall back to [pkg.Name].
var exeName = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = strings.TrimLeft(id, ".")

		if id == "" || regexp.MustCompile(`^__debug_bin\d*$`).MatchString(id) {
			return pkg.Name
		}

		return id
	},
)

// userDir joins exeName to the first usable of primary, a dot directory
// under the user's home, or the working directory.
func userDir(primary func() (string, error), dot string) string {
	dir, err := primary()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr == nil {
			dir = filepath.Join(home, dot)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, exeName())
}

var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		err := os.MkdirAll(dir, defaultDirMode)
		if err != nil {
			return err
		}
	}

	return nil
}

// searchPath merges the directories given on the command line, in order,
// ahead of those listed in env, dropping duplicates and empty entries.
func searchPath(env string, flags ...string) []string {
	sep := string(os.PathListSeparator)

	// Prefix items are prepended one at a time.
	prefix := slices.Clone(flags)
	slices.Reverse(prefix)

	merged := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(sep),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(func(s string) bool { return strings.TrimSpace(s) != "" }),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(merged, sep) {
		if dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
