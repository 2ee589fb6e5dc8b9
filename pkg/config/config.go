// Package config loads the optional conceptmap.toml file.
//
// A config file supplies defaults for command-line flags and an extra style
// table:
//
//	cutoff = 3
//	format = "tree"
//	input_dir = "maps"
//	output_dir = "public/data"
//	render = ["svg"]
//
//	[styles.default]
//	shape = "box"
//	style = "filled"
//	fillcolor = "white"
//
//	[serve]
//	addr = ":8080"
//
// Flags override the file and the file overrides built-in defaults. Styles
// from the file only fill tags the input does not define.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "conceptmap.toml"

// Config is the decoded config file. Zero values mean "not set".
type Config struct {
	Cutoff    int                     `toml:"cutoff"`
	Format    string                  `toml:"format"`
	Legacy    bool                    `toml:"legacy"`
	InputDir  string                  `toml:"input_dir"`
	OutputDir string                  `toml:"output_dir"`
	Render    []string                `toml:"render"`
	Styles    map[string]source.Style `toml:"styles"`
	Serve     Serve                   `toml:"serve"`

	// Path is the file the config was loaded from, or empty.
	Path string `toml:"-"`
}

// Serve holds settings of the serve command.
type Serve struct {
	Addr string `toml:"addr"`
}

// Load decodes the config file at path. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate %s", path)
	}
	c.Path = path
	return &c, nil
}

// Discover loads path if given. Otherwise it loads [DefaultFile] from the
// working directory when present and returns an empty config when not.
func Discover(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return &Config{}, nil
	}
	return Load(DefaultFile)
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Cutoff != 0 {
		if err := errors.ValidateCutoffValue(c.Cutoff); err != nil {
			return err
		}
	}
	for _, dir := range []string{c.InputDir, c.OutputDir} {
		if dir == "" {
			continue
		}
		if err := errors.ValidatePath(dir); err != nil {
			return err
		}
	}
	return nil
}
