package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is looked up under the user config directory when no
// explicit path is given.
const ConfigFileName = "punjika.toml"

// File is the on-disk configuration read by the terminal client.
type File struct {
	Language   string `toml:"language"`
	OffsetMode string `toml:"offset_mode"`
}

// DefaultFile returns the configuration used when no file exists.
func DefaultFile() File {
	return File{
		Language:   DefaultLanguage,
		OffsetMode: DefaultOffsetMode,
	}
}

// DefaultFilePath returns <UserConfigDir>/<AppID>/punjika.toml.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppID, ConfigFileName), nil
}

// LoadFile reads a TOML configuration file. A missing file yields the
// defaults with found set to false. Fields absent from the file keep their
// default values.
func LoadFile(path string) (cfg File, found bool, err error) {
	cfg = DefaultFile()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultFile(), true, fmt.Errorf("%s: %w", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultFile(), true, err
	}
	return cfg, true, nil
}

// Validate checks the enumerated fields.
func (f File) Validate() error {
	if !slices.Contains(SupportedLanguages, f.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, f.Language)
	}
	if f.OffsetMode != OffsetModeLegacy && f.OffsetMode != OffsetModeBangladesh {
		return fmt.Errorf("%s: %q", ErrOffsetMode, f.OffsetMode)
	}
	return nil
}
