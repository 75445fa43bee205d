package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ikeike55momo/schedule/internal/domain"
)

const (
	AppName     = "teamctl"
	DefaultFile = "config.toml"
)

// Defaults are operator preferences read from a TOML file. Flags override them.
type Defaults struct {
	// UserID is used when --user is not given.
	UserID string `toml:"user_id"`
	// Mode is "personal" or "team".
	Mode          string `toml:"mode"`
	SpreadsheetID string `toml:"spreadsheet_id"`
	SheetRange    string `toml:"sheet_range"`
}

// DefaultsPath returns <user config dir>/teamctl/config.toml.
func DefaultsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, DefaultFile), nil
}

// LoadDefaults reads path. A missing file yields zero Defaults.
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	if _, err := toml.DecodeFile(path, &d); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("%s: %w", path, err)
	}
	if d.Mode != "" {
		if _, ok := domain.ParseViewMode(d.Mode); !ok {
			return Defaults{}, fmt.Errorf("%s: mode must be personal or team, got %q", path, d.Mode)
		}
	}
	return d, nil
}
