package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
)

// Sentinels matched by the exit code dispatcher in main.
var (
	ErrNotFound      = errors.New("config file not found")
	ErrInvalidFormat = errors.New("config file is not valid")
	ErrMissingKeys   = errors.New("config missing required keys")
)

var requiredKeys = []string{"folder_path", "output_path"}

type Configuration struct {
	FolderPath    string              `koanf:"folder_path"`
	OutputPath    string              `koanf:"output_path"`
	LogLevel      string              `koanf:"log_level"`
	Filters       FiltersConfig       `koanf:"filters"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

type FiltersConfig struct {
	// IgnorePaths are case-insensitive path prefixes; matching directories
	// are pruned from the walk, matching files are skipped.
	IgnorePaths []string `koanf:"ignore_paths"`
	// IgnoreExtensions skips files by extension, e.g. [".nfo", ".srt"].
	IgnoreExtensions []string `koanf:"ignore_extensions"`
	// Ignore holds filter expressions evaluated against each file; any
	// expression returning true skips the file.
	Ignore []string `koanf:"ignore"`
}

// Load reads the configuration at path, validates the required keys and
// resolves the scan and output paths to absolute paths.
func Load(path string) (*Configuration, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat config file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(k.String(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingKeys, missing)
	}

	cfg := &Configuration{LogLevel: "INFO"}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	folder, err := filepath.Abs(cfg.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("resolve folder_path: %w", err)
	}
	cfg.FolderPath = folder

	output, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve output_path: %w", err)
	}
	cfg.OutputPath = output

	return cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return kjson.Parser()
	}
}
