package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/dumpconv/dumpconv/internal/domain"
)

// FileNames are the config files searched for, in order, when Load is given a
// directory.
var FileNames = []string{".dumpconv.yaml", ".dumpconv.yml", ".dumpconv.toml"}

// Loader implements domain.ConfigLoader for YAML and TOML files.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Locate returns the config file Load would read for path, or "" when path is
// a directory without a config file.
func (l *Loader) Locate(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading config: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range FileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Load reads the config at path, or searches path for one of FileNames when
// it is a directory. A directory without a config yields DefaultConfig.
// User settings are validated, then merged over the defaults.
func (l *Loader) Load(path string) (domain.Config, error) {
	file, err := l.Locate(path)
	if err != nil {
		return domain.Config{}, err
	}
	if file == "" {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return domain.Config{}, err
	}

	var cfg domain.Config
	name := filepath.Base(file)
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	// Validate before merging so errors point at the user's own input.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays user settings on top of the defaults. Non-zero lists
// replace the default list, except the type table, which is extended unless
// replace_defaults is set.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base
	result.ReplaceDefaults = override.ReplaceDefaults

	if len(override.Extensions) > 0 {
		result.Extensions = override.Extensions
	}
	if len(override.Exclude) > 0 {
		result.Exclude = override.Exclude
	}
	if override.Workers > 0 {
		result.Workers = override.Workers
	}

	if override.ReplaceDefaults {
		result.Namespaces = override.Namespaces
		result.Types = override.Types
		result.IgnoredTypes = override.IgnoredTypes
	} else {
		result.Namespaces = append(append([]domain.NamespaceGroup{}, base.Namespaces...), override.Namespaces...)
		result.Types = append(append([]domain.TypeEntry{}, base.Types...), override.Types...)
		if len(override.IgnoredTypes) > 0 {
			result.IgnoredTypes = override.IgnoredTypes
		}
	}

	if len(override.FixedArrays) > 0 {
		result.FixedArrays = override.FixedArrays
	}

	if len(override.Enums.Wrappers) > 0 {
		result.Enums.Wrappers = override.Enums.Wrappers
	}
	if len(override.Enums.Patterns) > 0 {
		result.Enums.Patterns = override.Enums.Patterns
	}
	result.Enums.DisablePrefixConvention = override.Enums.DisablePrefixConvention

	if override.Macros.Standard != "" {
		result.Macros.Standard = override.Macros.Standard
	}
	if override.Macros.Vector != "" {
		result.Macros.Vector = override.Macros.Vector
	}
	if override.Macros.BitField != "" {
		result.Macros.BitField = override.Macros.BitField
	}
	if override.Macros.Enum != "" {
		result.Macros.Enum = override.Macros.Enum
	}

	result.StripNameSuffixes = override.StripNameSuffixes

	return result
}

// Marshal renders cfg in the given format ("yaml" or "toml").
func Marshal(cfg domain.Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q (valid: yaml, toml)", format)
	}
}
