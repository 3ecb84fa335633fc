package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/dumpconv/dumpconv/internal/adapters/outbound/config"
	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_ExplicitMissingFileFails(t *testing.T) {
	loader := appconfig.New()

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoader_YAMLExtendsDefaultTable(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", `
namespaces:
  - namespace: Game
    types: [FInventorySlot]
types:
  - raw: FString
    name: FString
    namespace: Custom
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	table := map[string]string{}
	for _, e := range cfg.TypeTable() {
		table[e.Raw] = e.Canonical()
	}
	assert.Equal(t, "Game::FInventorySlot", table["FInventorySlot"])
	assert.Equal(t, "Custom::FString", table["FString"], "explicit entries win over namespace groups")
	assert.Equal(t, "RC::Unreal::AActor", table["AActor"], "defaults are kept")
	assert.Equal(t, "int32_t", table["int32"])
}

func TestLoader_ReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", `
replace_defaults: true
types:
  - raw: AActor
    namespace: Engine
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.TypeEntry{{Raw: "AActor", Namespace: "Engine"}}, cfg.TypeTable())
	assert.Empty(t, cfg.IgnoredTypes)
	assert.Equal(t, domain.DefaultMacros(), cfg.Macros, "non-table settings keep defaults")
}

func TestLoader_TOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.toml", `
extensions = [".hpp"]
workers = 3
strip_name_suffixes = true

[enums]
patterns = ["^EGame"]
disable_prefix_convention = true

[macros]
vector = "ARRAY_FIELD"

[[types]]
raw = "UTimelineComponent"
namespace = "RC::Unreal"
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".hpp"}, cfg.Extensions)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.StripNameSuffixes)
	assert.Equal(t, []string{"^EGame"}, cfg.Enums.Patterns)
	assert.True(t, cfg.Enums.DisablePrefixConvention)
	assert.Equal(t, []string{"TEnumAsByte"}, cfg.Enums.Wrappers, "unset lists keep defaults")
	assert.Equal(t, "ARRAY_FIELD", cfg.Macros.Vector)
	assert.Equal(t, "FIELD", cfg.Macros.Standard)
}

func TestLoader_YAMLPreferredOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", "workers: 2\n")
	writeConfig(t, dir, ".dumpconv.toml", "workers = 9\n")
	loader := appconfig.New()

	located, err := loader.Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, ".dumpconv.yaml", filepath.Base(located))

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .dumpconv.yaml")
}

func TestLoader_InvalidEntryRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", `
types:
  - raw: "AActor*"
    namespace: RC::Unreal
`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .dumpconv.yaml")
}

func TestLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".dumpconv.yaml", "")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestMarshal_RoundTripsThroughLoader(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := appconfig.Marshal(domain.DefaultConfig(), format)
			require.NoError(t, err)

			dir := t.TempDir()
			writeConfig(t, dir, ".dumpconv."+format, string(data))

			cfg, err := appconfig.New().Load(dir)
			require.NoError(t, err)

			// Defaults are merged with an identical user table, so every
			// entry resolves the same way.
			table := map[string]string{}
			for _, e := range cfg.TypeTable() {
				table[e.Raw] = e.Canonical()
			}
			assert.Equal(t, "RC::Unreal::UTimelineComponent", table["UTimelineComponent"])
			assert.Equal(t, "uint8_t", table["uint8"])
			assert.Equal(t, domain.DefaultMacros(), cfg.Macros)
		})
	}
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := appconfig.Marshal(domain.DefaultConfig(), "ini")
	assert.Error(t, err)
}
