package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dumpconv/dumpconv/internal/adapters/inbound/cli"
	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpsDir = "../../../../testdata/dumps"

// runConvert executes the convert command with an empty config directory so
// the working directory never leaks into the result.
func runConvert(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"convert", "--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestConvertCommand_JSON(t *testing.T) {
	out := t.TempDir()

	stdout, err := runConvert(t, dumpsDir, out, "--json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 3, report.FilesProcessed)
	assert.Equal(t, 2, report.Fields.BitField)
	assert.Contains(t, report.Unmapped, "FInventorySlot")

	data, err := os.ReadFile(filepath.Join(out, "Engine", "Actor.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "FIELD(0x05F8, RC::Unreal::UTimelineComponent*, getUpTimeline);")
}

func TestConvertCommand_DefaultTUI(t *testing.T) {
	stdout, err := runConvert(t, dumpsDir, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "dumpconv")
	assert.Contains(t, stdout, "Files processed")
	assert.Contains(t, stdout, "FInventorySlot")
}

func TestConvertCommand_CIFailsOnUnmapped(t *testing.T) {
	_, err := runConvert(t, dumpsDir, t.TempDir(), "--ci")
	require.Error(t, err)
	assert.Equal(t, cli.ExitPartial, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "unmapped")
}

func TestConvertCommand_CIPassesWhenEverythingMaps(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "A.hpp"), []byte("    int32 Flags : 3; // 0x0010 (size: 0x4)\n"), 0o644))

	_, err := runConvert(t, in, t.TempDir(), "--ci", "--workers", "1")
	assert.NoError(t, err)
	assert.Equal(t, cli.ExitOK, cli.ExitCode(err))
}

func TestConvertCommand_MissingInputIsFatal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")

	_, err := runConvert(t, filepath.Join(t.TempDir(), "missing"), out)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFatal, cli.ExitCode(err))
	assert.NoDirExists(t, out)
}

func TestConvertCommand_BadConfigIsFatal(t *testing.T) {
	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, ".dumpconv.yaml"), []byte("workers: -1\n"), 0o644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"convert", "--config", cfgDir, dumpsDir, t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitFatal, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "workers must be >= 0")
}

func TestConvertCommand_RequiresTwoArgs(t *testing.T) {
	_, err := runConvert(t, dumpsDir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFatal, cli.ExitCode(err))
}

func TestConvertCommand_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	_, err := runConvert(t, dumpsDir, t.TempDir(), "--log-level", "debug", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "converted")
	assert.Contains(t, string(data), "file=Engine/Actor.hpp")
}
