package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dumpconv/dumpconv/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Defaults(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--config", t.TempDir()})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "built-in defaults")
	assert.Contains(t, buf.String(), "FIELD VECTOR_INT_FIELD BIT_FIELD ENUM_FIELD")
}

func TestValidateCommand_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dumpconv.toml"), []byte("[macros]\nenum = \"ENUM_MEMBER\"\n"), 0o644))

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--config", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), ".dumpconv.toml")
	assert.Contains(t, buf.String(), "ENUM_MEMBER")
}

func TestValidateCommand_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dumpconv.yaml"), []byte("macros:\n  standard: \"NOT A MACRO\"\n"), 0o644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"validate", "--config", dir})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "not a valid identifier")
}
