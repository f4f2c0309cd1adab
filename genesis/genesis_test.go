package genesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = types.HexToAddress("0x1000000000000000000000000000000000000001")
	team  = types.HexToAddress("0x2000000000000000000000000000000000000002")
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")

	appState := types.NewDefaultAppState(owner, team)
	require.NoError(t, Write(path, appState, false))

	read, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, appState, *read)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), owner.Hex())
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")

	appState := types.NewDefaultAppState(owner, team)
	require.NoError(t, Write(path, appState, false))
	assert.Error(t, Write(path, appState, false))
	assert.NoError(t, Write(path, appState, true))
}

func TestReadInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0644))
	_, err = Read(broken)
	assert.Error(t, err)

	appState := types.NewDefaultAppState(owner, team)
	appState.TotalSupply = "1"
	mismatch := filepath.Join(dir, "mismatch.json")
	require.NoError(t, Write(mismatch, appState, false))
	_, err = Read(mismatch)
	assert.Error(t, err)
}
