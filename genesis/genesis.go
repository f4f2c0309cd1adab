package genesis

import (
	"encoding/json"
	"os"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/pkg/errors"
	tmos "github.com/tendermint/tendermint/libs/os"
)

// Read loads and verifies the token state document stored at path.
func Read(path string) (*types.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}

	var appState types.AppState
	if err := json.Unmarshal(data, &appState); err != nil {
		return nil, errors.Wrapf(err, "parse genesis %s", path)
	}

	if err := appState.Verify(); err != nil {
		return nil, errors.Wrapf(err, "invalid genesis %s", path)
	}

	return &appState, nil
}

// Write stores appState as JSON at path, refusing to overwrite unless force is set.
func Write(path string, appState types.AppState, force bool) error {
	if !force && tmos.FileExists(path) {
		return errors.Errorf("genesis file %s already exists", path)
	}

	data, err := json.MarshalIndent(appState, "", "	")
	if err != nil {
		return err
	}

	return errors.Wrap(os.WriteFile(path, data, 0644), "write genesis")
}
