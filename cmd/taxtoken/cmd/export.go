package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/MinterTeam/taxtoken/coreV2/token"
	"github.com/MinterTeam/taxtoken/genesis"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

var ExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Dump the last committed state as genesis",
	RunE:  export,
}

func init() {
	ExportCommand.Flags().String("output", "", "write the export to a file instead of stdout")
}

func export(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	tok, err := token.New(db, nil, token.Options{
		StateCacheSize: cfg.StateCacheSize,
		Logger:         log.NewNopLogger(),
	})
	if err != nil {
		return errors.Wrap(err, "load state")
	}

	appState, err := tok.Export()
	if err != nil {
		return err
	}
	appState.Note = fmt.Sprintf("export at height %d, app hash %X", tok.Height(), tok.Hash())

	if err := appState.Verify(); err != nil {
		return errors.Wrap(err, "exported state")
	}

	if output != "" {
		return genesis.Write(output, appState, false)
	}

	data, err := json.MarshalIndent(appState, "", "	")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
