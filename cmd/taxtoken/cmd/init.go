package cmd

import (
	"fmt"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/genesis"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var InitCommand = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and the reference genesis",
	RunE:  initGenesis,
}

func init() {
	InitCommand.Flags().String("owner", "", "owner address, receives the supply minus the team share")
	InitCommand.Flags().String("team", "", "team wallet address")
	InitCommand.Flags().String("tax-wallet", "", "tax wallet address (default is the owner)")
	InitCommand.Flags().Bool("force", false, "overwrite an existing genesis file")
}

func initGenesis(cmd *cobra.Command, args []string) error {
	owner, err := addressFlag(cmd, "owner")
	if err != nil {
		return err
	}

	team, err := addressFlag(cmd, "team")
	if err != nil {
		return err
	}

	appState := types.NewDefaultAppState(owner, team)

	if wallet, _ := cmd.Flags().GetString("tax-wallet"); wallet != "" {
		if appState.TaxWallet, err = addressFlag(cmd, "tax-wallet"); err != nil {
			return err
		}
	}

	if err := appState.Verify(); err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := genesis.Write(cfg.GenesisFile(), appState, force); err != nil {
		return err
	}

	fmt.Printf("Genesis written to %s, contract address %s\n", cfg.GenesisFile(), appState.ContractAddress)
	return nil
}

func addressFlag(cmd *cobra.Command, name string) (types.Address, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.Address{}, err
	}

	if !types.IsHexAddress(value) {
		return types.Address{}, errors.Errorf("--%s should be a hex address, got %q", name, value)
	}

	return types.HexToAddress(value), nil
}
