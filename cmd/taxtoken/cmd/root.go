package cmd

import (
	"github.com/MinterTeam/taxtoken/cmd/utils"
	"github.com/MinterTeam/taxtoken/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config

var RootCmd = &cobra.Command{
	Use:          "taxtoken",
	Short:        "Fee-on-transfer token ledger",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		v.SetConfigFile(utils.GetTaxTokenConfigPath())
		cfg = config.GetConfig()

		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}

		if err := v.Unmarshal(cfg); err != nil {
			return errors.Wrap(err, "parse config")
		}

		return cfg.ValidateBasic()
	},
}
