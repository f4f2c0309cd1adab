package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MinterTeam/taxtoken/cmd/taxtoken/cmd"
	"github.com/MinterTeam/taxtoken/cmd/utils"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := cmd.RootCmd
	rootCmd.PersistentFlags().StringVar(&utils.TaxTokenHome, "home-dir", "", "base dir (default is $HOME/.taxtoken)")
	rootCmd.PersistentFlags().StringVar(&utils.TaxTokenConfig, "config", "", "path to config (default is $(home-dir)/config/config.toml)")

	rootCmd.AddCommand(
		cmd.InitCommand,
		cmd.RunNode,
		cmd.ExportCommand,
		cmd.KeyCommand,
		cmd.SignCommand,
		cmd.Version)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
