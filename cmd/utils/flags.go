package utils

import (
	"os"
	"path/filepath"
)

var (
	TaxTokenHome   string
	TaxTokenConfig string
)

func GetTaxTokenHome() string {
	if TaxTokenHome != "" {
		return TaxTokenHome
	}

	home := os.Getenv("TAXTOKENHOME")

	if home != "" {
		return home
	}

	return os.ExpandEnv(filepath.Join("$HOME", ".taxtoken"))
}

func GetTaxTokenConfigPath() string {
	if TaxTokenConfig != "" {
		return TaxTokenConfig
	}

	return filepath.Join(GetTaxTokenHome(), "config", "config.toml")
}
