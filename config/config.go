package config

import (
	"fmt"
	"path/filepath"

	"github.com/MinterTeam/taxtoken/cmd/utils"
	tmConfig "github.com/tendermint/tendermint/config"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	// DBBackendGoLevelDB keeps the state on disk
	DBBackendGoLevelDB = "goleveldb"
	// DBBackendMemDB keeps the state in memory, useful for demos and tests
	DBBackendMemDB = "memdb"

	defaultConfigDir = "config"
	defaultDataDir   = "data"

	defaultConfigFileName  = "config.toml"
	defaultGenesisJSONName = "genesis.json"
)

var (
	defaultConfigFilePath  = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultGenesisJSONPath = filepath.Join(defaultConfigDir, defaultGenesisJSONName)
)

func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// GetConfig returns the default config rooted at the taxtoken home,
// creating the home layout on first use.
func GetConfig() *Config {
	cfg := DefaultConfig()

	cfg.SetRoot(utils.GetTaxTokenHome())
	EnsureRoot(utils.GetTaxTokenHome())

	return cfg
}

type Config struct {
	BaseConfig `mapstructure:",squash"`

	Instrumentation *tmConfig.InstrumentationConfig `mapstructure:"instrumentation"`
}

func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation and returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

func DefaultInstrumentationConfig() *tmConfig.InstrumentationConfig {
	cfg := tmConfig.DefaultInstrumentationConfig()
	cfg.Namespace = "taxtoken"
	cfg.PrometheusListenAddr = ":26660"
	return cfg
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration for a taxtoken node
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Path to the JSON file containing the initial token state
	Genesis string `mapstructure:"genesis_file"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`

	// Path to the log file, or "stdout"
	LogPath string `mapstructure:"log_path"`

	// Database backend: goleveldb | memdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// Address to listen for API connections
	APIListenAddress string `mapstructure:"api_listen_addr"`

	// Number of committed versions kept in the state tree, 0 keeps all of them
	KeepLastStates int64 `mapstructure:"keep_last_states"`

	// Cache size of the state tree
	StateCacheSize int `mapstructure:"state_cache_size"`
}

// DefaultBaseConfig returns a default base configuration for a taxtoken node
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		Genesis:          defaultGenesisJSONPath,
		LogLevel:         DefaultLogLevel(),
		LogFormat:        LogFormatPlain,
		LogPath:          "stdout",
		DBBackend:        DBBackendGoLevelDB,
		DBPath:           defaultDataDir,
		APIListenAddress: "tcp://0.0.0.0:8843",
		KeepLastStates:   120,
		StateCacheSize:   1000000,
	}
}

// GenesisFile returns the full path to the genesis.json file
func (cfg BaseConfig) GenesisFile() string {
	return rootify(cfg.Genesis, cfg.RootDir)
}

// DBDir returns the full path to the database directory
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// ValidateBasic performs basic validation of the base section.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (must be '%s' or '%s')", cfg.LogFormat, LogFormatPlain, LogFormatJSON)
	}
	switch cfg.DBBackend {
	case DBBackendGoLevelDB, DBBackendMemDB:
	default:
		return fmt.Errorf("unsupported db_backend %q", cfg.DBBackend)
	}
	if cfg.KeepLastStates < 0 {
		return fmt.Errorf("keep_last_states can't be negative")
	}
	if cfg.StateCacheSize < 0 {
		return fmt.Errorf("state_cache_size can't be negative")
	}
	return nil
}

// DefaultLogLevel returns a default log level of "info"
func DefaultLogLevel() string {
	return "info"
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
