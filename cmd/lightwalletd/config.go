package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/internal/cfgutil"
)

const (
	defaultConfigFilename = "lightwalletd.conf"
	defaultLogFilename    = "lightwalletd.log"
	defaultLogLevel       = "info"
	defaultRPCListen      = "127.0.0.1:18444"
)

var (
	defaultHomeDir    = appDataDir("lightwalletd", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, "logs")
)

// cliOptions holds every flag recognized by lightwalletd: flags tags,
// Default values, and a ConfigFile escape hatch parsed via go-flags'
// ini support.
type cliOptions struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store the wallet file and logs"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	DebugLevel string `long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`

	DaemonAddress string `long:"daemonaddress" description:"HTTP address of the TurtleCoin-family daemon or blockchain cache to sync against"`
	RPCListen     string `long:"rpclisten" description:"gRPC read-surface listen address"`
	WalletFile    string `long:"walletfile" description:"Path to the wallet file to open or create"`
	CreateWallet  bool   `long:"create" description:"Create a new wallet at --walletfile instead of opening an existing one"`
	Interactive   bool   `long:"interactive" description:"Prompt on stdin/stdout for the wallet seed when creating a wallet instead of generating one silently"`

	MinimumFee       *cfgutil.AmountFlag `long:"minimumfee" description:"Network minimum fee in atomic units, or \"X TRTL\""`
	ScanCoinbase     bool                `long:"scancoinbase" description:"Scan coinbase outputs for ownership"`
	MainLoopInterval time.Duration       `long:"mainloopinterval" description:"Synchronization scheduler tick period"`
}

func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig parses command-line and config-file options into a
// config.Config plus the subset of fields main.go needs for process
// wiring, following this codebase's two-pass go-flags loadConfig (parse
// once for -C/--configfile, reparse with the ini file as defaults).
func loadConfig() (*cliOptions, config.Config, error) {
	opts := cliOptions{
		DataDir:    defaultHomeDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		RPCListen:  defaultRPCListen,
		WalletFile: filepath.Join(defaultHomeDir, "wallet.db"),
	}
	preParser := flags.NewParser(&opts, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, config.Config{}, err
	}

	configFile := defaultConfigFile
	if opts.ConfigFile != "" {
		configFile = cleanAndExpandPath(opts.ConfigFile)
	}
	if _, statErr := os.Stat(configFile); statErr == nil {
		err = flags.NewIniParser(preParser).ParseFile(configFile)
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Reparse the command line so its flags take precedence over
		// the values read from the config file.
		if _, err = preParser.Parse(); err != nil {
			return nil, config.Config{}, err
		}
	}

	opts.DataDir = cleanAndExpandPath(opts.DataDir)
	opts.LogDir = cleanAndExpandPath(opts.LogDir)

	cfg := config.Default()
	if opts.MinimumFee != nil {
		cfg.MinimumFee = opts.MinimumFee.AtomicUnits
	}
	if opts.ScanCoinbase {
		cfg.ScanCoinbase = true
	}
	if opts.MainLoopInterval != 0 {
		cfg.MainLoopInterval = opts.MainLoopInterval
	}

	return &opts, cfg, nil
}
