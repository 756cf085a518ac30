package main

import (
	"os"
	"time"

	flags "github.com/jessevdk/go-flags"
)

const defaultRPCServer = "127.0.0.1:18444"

type config struct {
	RPCServer string        `short:"s" long:"rpcserver" description:"RPC server to connect to" default:"127.0.0.1:18444"`
	Timeout   time.Duration `long:"timeout" description:"Timeout for the RPC request" default:"10s"`
}

// loadConfig parses command-line arguments into a config and returns the
// remaining positional arguments (command name plus its parameters).
func loadConfig() (*config, []string, error) {
	cfg := config{RPCServer: defaultRPCServer, Timeout: 10 * time.Second}
	parser := flags.NewParser(&cfg, flags.Default)
	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}
	return &cfg, args, nil
}
