// Command lightwalletd wires a DaemonClient, the wallet synchronization
// core, persistence, and the read-surface transports (gRPC + websocket
// event relay) into one running process, mirroring this codebase's
// cmd/abewalletctl entry point shape: parse flags, set up logging, load
// or create a wallet, run until a termination signal arrives.
package main

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"google.golang.org/grpc"

	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/eventbus/wsrelay"
	"github.com/tcwallet/walletlib/internal/prompt"
	"github.com/tcwallet/walletlib/rpc/walletrpc"
	"github.com/tcwallet/walletlib/walletbackend"
)

const defaultWSListen = "127.0.0.1:18445"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initLogRotator(filepath.Join(opts.LogDir, defaultLogFilename))
	setLogLevels(opts.DebugLevel)

	if err := os.MkdirAll(opts.DataDir, 0700); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}

	ops := cryptonote.Default{}
	client := daemon.NewHTTPClient(opts.DaemonAddress, daemon.KindNode,
		daemon.WithTimeout(cfg.RequestTimeout))

	backend, err := openOrCreateWallet(opts, ops, client, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	backend.Start()
	defer backend.Stop()

	grpcServer := grpc.NewServer()
	walletrpc.RegisterWalletRPCServer(grpcServer, walletrpc.NewServer(backend))

	lis, err := net.Listen("tcp", opts.RPCListen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.RPCListen, err)
	}
	go func() {
		log.Infof("gRPC read surface listening on %s", opts.RPCListen)
		if err := grpcServer.Serve(lis); err != nil {
			log.Errorf("gRPC server exited: %v", err)
		}
	}()
	defer grpcServer.GracefulStop()

	relay := wsrelay.New(backend.Events())
	relayStop := make(chan struct{})
	go relay.Run(relayStop)
	defer close(relayStop)

	mux := http.NewServeMux()
	mux.Handle("/events", relay)
	httpServer := &http.Server{Addr: defaultWSListen, Handler: mux}
	go func() {
		log.Infof("event relay listening on %s", defaultWSListen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("event relay server exited: %v", err)
		}
	}()
	defer httpServer.Close()

	interruptListener()
	log.Info("shutting down")
	return nil
}

func openOrCreateWallet(opts *cliOptions, ops cryptonote.Ops, client daemon.Client, cfg config.Config) (*walletbackend.WalletBackend, error) {
	if opts.CreateWallet {
		backend, err := createWallet(opts, ops, client, cfg)
		if err != nil {
			return nil, err
		}
		if err := backend.SaveToFile(opts.WalletFile); err != nil {
			return nil, err
		}
		return backend, nil
	}
	return walletbackend.OpenFromFile(ops, client, cfg, opts.WalletFile)
}

// createWallet builds a fresh wallet, either silently (the default, used
// by scripted deployments) or by walking the operator through recording
// and confirming their mnemonic seed on stdin/stdout with --interactive.
func createWallet(opts *cliOptions, ops cryptonote.Ops, client daemon.Client, cfg config.Config) (*walletbackend.WalletBackend, error) {
	if !opts.Interactive {
		return walletbackend.Create(ops, client, cfg)
	}

	reader := bufio.NewReader(os.Stdin)
	_, words, err := prompt.Seed(reader, ops)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain wallet seed: %w", err)
	}
	return walletbackend.ImportFromSeed(ops, client, cfg, words, 0)
}
