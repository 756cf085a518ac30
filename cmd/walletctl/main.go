// Command walletctl is a thin RPC client for lightwalletd, mirroring the
// abewalletctl shape: a standalone binary that dials the running
// daemon's RPC surface, dispatches a single command from argv, and prints
// the result. Unlike a JSON-RPC-over-HTTP client dispatching abejson
// transaction-composition commands (out of scope here, spec section 1),
// this client dials the gRPC read surface and only exposes the handful
// of read-only queries that surface exposes.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tcwallet/walletlib/rpc/walletrpc"
)

const (
	showHelpMessage = "Specify -h to show available options"
	listCmdMessage  = "Available commands: getsyncstatus, getbalance, getnodefee, getprimaryaddress"
)

var commandHandlers = map[string]func(ctx context.Context, client walletrpc.WalletRPCClient, args []string) (interface{}, error){
	"getsyncstatus":     handleGetSyncStatus,
	"getbalance":        handleGetBalance,
	"getnodefee":        handleGetNodeFee,
	"getprimaryaddress": handleGetPrimaryAddress,
}

func usage(errorMessage string) {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	fmt.Fprintln(os.Stderr, errorMessage)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintf(os.Stderr, "  %s [OPTIONS] <command> <args...>\n\n", appName)
	fmt.Fprintln(os.Stderr, showHelpMessage)
	fmt.Fprintln(os.Stderr, listCmdMessage)
}

func main() {
	opts, args, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}
	if len(args) < 1 {
		usage("No command specified")
		os.Exit(1)
	}

	method := args[0]
	handler, ok := commandHandlers[method]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unrecognized command '%s'\n", method)
		fmt.Fprintln(os.Stderr, listCmdMessage)
		os.Exit(1)
	}

	conn, err := grpc.NewClient(opts.RPCServer, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect:", err)
		os.Exit(1)
	}
	defer conn.Close()
	client := walletrpc.NewWalletRPCClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	result, err := handler(ctx, client, args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printResult(result)
}

// printResult pretty-prints a result the same way this codebase's
// abewalletctl formats JSON-RPC responses.
func printResult(v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to format result:", err)
		os.Exit(1)
	}
	var dst bytes.Buffer
	if err := json.Indent(&dst, raw, "", "  "); err != nil {
		fmt.Fprintln(os.Stderr, "failed to format result:", err)
		os.Exit(1)
	}
	fmt.Println(dst.String())
}

func handleGetSyncStatus(ctx context.Context, client walletrpc.WalletRPCClient, args []string) (interface{}, error) {
	return client.GetSyncStatus(ctx, &walletrpc.Empty{})
}

func handleGetBalance(ctx context.Context, client walletrpc.WalletRPCClient, args []string) (interface{}, error) {
	return client.GetBalance(ctx, &walletrpc.BalanceRequest{Addresses: args})
}

func handleGetNodeFee(ctx context.Context, client walletrpc.WalletRPCClient, args []string) (interface{}, error) {
	return client.GetNodeFee(ctx, &walletrpc.Empty{})
}

func handleGetPrimaryAddress(ctx context.Context, client walletrpc.WalletRPCClient, args []string) (interface{}, error) {
	return client.GetPrimaryAddress(ctx, &walletrpc.Empty{})
}
