package main

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	walletconfig "github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/rpc/walletrpc"
	"github.com/tcwallet/walletlib/walletbackend"
)

const bufSize = 1024 * 1024

func newTestClient(t *testing.T) (walletrpc.WalletRPCClient, func()) {
	t.Helper()

	backend, err := walletbackend.Create(cryptonote.NewMock(), daemon.NewMock(), walletconfig.Default())
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	walletrpc.RegisterWalletRPCServer(srv, walletrpc.NewServer(backend))
	go srv.Serve(lis)

	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	return walletrpc.NewWalletRPCClient(conn), func() {
		conn.Close()
		srv.Stop()
	}
}

func TestHandleGetPrimaryAddress(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	result, err := handleGetPrimaryAddress(context.Background(), client, nil)
	require.NoError(t, err)
	resp, ok := result.(*walletrpc.PrimaryAddressResponse)
	require.True(t, ok)
	assert.NotEmpty(t, resp.Address)
}

func TestHandleGetBalance(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	result, err := handleGetBalance(context.Background(), client, nil)
	require.NoError(t, err)
	resp, ok := result.(*walletrpc.BalanceResponse)
	require.True(t, ok)
	assert.Zero(t, resp.Unlocked)
	assert.Zero(t, resp.Locked)
}

func TestHandleGetSyncStatus(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	result, err := handleGetSyncStatus(context.Background(), client, nil)
	require.NoError(t, err)
	resp, ok := result.(*walletrpc.SyncStatusResponse)
	require.True(t, ok)
	assert.Zero(t, resp.WalletHeight)
}

func TestHandleGetNodeFee(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	result, err := handleGetNodeFee(context.Background(), client, nil)
	require.NoError(t, err)
	_, ok := result.(*walletrpc.NodeFeeResponse)
	require.True(t, ok)
}
