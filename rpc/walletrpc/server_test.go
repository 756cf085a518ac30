package walletrpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/walletbackend"
)

const bufSize = 1024 * 1024

func newTestClient(t *testing.T) (WalletRPCClient, func()) {
	t.Helper()

	backend, err := walletbackend.Create(cryptonote.NewMock(), daemon.NewMock(), config.Default())
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	RegisterWalletRPCServer(srv, NewServer(backend))
	go srv.Serve(lis)

	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	return NewWalletRPCClient(conn), func() {
		conn.Close()
		srv.Stop()
	}
}

func TestGetPrimaryAddressOverGRPC(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	resp, err := client.GetPrimaryAddress(context.Background(), &Empty{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Address)
}

func TestGetBalanceOverGRPC(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	resp, err := client.GetBalance(context.Background(), &BalanceRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Unlocked)
	assert.Zero(t, resp.Locked)
}

func TestGetBalanceUnknownAddressErrors(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	_, err := client.GetBalance(context.Background(), &BalanceRequest{Addresses: []string{"bogus"}})
	assert.Error(t, err)
}

func TestGetSyncStatusOverGRPC(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	resp, err := client.GetSyncStatus(context.Background(), &Empty{})
	require.NoError(t, err)
	assert.Zero(t, resp.WalletHeight)
}
