// Package daemon defines the DaemonClient capability consumed by the main
// loop: block-batch fetch, height/fee/status queries. It is explicitly an
// external collaborator per spec section 1 ("wire transport ... treated as
// a pure capability"); the wallet-sync engine is written against the
// Client interface only. This package additionally ships one concrete
// HTTP/JSON-RPC implementation so the module is runnable against a real
// TurtleCoin-family daemon or blockchain-cache accelerator, modeled on a
// chain.Interface shape (one abstract interface, one concrete client),
// and on CHIHCHIEH-LAI/btcwatcher's use of resty for polling a
// remote chain API over HTTP.
package daemon

import (
	"context"

	"github.com/tcwallet/walletlib/blockdata"
)

// Kind distinguishes the two anticipated DaemonClient providers named in
// spec section 6: a conventional node (authoritative, higher latency) and
// a blockchain-cache accelerator (faster, possibly lossy on global
// indexes).
type Kind int

const (
	// KindNode is a conventional full/light node RPC endpoint.
	KindNode Kind = iota
	// KindCache is a blockchain-cache accelerator endpoint.
	KindCache
)

// InfoResult is the response shape of Client.Info.
type InfoResult struct {
	Height                      uint64
	NetworkHeight               uint64
	IncomingConnectionsCount    int
	OutgoingConnectionsCount    int
	Difficulty                  uint64
}

// FeeResult is the response shape of Client.Fee.
type FeeResult struct {
	Status  string
	Address string
	Amount  uint64
}

// OK reports whether the fee info is usable (spec section 6: status "OK"
// required).
func (f *FeeResult) OK() bool {
	return f.Status == "OK"
}

// WalletSyncDataRequest is the input to Client.GetWalletSyncData.
type WalletSyncDataRequest struct {
	BlockHashCheckpoints []blockdata.Hash32
	StartHeight          uint64
	StartTimestamp       uint64
	BlockCount           int
}

// TransactionsStatusResult is the response shape of
// Client.GetTransactionsStatus.
type TransactionsStatusResult struct {
	TransactionsUnknown []blockdata.Hash32
}

// Client is the capability the main loop needs from a remote chain
// source, matching spec section 6's "Daemon capability (consumed)"
// verbatim.
type Client interface {
	// Info returns current chain height, network height, and peer
	// counts.
	Info(ctx context.Context) (*InfoResult, error)

	// Fee returns the node's recommended fee destination and amount.
	Fee(ctx context.Context) (*FeeResult, error)

	// GetWalletSyncData returns a batch of blocks anchored on the given
	// checkpoints. An empty result means the caller is considered
	// synced for this tick.
	GetWalletSyncData(ctx context.Context, req WalletSyncDataRequest) ([]blockdata.Block, error)

	// GetGlobalIndexesForRange returns, for every output-bearing
	// transaction in [startHeight, endHeight), its outputs' global
	// indexes in transaction order.
	GetGlobalIndexesForRange(ctx context.Context, startHeight, endHeight uint64) (map[blockdata.Hash32][]uint64, error)

	// GetTransactionsStatus reports which of the given transaction
	// hashes the daemon has never heard of (used to detect cancelled
	// locked sends).
	GetTransactionsStatus(ctx context.Context, transactionHashes []blockdata.Hash32) (*TransactionsStatusResult, error)

	// Kind reports which of the two anticipated providers this client
	// talks to.
	Kind() Kind
}
