package mainloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/eventbus"
	"github.com/tcwallet/walletlib/subwallet"
	"github.com/tcwallet/walletlib/subwallets"
	"github.com/tcwallet/walletlib/synchronizer"
	"github.com/tcwallet/walletlib/syncstatus"
)

func hash(b byte) blockdata.Hash32 {
	var h blockdata.Hash32
	h[0] = b
	return h
}

func recvOrTimeout[T any](t *testing.T, ch <-chan T) (T, bool) {
	t.Helper()
	select {
	case v := <-ch:
		return v, true
	case <-time.After(100 * time.Millisecond):
		var zero T
		return zero, false
	}
}

type testLoop struct {
	loop        *MainLoop
	client      *daemon.MockClient
	subWallets  *subwallets.SubWallets
	syncStatus  *syncstatus.SynchronizationStatus
	bus         *eventbus.Bus
	ops         cryptonote.Ops
	publicSpend blockdata.Hash32
}

func newTestLoop(t *testing.T, cfg config.Config) *testLoop {
	t.Helper()
	ops := cryptonote.NewMock()

	_, privateView, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	publicSpend, privateSpend, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	sw := subwallets.New(privateView, false)
	require.NoError(t, sw.AddSubWallet(subwallet.New("addr", publicSpend, &privateSpend, 0, 0)))

	status := syncstatus.New(0, 0)
	bus := eventbus.New()
	client := daemon.NewMock()
	sync := synchronizer.New(ops, sw, false)

	loop := New(client, ops, sw, status, sync, bus, cfg)

	return &testLoop{
		loop:        loop,
		client:      client,
		subWallets:  sw,
		syncStatus:  status,
		bus:         bus,
		ops:         ops,
		publicSpend: publicSpend,
	}
}

func recognizedOutputBlock(t *testing.T, ops cryptonote.Ops, privateView, publicSpend blockdata.Hash32, height uint64) blockdata.Block {
	t.Helper()
	txPublicKey := hash(byte(height))
	derivation, err := ops.GenerateKeyDerivation(txPublicKey, privateView)
	require.NoError(t, err)
	outputKey, err := ops.UnderivePublicKey(derivation, 0, publicSpend)
	require.NoError(t, err)

	return blockdata.Block{
		Height:     height,
		Hash:       hash(byte(0x80 + height)),
		CoinbaseTx: blockdata.RawTx{IsCoinbase: true},
		Txs: []blockdata.RawTx{{
			Hash:        hash(byte(height + 1)),
			TxPublicKey: txPublicKey,
			Outputs:     []blockdata.RawOutput{{Key: outputKey, Amount: 1000}},
		}},
	}
}

func TestFetchStepQueuesBlocksBelowLowWaterMark(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.client.Blocks = []blockdata.Block{{Height: 1}, {Height: 2}}

	tl.loop.fetchStep(context.Background())

	assert.Equal(t, 2, tl.loop.queueLen())
	require.Len(t, tl.client.SyncDataCalls, 1)
}

func TestFetchStepSkipsWhenAtOrAboveHighWaterMark(t *testing.T) {
	cfg := config.Default()
	cfg.HighWaterMark = 1
	cfg.LowWaterMark = 0
	tl := newTestLoop(t, cfg)
	tl.loop.blocksToProcess = []blockdata.Block{{Height: 1}}

	tl.client.Blocks = []blockdata.Block{{Height: 2}}
	tl.loop.fetchStep(context.Background())

	assert.Empty(t, tl.client.SyncDataCalls)
}

func TestProcessStepAppliesRecognizedOutputAndAdvancesSyncStatus(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	block := recognizedOutputBlock(t, tl.ops, tl.subWallets.PrivateViewKey(), tl.publicSpend, 10)
	tl.loop.blocksToProcess = []blockdata.Block{block}

	txCh := tl.bus.SubscribeTransaction()

	tl.loop.processStep(context.Background())

	unlocked, _ := tl.subWallets.GetBalance(10, blockdata.UnlockTimeAsBlockHeightThreshold, nil)
	assert.Equal(t, uint64(1000), unlocked)
	assert.Equal(t, uint64(10), tl.syncStatus.LastKnownBlockHeight())
	assert.Equal(t, block.Hash, tl.syncStatus.LastKnownBlockHashes()[0])

	_, ok := recvOrTimeout(t, txCh)
	assert.True(t, ok)
}

func TestProcessStepRespectsBlocksPerTick(t *testing.T) {
	cfg := config.Default()
	cfg.BlocksPerTick = 1
	tl := newTestLoop(t, cfg)
	tl.loop.blocksToProcess = []blockdata.Block{{Height: 1}, {Height: 2}}

	tl.loop.processStep(context.Background())

	assert.Equal(t, 1, tl.loop.queueLen())
	assert.Equal(t, uint64(1), tl.syncStatus.LastKnownBlockHeight())
}

func TestDetectForkWhenBatchSkipsAhead(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.syncStatus.StoreBlockHash(5, hash(0x50))
	tl.loop.blocksToProcess = []blockdata.Block{{Height: 1}}

	forked := tl.loop.detectFork(blockdata.Block{Height: 10, PrevHash: hash(0x99)})

	assert.True(t, forked)
	assert.Empty(t, tl.loop.blocksToProcess)
	assert.Empty(t, tl.syncStatus.LastKnownBlockHashes())
}

func TestDetectForkWhenTipHashDiverges(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.syncStatus.StoreBlockHash(5, hash(0x50))

	forked := tl.loop.detectFork(blockdata.Block{Height: 5, PrevHash: hash(0x99)})
	assert.True(t, forked)
}

func TestDetectForkFalseForContiguousBlock(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.syncStatus.StoreBlockHash(5, hash(0x50))

	forked := tl.loop.detectFork(blockdata.Block{Height: 6, PrevHash: hash(0x50)})
	assert.False(t, forked)
}

func TestDetectForkFalseWhenNoPriorTip(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	forked := tl.loop.detectFork(blockdata.Block{Height: 6, PrevHash: hash(0x50)})
	assert.False(t, forked)
}

func TestHandleForkRewindsSubWalletsAndSyncStatus(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.subWallets.AddTransaction(blockdata.Transaction{
		Hash:        hash(0x01),
		BlockHeight: 100,
		Transfers:   map[blockdata.Hash32]int64{},
	})
	tl.syncStatus.StoreBlockHash(100, hash(0x50))
	tl.loop.blocksToProcess = []blockdata.Block{{Height: 101}}

	tl.loop.handleFork(100)

	assert.Empty(t, tl.subWallets.ConfirmedTransactions())
	assert.Empty(t, tl.loop.blocksToProcess)
	assert.Equal(t, uint64(99), tl.syncStatus.LastKnownBlockHeight())
}

func TestReconcileLockedRemovesUnknownTransactions(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	locked := blockdata.Transaction{Hash: hash(0x30), Transfers: map[blockdata.Hash32]int64{}}
	tl.subWallets.AddLockedTransaction(locked)
	tl.client.Unknown = []blockdata.Hash32{hash(0x30)}

	tl.loop.reconcileLocked(context.Background())

	assert.Empty(t, tl.subWallets.LockedTransactions())
}

func TestReconcileLockedKeepsKnownTransactions(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	locked := blockdata.Transaction{Hash: hash(0x30), Transfers: map[blockdata.Hash32]int64{}}
	tl.subWallets.AddLockedTransaction(locked)

	tl.loop.reconcileLocked(context.Background())

	assert.Len(t, tl.subWallets.LockedTransactions(), 1)
}

func TestReconcileLockedNoOpWhenNothingLocked(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.loop.reconcileLocked(context.Background())
	assert.Empty(t, tl.subWallets.LockedTransactions())
}

func TestUpdateSyncStateEmitsSyncExactlyOnce(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.client.InfoResp = &daemon.InfoResult{NetworkHeight: 0}
	syncCh := tl.bus.SubscribeSync()

	tl.loop.updateSyncState(context.Background())
	_, ok := recvOrTimeout(t, syncCh)
	assert.True(t, ok)

	tl.loop.updateSyncState(context.Background())
	_, ok = recvOrTimeout(t, syncCh)
	assert.False(t, ok)
}

func TestUpdateSyncStateEmitsDesyncWhenFallingBehind(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.client.InfoResp = &daemon.InfoResult{NetworkHeight: 0}
	desyncCh := tl.bus.SubscribeDesync()

	tl.loop.updateSyncState(context.Background())

	tl.client.InfoResp = &daemon.InfoResult{NetworkHeight: 100}
	tl.loop.updateSyncState(context.Background())

	got, ok := recvOrTimeout(t, desyncCh)
	require.True(t, ok)
	assert.Equal(t, uint64(100), got.NetworkHeight)
}

func TestStartStopDoesNotPanic(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.loop.Start()
	tl.loop.Stop()
}

func TestSyncStatusReportsHeights(t *testing.T) {
	tl := newTestLoop(t, config.Default())
	tl.syncStatus.StoreBlockHash(7, hash(0x70))
	tl.client.InfoResp = &daemon.InfoResult{NetworkHeight: 20}

	tl.loop.updateSyncState(context.Background())

	wallet, network := tl.loop.SyncStatus()
	assert.Equal(t, uint64(7), wallet)
	assert.Equal(t, uint64(20), network)
}
