// Package mainloop implements spec section 4.G: the fetch -> enqueue ->
// process pipeline, sync/desync eventing, and cancellation. Grounded on
// wallet/rescan.go's rescanBatchHandler (a single goroutine serializing
// work requests and results over channels) and wallet/chainntfns.go's
// handleChainNotifications (the select loop reacting to chain events and
// applying them under walletdb.Update), generalized from a
// notification-driven model to a poll-on-a-fixed-interval model.
package mainloop

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/clock"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/eventbus"
	"github.com/tcwallet/walletlib/subwallets"
	"github.com/tcwallet/walletlib/synchronizer"
	"github.com/tcwallet/walletlib/syncstatus"
)

// MainLoop owns the periodic scheduler described in spec section 5: a
// single cooperative task that fetches blocks, processes a bounded number
// per tick, reconciles locked transactions, and emits sync/desync events.
// All mutation of SubWallets and SynchronizationStatus happens on this
// loop's goroutine.
type MainLoop struct {
	client       daemon.Client
	ops          cryptonote.Ops
	subWallets   *subwallets.SubWallets
	syncStatus   *syncstatus.SynchronizationStatus
	synchronizer *synchronizer.WalletSynchronizer
	bus          *eventbus.Bus
	cfg          config.Config
	clock        clock.Clock

	mu                sync.Mutex
	blocksToProcess   []blockdata.Block
	synced            bool
	networkBlockCount uint64
	fetchPaused       bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a MainLoop. The synchronizer must be built against the same
// subWallets instance passed here, since MainLoop is the sole writer that
// applies the synchronizer's output back into it.
func New(client daemon.Client, ops cryptonote.Ops, subWallets *subwallets.SubWallets, syncStatus *syncstatus.SynchronizationStatus, sync *synchronizer.WalletSynchronizer, bus *eventbus.Bus, cfg config.Config) *MainLoop {
	return &MainLoop{
		client:       client,
		ops:          ops,
		subWallets:   subWallets,
		syncStatus:   syncStatus,
		synchronizer: sync,
		bus:          bus,
		cfg:          cfg,
		clock:        clock.NewDefaultClock(),
	}
}

// SetClock overrides the time source driving the scheduler's tick and any
// timestamp reads, letting tests advance the loop deterministically
// instead of racing the wall clock, following subwallet.SubWallet's
// clock.Clock field (set via clock.NewDefaultClock() and overridden in
// tests).
func (m *MainLoop) SetClock(c clock.Clock) {
	m.clock = c
}

// Start primes daemon info and launches the periodic scheduler. It
// returns once the first info/fee priming attempt has completed (failures
// are logged and do not block startup, matching the main loop's "swallow
// transport failures" policy).
func (m *MainLoop) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.primeDaemonInfo(ctx)

	m.wg.Add(1)
	go m.run(ctx)
}

// Stop cancels the periodic task before its next tick and drops any
// unprocessed blocks. A subsequent Start resumes from the last committed
// SynchronizationStatus. It blocks until the loop goroutine has exited, so
// no in-flight fetch result is applied after Stop returns.
func (m *MainLoop) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	m.blocksToProcess = nil
	m.mu.Unlock()
}

func (m *MainLoop) run(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.clock.TickAfter(m.cfg.MainLoopInterval):
			m.tick(ctx)
		}
	}
}

// tick runs one scheduler iteration: fetch if below the low-water mark,
// process up to blocksPerTick queued blocks, reconcile locked
// transactions, then update sync/desync state.
func (m *MainLoop) tick(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	m.fetchStep(ctx)

	select {
	case <-ctx.Done():
		return
	default:
	}

	m.processStep(ctx)

	select {
	case <-ctx.Done():
		return
	default:
	}

	m.reconcileLocked(ctx)
	m.updateSyncState(ctx)
}

func (m *MainLoop) primeDaemonInfo(ctx context.Context) {
	info, err := m.client.Info(ctx)
	if err != nil {
		log.Errorf("failed to prime daemon info: %v", err)
		return
	}
	m.mu.Lock()
	m.networkBlockCount = info.NetworkHeight
	m.mu.Unlock()

	if _, err := m.client.Fee(ctx); err != nil {
		log.Errorf("failed to prime daemon fee info: %v", err)
	}
}

func (m *MainLoop) queueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blocksToProcess)
}

// fetchStep implements spec section 4.G's "Fetch step": ask the daemon for
// a batch anchored on our checkpoints, unless the queue is already at or
// above the high-water mark (spec section 9, bounded work queue).
func (m *MainLoop) fetchStep(ctx context.Context) {
	if m.queueLen() >= m.cfg.HighWaterMark {
		return
	}
	if m.queueLen() >= m.cfg.LowWaterMark {
		return
	}

	req := daemon.WalletSyncDataRequest{
		BlockHashCheckpoints: m.syncStatus.GetBlockCheckpoints(),
		StartHeight:          m.syncStatus.StartHeight(),
		StartTimestamp:       m.syncStatus.StartTimestamp(),
		BlockCount:           m.cfg.BlocksPerTick * 10,
	}

	reqCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	blocks, err := m.client.GetWalletSyncData(reqCtx, req)
	if err != nil {
		// Transport failures are swallowed after logging; the wallet
		// simply does not advance this tick (spec section 7).
		log.Debugf("getWalletSyncData failed: %v", err)
		return
	}
	if len(blocks) == 0 {
		return
	}

	if m.detectFork(blocks[0]) {
		return
	}

	m.mu.Lock()
	m.blocksToProcess = append(m.blocksToProcess, blocks...)
	m.mu.Unlock()
}

// detectFork implements spec section 4.F's reorg signal: if the first
// block of a freshly fetched batch doesn't chain from our known tip, a
// fork has occurred. Reorg handling rewinds SubWallets and
// SynchronizationStatus before the next fetch is attempted.
func (m *MainLoop) detectFork(first blockdata.Block) bool {
	if m.syncStatus.LastKnownBlockHeight() == 0 {
		return false
	}
	if first.Height == 0 {
		return false
	}
	expectedTip := m.syncStatus.LastKnownBlockHashes()
	if len(expectedTip) == 0 {
		return false
	}
	if first.Height > m.syncStatus.LastKnownBlockHeight()+1 {
		// Not contiguous with our tip; treat conservatively as a
		// fork at our recorded tip height rather than guessing.
		m.handleFork(m.syncStatus.LastKnownBlockHeight())
		return true
	}
	if first.Height <= m.syncStatus.LastKnownBlockHeight() {
		// The batch restarts at or below our tip: every block we hold
		// from first.Height upward has been replaced.
		m.handleFork(first.Height)
		return true
	}
	if first.PrevHash != expectedTip[0] {
		// The block right above our tip does not build on it, so our
		// tip block has been orphaned.
		m.handleFork(m.syncStatus.LastKnownBlockHeight())
		return true
	}
	return false
}

func (m *MainLoop) handleFork(forkHeight uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subWallets.RemoveForkedTransactions(forkHeight)
	m.syncStatus.ResetToHeight(forkHeight)
	m.blocksToProcess = nil
}

// processStep implements spec section 4.G's "Process step": pop up to
// blocksPerTick queued blocks in order and apply each one atomically.
func (m *MainLoop) processStep(ctx context.Context) {
	for i := 0; i < m.cfg.BlocksPerTick; i++ {
		m.mu.Lock()
		if len(m.blocksToProcess) == 0 {
			m.mu.Unlock()
			return
		}
		block := m.blocksToProcess[0]
		m.blocksToProcess = m.blocksToProcess[1:]
		m.mu.Unlock()

		m.fillMissingGlobalIndexes(ctx, &block)

		data, err := m.synchronizer.ProcessBlock(&block)
		if err != nil {
			log.Errorf("processBlock failed at height %d: %v", block.Height, err)
			continue
		}

		m.applyTransactionData(block, data)
	}
}

func (m *MainLoop) fillMissingGlobalIndexes(ctx context.Context, block *blockdata.Block) {
	needsIndexes := false
	for _, tx := range block.AllTxs() {
		for _, o := range tx.Outputs {
			if o.GlobalIndex == nil {
				needsIndexes = true
				break
			}
		}
		if needsIndexes {
			break
		}
	}
	if !needsIndexes {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	indexes, err := m.client.GetGlobalIndexesForRange(reqCtx, block.Height, block.Height+1)
	if err != nil {
		log.Debugf("getGlobalIndexesForRange failed for height %d: %v", block.Height, err)
		return
	}

	fillTx := func(tx *blockdata.RawTx) {
		idx, ok := indexes[tx.Hash]
		if !ok {
			return
		}
		for i := range tx.Outputs {
			if tx.Outputs[i].GlobalIndex == nil && i < len(idx) {
				v := idx[i]
				tx.Outputs[i].GlobalIndex = &v
			}
		}
	}
	fillTx(&block.CoinbaseTx)
	for i := range block.Txs {
		fillTx(&block.Txs[i])
	}
}

// applyTransactionData atomically applies one block's recognized changes
// to SubWallets, advances SynchronizationStatus, and emits events, in the
// order spec section 4.G's "Process step" (ii)-(v) names.
func (m *MainLoop) applyTransactionData(block blockdata.Block, data *synchronizer.TransactionData) {
	m.mu.Lock()

	for _, in := range data.InputsToAdd {
		m.subWallets.StoreInput(in.PublicSpendKey, in.Input)
	}
	for _, ki := range data.KeyImagesToMarkSpent {
		m.subWallets.MarkInputAsSpent(ki.PublicSpendKey, ki.KeyImage, ki.SpendHeight)
	}
	for _, tx := range data.TransactionsToAdd {
		m.subWallets.AddTransaction(tx)
	}

	m.syncStatus.StoreBlockHash(block.Height, block.Hash)

	m.mu.Unlock()

	for _, tx := range data.TransactionsToAdd {
		m.bus.EmitTransaction(tx)
	}
}

// reconcileLocked implements spec section 4.G's locked-transaction
// reconciliation: ask the daemon which locked transactions it has never
// heard of, and drop those from SubWallets.
func (m *MainLoop) reconcileLocked(ctx context.Context) {
	m.mu.Lock()
	locked := m.subWallets.LockedTransactions()
	if len(locked) == 0 {
		m.mu.Unlock()
		return
	}
	hashes := make([]blockdata.Hash32, len(locked))
	for i, tx := range locked {
		hashes[i] = tx.Hash
	}
	m.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	status, err := m.client.GetTransactionsStatus(reqCtx, hashes)
	if err != nil {
		log.Debugf("getTransactionsStatus failed: %v", err)
		return
	}

	m.mu.Lock()
	for _, h := range status.TransactionsUnknown {
		m.subWallets.RemoveCancelledTransaction(h)
	}
	m.mu.Unlock()
}

// updateSyncState implements spec section 4.G's sync/desync event rules.
func (m *MainLoop) updateSyncState(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	info, err := m.client.Info(reqCtx)
	if err != nil {
		log.Debugf("info failed during sync check: %v", err)
		return
	}

	m.mu.Lock()
	m.networkBlockCount = info.NetworkHeight
	w := m.syncStatus.LastKnownBlockHeight()
	n := m.networkBlockCount
	wasSynced := m.synced

	switch {
	case !wasSynced && w+1 >= n:
		m.synced = true
	case wasSynced && w+1 < n:
		m.synced = false
	}
	nowSynced := m.synced
	m.mu.Unlock()

	if !wasSynced && nowSynced {
		m.bus.EmitSync(w, n)
	} else if wasSynced && !nowSynced {
		m.bus.EmitDesync(w, n)
	}
}

// SyncStatus returns (walletHeight, networkHeight) for the read surface's
// getSyncStatus.
func (m *MainLoop) SyncStatus() (walletHeight, networkHeight uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncStatus.LastKnownBlockHeight(), m.networkBlockCount
}
