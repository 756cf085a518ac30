// Package walletbackend implements spec section 4.H: the facade a
// consuming application drives. It owns the MainLoop handle and the
// event bus, exposes the lifecycle entry points that create or restore a
// wallet's key material, and exposes the read surface named in spec
// section 5 ("Read surface"). Grounded on this codebase's wallet.Loader
// (walletsetup.go's createWallet, wallet.NewLoader/CreateNewWallet):
// one type owning "how a wallet comes into existence" and "how it is
// driven once it exists", generalized from this codebase's HD-keystore
// creation story to this system's flat SubWallets/CryptoOps model.
package walletbackend

import (
	"context"
	"fmt"
	"time"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
	"github.com/tcwallet/walletlib/eventbus"
	"github.com/tcwallet/walletlib/mainloop"
	"github.com/tcwallet/walletlib/subwallet"
	"github.com/tcwallet/walletlib/subwallets"
	"github.com/tcwallet/walletlib/synchronizer"
	"github.com/tcwallet/walletlib/syncstatus"
	"github.com/tcwallet/walletlib/walleterr"
	"github.com/tcwallet/walletlib/walletdb"
)

// creationTimestampDrift backs off a freshly created wallet's scan start
// to tolerate clock skew between the wallet host and the daemon it syncs
// against (spec section 4.H, "create").
const creationTimestampDrift = 5 * time.Minute

// WalletBackend is the facade wiring CryptoOps, a DaemonClient, the
// synchronization core, and persistence into one driveable wallet.
type WalletBackend struct {
	ops        cryptonote.Ops
	client     daemon.Client
	cfg        config.Config
	subWallets *subwallets.SubWallets
	syncStatus *syncstatus.SynchronizationStatus
	bus        *eventbus.Bus
	loop       *mainloop.MainLoop
	store      *walletdb.Store
}

// Create generates a fresh deterministic key pair and returns a running
// WalletBackend scanning from the chain tip (spec section 4.H, "create").
func Create(ops cryptonote.Ops, client daemon.Client, cfg config.Config) (*WalletBackend, error) {
	publicSpend, privateSpend, err := ops.GenerateKeyPair()
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidKey, err)
	}
	publicView, privateView, err := ops.GenerateKeyPair()
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidKey, err)
	}
	address, err := ops.EncodeAddress(publicSpend, publicView, "")
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrAddressNotValid, err)
	}

	creationTimestamp := uint64(time.Now().Add(-creationTimestampDrift).Unix())

	primary := subwallet.New(address, publicSpend, &privateSpend, 0, creationTimestamp)
	return newFromPrimary(ops, client, cfg, privateView, false, primary)
}

// ImportFromSeed derives a key pair from a 25-word mnemonic and scans
// from the caller-supplied height (spec section 4.H, "importFromSeed").
func ImportFromSeed(ops cryptonote.Ops, client daemon.Client, cfg config.Config, words []string, scanHeight uint64) (*WalletBackend, error) {
	privateSpend, err := ops.MnemonicToPrivateKey(words)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidMnemonic, err)
	}
	return importFromSpendKey(ops, client, cfg, privateSpend, scanHeight)
}

// ImportFromKeys builds a wallet directly from a raw private spend key,
// analogous to ImportFromSeed (spec section 4.H, "importFromKeys").
func ImportFromKeys(ops cryptonote.Ops, client daemon.Client, cfg config.Config, privateSpend blockdata.Hash32, scanHeight uint64) (*WalletBackend, error) {
	return importFromSpendKey(ops, client, cfg, privateSpend, scanHeight)
}

func importFromSpendKey(ops cryptonote.Ops, client daemon.Client, cfg config.Config, privateSpend blockdata.Hash32, scanHeight uint64) (*WalletBackend, error) {
	publicSpend, err := ops.PrivateKeyToPublicKey(privateSpend)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidKey, err)
	}
	_, privateView, err := ops.GenerateKeyPair()
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidKey, err)
	}
	publicView, err := ops.PrivateKeyToPublicKey(privateView)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidKey, err)
	}
	address, err := ops.EncodeAddress(publicSpend, publicView, "")
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrAddressNotValid, err)
	}

	primary := subwallet.New(address, publicSpend, &privateSpend, scanHeight, 0)
	return newFromPrimary(ops, client, cfg, privateView, false, primary)
}

// ImportViewWallet builds a view-only wallet: it can recognize incoming
// outputs but never computes real key images, so it cannot detect spends
// (spec section 4.H, "importViewWallet"; spec section 3, "SubWallet").
func ImportViewWallet(ops cryptonote.Ops, client daemon.Client, cfg config.Config, publicSpend, privateView blockdata.Hash32, address string, scanHeight uint64) (*WalletBackend, error) {
	primary := subwallet.New(address, publicSpend, nil, scanHeight, 0)
	return newFromPrimary(ops, client, cfg, privateView, true, primary)
}

func newFromPrimary(ops cryptonote.Ops, client daemon.Client, cfg config.Config, privateView blockdata.Hash32, isViewWallet bool, primary *subwallet.SubWallet) (*WalletBackend, error) {
	sw := subwallets.New(privateView, isViewWallet)
	if err := sw.AddSubWallet(primary); err != nil {
		return nil, err
	}
	status := syncstatus.NewWithConfig(primary.ScanHeight, primary.CreationTimestamp,
		cfg.LastKnownBlockHashesSize, cfg.BlockHashCheckpointsInterval, cfg.MaxBlockHashCheckpoints)

	return assemble(ops, client, cfg, sw, status, nil), nil
}

// OpenFromFile loads a previously saved wallet file at path (spec section
// 4.H, "openFromFile").
func OpenFromFile(ops cryptonote.Ops, client daemon.Client, cfg config.Config, path string) (*WalletBackend, error) {
	store, err := walletdb.Open(path)
	if err != nil {
		return nil, err
	}
	sw, status, err := store.Load()
	if err != nil {
		store.Close()
		return nil, err
	}
	return assemble(ops, client, cfg, sw, status, store), nil
}

// LoadFromJSON parses a wallet file's documented JSON shape without
// opening a backing store file, used by embedders that manage their own
// storage (spec section 4.H, "loadFromJSON").
func LoadFromJSON(ops cryptonote.Ops, client daemon.Client, cfg config.Config, data []byte) (*WalletBackend, error) {
	sw, status, err := walletdb.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return assemble(ops, client, cfg, sw, status, nil), nil
}

func assemble(ops cryptonote.Ops, client daemon.Client, cfg config.Config, sw *subwallets.SubWallets, status *syncstatus.SynchronizationStatus, store *walletdb.Store) *WalletBackend {
	bus := eventbus.New()
	sync := synchronizer.New(ops, sw, cfg.ScanCoinbase)
	loop := mainloop.New(client, ops, sw, status, sync, bus, cfg)

	return &WalletBackend{
		ops:        ops,
		client:     client,
		cfg:        cfg,
		subWallets: sw,
		syncStatus: status,
		bus:        bus,
		loop:       loop,
		store:      store,
	}
}

// Start begins the periodic synchronization scheduler.
func (w *WalletBackend) Start() {
	w.loop.Start()
}

// Stop cancels the scheduler and waits for it to exit.
func (w *WalletBackend) Stop() {
	w.loop.Stop()
}

// Events returns the event bus new subscribers should use.
func (w *WalletBackend) Events() *eventbus.Bus {
	return w.bus
}

// SaveToFile serializes the current wallet state to path, creating the
// backing store on first use (spec section 4.H, "saveToFile").
func (w *WalletBackend) SaveToFile(path string) error {
	store := w.store
	if store == nil {
		var err error
		store, err = walletdb.Open(path)
		if err != nil {
			return err
		}
		w.store = store
	}
	return store.Save(w.subWallets, w.syncStatus)
}

// ToJSON serializes the current wallet state to the documented JSON
// shape without touching a backing file, the embedder-managed-storage
// counterpart to SaveToFile.
func (w *WalletBackend) ToJSON() ([]byte, error) {
	return walletdb.Marshal(w.subWallets, w.syncStatus)
}

// Close releases the backing store file, if one is open.
func (w *WalletBackend) Close() error {
	if w.store == nil {
		return nil
	}
	return w.store.Close()
}

// GetSyncStatus returns (walletHeight, networkHeight), the read surface's
// getSyncStatus (spec section 5; daemonH is identical to networkH in this
// implementation since the primed daemon height IS the network height).
func (w *WalletBackend) GetSyncStatus() (walletHeight, networkHeight uint64) {
	return w.loop.SyncStatus()
}

// GetBalance sums balances over subset, or every subwallet if subset is
// nil (spec section 5, getBalance).
func (w *WalletBackend) GetBalance(subset []blockdata.Hash32) (unlocked, locked uint64) {
	walletHeight, _ := w.loop.SyncStatus()
	return w.subWallets.GetBalance(walletHeight, w.cfg.UnlockTimeAsBlockHeightThreshold, subset)
}

// GetNodeFee returns the daemon's recommended fee destination and amount
// (spec section 5, getNodeFee). A non-OK fee response surfaces as an
// error rather than a silently zeroed result.
func (w *WalletBackend) GetNodeFee(ctx context.Context) (address string, amount uint64, err error) {
	fee, err := w.client.Fee(ctx)
	if err != nil {
		return "", 0, walleterr.Wrap(walleterr.ErrDaemonOffline, err)
	}
	if !fee.OK() {
		return "", 0, fmt.Errorf("walletbackend: daemon fee status %q", fee.Status)
	}
	return fee.Address, fee.Amount, nil
}

// GetPrimaryAddress returns the first-created subwallet's address (spec
// section 5, getPrimaryAddress).
func (w *WalletBackend) GetPrimaryAddress() string {
	return w.subWallets.GetPrimarySubWallet().Address
}

// GetSpendKeys returns the (public, private) spend key pair for the
// subwallet owning address, or an error if no subwallet has it (spec
// section 5, getSpendKeys). A view-only subwallet has no private spend
// key: it returns a nil private key and a nil error.
func (w *WalletBackend) GetSpendKeys(address string) (publicSpendKey blockdata.Hash32, privateSpendKey *blockdata.Hash32, err error) {
	for _, sw := range w.subWallets.All() {
		if sw.Address == address {
			return sw.PublicSpendKey, sw.PrivateSpendKey, nil
		}
	}
	return blockdata.Hash32{}, nil, walleterr.New(walleterr.ErrAddressNotInWallet)
}

// GetMnemonicSeed returns the 25-word mnemonic seed for the subwallet
// owning address, defaulting to the primary subwallet when address is
// empty (spec section 5, getMnemonicSeed). A view-only subwallet has no
// private spend key to encode and returns ErrInvalidKey.
func (w *WalletBackend) GetMnemonicSeed(address string) ([]string, error) {
	sw := w.subWallets.GetPrimarySubWallet()
	if address != "" {
		found, _, err := w.GetSpendKeys(address)
		if err != nil {
			return nil, err
		}
		sw = w.subWallets.Get(found)
	}
	if sw.IsViewOnly() {
		return nil, walleterr.New(walleterr.ErrInvalidKey)
	}
	return w.ops.PrivateKeyToMnemonic(*sw.PrivateSpendKey)
}

// GetPrivateViewKey returns the wallet-wide private view key (spec
// section 5, getPrivateViewKey).
func (w *WalletBackend) GetPrivateViewKey() blockdata.Hash32 {
	return w.subWallets.PrivateViewKey()
}

// IsViewWallet reports whether this wallet holds no private spend keys.
func (w *WalletBackend) IsViewWallet() bool {
	return w.subWallets.IsViewWallet()
}

// IsFusionTransaction reports whether the confirmed transaction with the
// given hash is a fusion transaction, that is a zero-fee, non-coinbase
// transaction (blockdata.Transaction.Fusion), companion to GetBalance for
// a read-surface caller. It returns ErrTransactionNotFound for a hash
// that is not in the confirmed set.
func (w *WalletBackend) IsFusionTransaction(hash blockdata.Hash32) (bool, error) {
	for _, tx := range w.subWallets.ConfirmedTransactions() {
		if tx.Hash == hash {
			return tx.Fusion(), nil
		}
	}
	return false, walleterr.New(walleterr.ErrTransactionNotFound)
}

// IsTransactionConfirmed reports whether hash is in the confirmed
// transaction set, whether it got there straight from a block or by
// promotion from the locked set (spec section 4.G).
func (w *WalletBackend) IsTransactionConfirmed(hash blockdata.Hash32) bool {
	for _, tx := range w.subWallets.ConfirmedTransactions() {
		if tx.Hash == hash {
			return true
		}
	}
	return false
}
