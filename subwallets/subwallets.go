// Package subwallets implements spec section 4.D: the SubWallets
// aggregate owning every SubWallet plus confirmed/locked transactions,
// tx-private-keys, and the view key. Per spec section 9's design note, a
// SubWallets<->SubWallet mutual back-reference is replaced with an arena
// (a slice of *subwallet.SubWallet) plus a publicSpendKey->index
// map, so SubWallet methods never need a pointer back to this aggregate;
// every operation that spans more than one subwallet lives here, grounded
// on waddrmgr.Manager's ownership of its scoped managers in
// waddrmgr/manager.go and on wtxmgr.Store's whole-store rollback in
// wtxmgr/tx.go's rollback family.
package subwallets

import (
	"fmt"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/subwallet"
)

// SubWallets owns every SubWallet belonging to one wallet, plus whole-
// wallet state: confirmed/locked transactions, the shared private view
// key, and per-transaction private keys.
type SubWallets struct {
	wallets []*subwallet.SubWallet
	index   map[blockdata.Hash32]int

	confirmedTxs []blockdata.Transaction
	lockedTxs    []blockdata.Transaction

	privateViewKey blockdata.Hash32
	txPrivateKeys  map[blockdata.Hash32]blockdata.Hash32

	isViewWallet bool
}

// New builds an empty SubWallets aggregate around the wallet's shared
// private view key.
func New(privateViewKey blockdata.Hash32, isViewWallet bool) *SubWallets {
	return &SubWallets{
		index:         make(map[blockdata.Hash32]int),
		txPrivateKeys: make(map[blockdata.Hash32]blockdata.Hash32),
		privateViewKey: privateViewKey,
		isViewWallet:   isViewWallet,
	}
}

// PrivateViewKey returns the wallet's shared view key.
func (s *SubWallets) PrivateViewKey() blockdata.Hash32 { return s.privateViewKey }

// IsViewWallet reports whether this wallet holds no private spend keys.
func (s *SubWallets) IsViewWallet() bool { return s.isViewWallet }

// AddSubWallet inserts a new subwallet, preserving creation order (element
// 0 is the primary subwallet). Returns an error if the public spend key is
// already known.
func (s *SubWallets) AddSubWallet(sw *subwallet.SubWallet) error {
	if _, exists := s.index[sw.PublicSpendKey]; exists {
		return fmt.Errorf("subwallets: public spend key %x already present", sw.PublicSpendKey)
	}
	s.index[sw.PublicSpendKey] = len(s.wallets)
	s.wallets = append(s.wallets, sw)
	return nil
}

// GetPrimarySubWallet returns the first-created subwallet. Calling this on
// a SubWallets with no subwallets is a programmer error (spec section
// 4.D): every wallet is created with at least a primary subwallet.
func (s *SubWallets) GetPrimarySubWallet() *subwallet.SubWallet {
	if len(s.wallets) == 0 {
		panic("subwallets: GetPrimarySubWallet called with no subwallets present")
	}
	return s.wallets[0]
}

// Get returns the subwallet owning publicSpendKey, or nil.
func (s *SubWallets) Get(publicSpendKey blockdata.Hash32) *subwallet.SubWallet {
	idx, ok := s.index[publicSpendKey]
	if !ok {
		return nil
	}
	return s.wallets[idx]
}

// PublicSpendKeys returns every known public spend key in creation order.
func (s *SubWallets) PublicSpendKeys() []blockdata.Hash32 {
	keys := make([]blockdata.Hash32, len(s.wallets))
	for i, w := range s.wallets {
		keys[i] = w.PublicSpendKey
	}
	return keys
}

// All returns every subwallet in creation order. Callers must not mutate
// the returned slice's backing array.
func (s *SubWallets) All() []*subwallet.SubWallet {
	return s.wallets
}

// StoreInput appends a newly recognized output to the subwallet owning
// publicSpendKey. Calling this with a public spend key unknown to this
// aggregate is a programmer error: the synchronizer only ever names keys
// it got from this same aggregate.
func (s *SubWallets) StoreInput(publicSpendKey blockdata.Hash32, input blockdata.ReceivedInput) {
	sw := s.Get(publicSpendKey)
	if sw == nil {
		panic(fmt.Sprintf("subwallets: StoreInput: unknown public spend key %x", publicSpendKey))
	}
	sw.StoreInput(input)
}

// StoreUnconfirmedIncomingInput records an expected incoming input (such
// as the change of a locally sent transaction) in the LockedInputs of the
// subwallet owning publicSpendKey. Calling this with a public spend key
// unknown to this aggregate is a programmer error.
func (s *SubWallets) StoreUnconfirmedIncomingInput(publicSpendKey blockdata.Hash32, input blockdata.UnconfirmedInput) {
	sw := s.Get(publicSpendKey)
	if sw == nil {
		panic(fmt.Sprintf("subwallets: StoreUnconfirmedIncomingInput: unknown public spend key %x", publicSpendKey))
	}
	sw.LockedInputs = append(sw.LockedInputs, input)
}

// MarkInputAsSpent marks the input with keyImage, owned by publicSpendKey,
// as spent at spendHeight. Calling this with a public spend key this
// aggregate does not hold, or a key image none of that subwallet's inputs
// carries, is a programmer error: the synchronizer only ever names keys and images it
// obtained from GetKeyImageOwner against this same aggregate.
func (s *SubWallets) MarkInputAsSpent(publicSpendKey, keyImage blockdata.Hash32, spendHeight uint64) {
	sw := s.Get(publicSpendKey)
	if sw == nil {
		panic(fmt.Sprintf("subwallets: MarkInputAsSpent: unknown public spend key %x", publicSpendKey))
	}
	if err := sw.MarkInputAsSpent(keyImage, spendHeight); err != nil {
		panic(fmt.Sprintf("subwallets: MarkInputAsSpent: %v", err))
	}
}

// GetKeyImageOwner reports whether any subwallet owns keyImage, and if so,
// which public spend key. View wallets never own key images (spec section
// 4.D) since they store only the zero sentinel.
func (s *SubWallets) GetKeyImageOwner(keyImage blockdata.Hash32) (found bool, publicSpendKey blockdata.Hash32) {
	if s.isViewWallet {
		return false, publicSpendKey
	}
	for _, sw := range s.wallets {
		if sw.HasKeyImage(keyImage) {
			return true, sw.PublicSpendKey
		}
	}
	return false, publicSpendKey
}

// AddTransaction records a newly synthesized Transaction. If a locked
// (unconfirmed) transaction with the same hash is present it is first
// removed (promotion to confirmed); adding a transaction whose hash is
// already confirmed is a programmer error (a hash is confirmed at most
// once).
func (s *SubWallets) AddTransaction(tx blockdata.Transaction) {
	for _, t := range s.confirmedTxs {
		if t.Hash == tx.Hash {
			panic(fmt.Sprintf("subwallets: AddTransaction: %x already confirmed", tx.Hash))
		}
	}
	for i, t := range s.lockedTxs {
		if t.Hash == tx.Hash {
			s.lockedTxs = append(s.lockedTxs[:i], s.lockedTxs[i+1:]...)
			break
		}
	}
	s.confirmedTxs = append(s.confirmedTxs, tx)
}

// AddLockedTransaction records a locally issued send that has not yet been
// observed on-chain.
func (s *SubWallets) AddLockedTransaction(tx blockdata.Transaction) {
	s.lockedTxs = append(s.lockedTxs, tx)
}

// ConfirmedTransactions returns every confirmed transaction.
func (s *SubWallets) ConfirmedTransactions() []blockdata.Transaction { return s.confirmedTxs }

// LockedTransactions returns every locked (unconfirmed) transaction.
func (s *SubWallets) LockedTransactions() []blockdata.Transaction { return s.lockedTxs }

// RemoveCancelledTransaction removes hash from the locked set and tells
// every subwallet to drop matching unconfirmed change inputs.
func (s *SubWallets) RemoveCancelledTransaction(hash blockdata.Hash32) {
	for i, t := range s.lockedTxs {
		if t.Hash == hash {
			s.lockedTxs = append(s.lockedTxs[:i], s.lockedTxs[i+1:]...)
			break
		}
	}
	for _, sw := range s.wallets {
		sw.RemoveCancelledTransaction(hash)
	}
}

// RemoveForkedTransactions drops confirmed transactions at or after
// forkHeight and applies the per-subwallet input reorg. Locked
// (unconfirmed) transactions are untouched (spec section 4.D).
func (s *SubWallets) RemoveForkedTransactions(forkHeight uint64) {
	kept := s.confirmedTxs[:0]
	for _, t := range s.confirmedTxs {
		if t.BlockHeight < forkHeight {
			kept = append(kept, t)
		}
	}
	s.confirmedTxs = kept

	for _, sw := range s.wallets {
		sw.RemoveForkedTransactions(forkHeight)
	}
}

// GetBalance sums balances across subset (or every subwallet if subset is
// nil), classifying each input as locked or unlocked with threshold
// (config.Config.UnlockTimeAsBlockHeightThreshold; pass
// blockdata.UnlockTimeAsBlockHeightThreshold for the compiled-in default).
// An unknown key in subset is a programmer error.
func (s *SubWallets) GetBalance(currentHeight, threshold uint64, subset []blockdata.Hash32) (unlocked, locked uint64) {
	wallets := s.wallets
	if subset != nil {
		wallets = make([]*subwallet.SubWallet, len(subset))
		for i, k := range subset {
			sw := s.Get(k)
			if sw == nil {
				panic(fmt.Sprintf("subwallets: GetBalance: unknown public spend key %x in subset", k))
			}
			wallets[i] = sw
		}
	}
	for _, sw := range wallets {
		u, l := sw.GetBalanceWithThreshold(currentHeight, threshold)
		unlocked += u
		locked += l
	}
	return unlocked, locked
}

// StoreTxPrivateKey records the one-time transaction private key used for
// a locally issued send's tx public key, keyed by transaction hash.
func (s *SubWallets) StoreTxPrivateKey(txHash, txPrivateKey blockdata.Hash32) {
	s.txPrivateKeys[txHash] = txPrivateKey
}

// GetTxPrivateKey looks up a stored transaction private key.
func (s *SubWallets) GetTxPrivateKey(txHash blockdata.Hash32) (blockdata.Hash32, bool) {
	k, ok := s.txPrivateKeys[txHash]
	return k, ok
}

// TxPrivateKeys returns every stored (txHash, txPrivateKey) pair.
func (s *SubWallets) TxPrivateKeys() map[blockdata.Hash32]blockdata.Hash32 {
	return s.txPrivateKeys
}
