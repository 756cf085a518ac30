// Package subwallet implements spec section 4.C: a per-spend-key store of
// received outputs, spent state, and unconfirmed change, grounded on the
// per-address bookkeeping in waddrmgr/address.go and
// waddrmgr/managerabe.go (one owned key, its derived metadata, and the
// operations that mutate it) generalized to an output-discovery data
// model instead of waddrmgr's HD-chain address model.
package subwallet

import (
	"fmt"

	"github.com/lightningnetwork/lnd/clock"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/cryptonote"
)

// SubWallet is one (publicSpendKey, privateSpendKey?) address sharing the
// wallet's private view key. A nil PrivateSpendKey marks a view-only
// subwallet (spec section 3).
type SubWallet struct {
	Address            string
	PublicSpendKey      blockdata.Hash32
	PrivateSpendKey     *blockdata.Hash32
	ScanHeight          uint64
	CreationTimestamp   uint64
	Inputs              []blockdata.ReceivedInput
	LockedInputs        []blockdata.UnconfirmedInput
	KeyImages           map[blockdata.Hash32]struct{}

	clock clock.Clock
}

// New builds an empty SubWallet. Pass a nil privateSpendKey for a
// view-only subwallet.
func New(address string, publicSpendKey blockdata.Hash32, privateSpendKey *blockdata.Hash32, scanHeight, creationTimestamp uint64) *SubWallet {
	return &SubWallet{
		Address:           address,
		PublicSpendKey:    publicSpendKey,
		PrivateSpendKey:   privateSpendKey,
		ScanHeight:        scanHeight,
		CreationTimestamp: creationTimestamp,
		KeyImages:         make(map[blockdata.Hash32]struct{}),
		clock:             clock.NewDefaultClock(),
	}
}

// SetClock overrides the time source used by GetBalance's
// timestamp-denominated unlock check. Tests use this to pin "now" instead
// of racing the wall clock, following this codebase's wtxmgr.Store.clock
// field (set via clock.NewDefaultClock() and overridden in tests).
func (s *SubWallet) SetClock(c clock.Clock) {
	s.clock = c
}

// IsViewOnly reports whether this subwallet lacks a private spend key.
func (s *SubWallet) IsViewOnly() bool {
	return s.PrivateSpendKey == nil
}

// StoreInput appends a newly recognized output. The caller guarantees no
// duplicate (parentTxHash, transactionIndex) pair is stored twice.
func (s *SubWallet) StoreInput(input blockdata.ReceivedInput) {
	s.Inputs = append(s.Inputs, input)
	if !s.IsViewOnly() {
		s.KeyImages[input.KeyImage] = struct{}{}
	}
}

// MarkInputAsSpent finds the unique input with the given key image and
// sets its spend height. It is a programmer error to call this for a key
// image this subwallet does not own.
func (s *SubWallet) MarkInputAsSpent(keyImage blockdata.Hash32, spendHeight uint64) error {
	for i := range s.Inputs {
		if s.Inputs[i].KeyImage == keyImage {
			s.Inputs[i].SpendHeight = spendHeight
			return nil
		}
	}
	return fmt.Errorf("subwallet: no input with key image %x", keyImage)
}

// isInputUnlocked implements spec section 4.C's dual unlockTime semantics.
func (s *SubWallet) isInputUnlocked(unlockTime, currentHeight, threshold uint64) bool {
	if unlockTime < threshold {
		return currentHeight >= unlockTime
	}
	return uint64(s.clock.Now().Unix()) >= unlockTime
}

// GetBalance sums unspent inputs, partitioned into unlocked and locked by
// isInputUnlocked, using the default unlock-time-as-height threshold.
func (s *SubWallet) GetBalance(currentHeight uint64) (unlocked, locked uint64) {
	return s.GetBalanceWithThreshold(currentHeight, blockdata.UnlockTimeAsBlockHeightThreshold)
}

// GetBalanceWithThreshold is GetBalance with an explicit threshold,
// allowing config.UnlockTimeAsBlockHeightThreshold to override the
// compiled-in default.
func (s *SubWallet) GetBalanceWithThreshold(currentHeight, threshold uint64) (unlocked, locked uint64) {
	for _, in := range s.Inputs {
		if !in.Unspent() {
			continue
		}
		if s.isInputUnlocked(in.UnlockTime, currentHeight, threshold) {
			unlocked += in.Amount
		} else {
			locked += in.Amount
		}
	}
	return unlocked, locked
}

// RemoveForkedTransactions drops every input introduced at or after
// forkHeight, and re-opens (spendHeight = 0) any surviving input whose
// spend happened at or after forkHeight, per spec section 4.C.
func (s *SubWallet) RemoveForkedTransactions(forkHeight uint64) {
	kept := s.Inputs[:0]
	for _, in := range s.Inputs {
		if in.BlockHeight >= forkHeight {
			delete(s.KeyImages, in.KeyImage)
			continue
		}
		if in.SpendHeight >= forkHeight && in.SpendHeight != 0 {
			in.SpendHeight = 0
		}
		kept = append(kept, in)
	}
	s.Inputs = kept
}

// RemoveCancelledTransaction drops locked unconfirmed inputs whose parent
// transaction hash matches hash.
func (s *SubWallet) RemoveCancelledTransaction(hash blockdata.Hash32) {
	kept := s.LockedInputs[:0]
	for _, in := range s.LockedInputs {
		if in.ParentTxHash != hash {
			kept = append(kept, in)
		}
	}
	s.LockedInputs = kept
}

// ConvertSyncTimestampToHeight replaces a timestamp-denominated creation
// marker with a height-denominated one once a synced height is known for
// that timestamp, per spec section 4.C.
func (s *SubWallet) ConvertSyncTimestampToHeight(timestamp, height uint64) {
	if s.CreationTimestamp == timestamp {
		s.CreationTimestamp = 0
		s.ScanHeight = height
	}
}

// HasKeyImage reports set-membership of a key image among this
// subwallet's owned inputs.
func (s *SubWallet) HasKeyImage(keyImage blockdata.Hash32) bool {
	_, ok := s.KeyImages[keyImage]
	return ok
}

// GetTxInputKeyImage computes the key image for an output at outputIndex
// under the given derivation, delegating to CryptoOps with this
// subwallet's private spend key. View-only subwallets return the
// all-zero sentinel (spec section 3: "its stored key images are all
// zero-bytes").
func (s *SubWallet) GetTxInputKeyImage(ops cryptonote.Ops, derivation blockdata.Hash32, outputIndex int) (blockdata.Hash32, error) {
	if s.IsViewOnly() {
		return cryptonote.ZeroKeyImage, nil
	}
	return ops.GenerateKeyImage(s.PublicSpendKey, *s.PrivateSpendKey, derivation, outputIndex)
}
