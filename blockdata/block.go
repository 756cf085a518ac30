// Package blockdata defines the wire-level shapes a DaemonClient hands to
// the wallet synchronizer: blocks, raw transactions, and their inputs and
// outputs. These mirror this codebase's wtxmgr.BlockAbeRecord/TxRecordAbe
// shapes but are trimmed to what output-recognition needs, since block
// parsing and serialization is the daemon client's concern, not ours.
package blockdata

// Hash32 is a 32-byte hash: a block hash, transaction hash, key, or key
// image. Using a fixed-size array avoids hex-string allocation on hot
// lookup paths (SubWallets.GetKeyImageOwner runs per input per block).
type Hash32 [32]byte

// RawOutput is one output slot of a RawTx.
type RawOutput struct {
	Key         Hash32
	Amount      uint64
	GlobalIndex *uint64 // nil if the daemon didn't supply one for this block
}

// RawInput is one input slot of a RawTx (a spend of a prior output,
// identified by its key image; OutputOffsets is the CryptoNote ring of
// candidate prior outputs and is opaque to the wallet).
type RawInput struct {
	Amount        uint64
	KeyImage      Hash32
	OutputOffsets []uint64
}

// RawTx is a single on-chain transaction, coinbase or standard. Coinbase
// transactions carry no inputs and no payment ID; the tag is carried as a
// bool rather than a parallel type hierarchy (spec section 9 collapses a
// RawTransaction-extends-RawCoinbaseTransaction inheritance into this
// flat, pattern-matched shape).
type RawTx struct {
	Hash         Hash32
	TxPublicKey  Hash32
	UnlockTime   uint64
	Outputs      []RawOutput
	Inputs       []RawInput
	PaymentID    string // empty if none; coinbase txs never carry one
	IsCoinbase   bool
}

// Block is one block's worth of synchronization input: a coinbase
// transaction and zero or more standard transactions, in stable order.
type Block struct {
	Height     uint64
	Hash       Hash32
	Timestamp  uint64
	PrevHash   Hash32
	CoinbaseTx RawTx
	Txs        []RawTx
}

// AllTxs returns the coinbase transaction followed by the standard
// transactions, the order in which the synchronizer must process them so
// that, within a block, outputs are considered before any spend that
// consumes them (spec section 4.F "Chain invariants enforced").
func (b *Block) AllTxs() []RawTx {
	txs := make([]RawTx, 0, len(b.Txs)+1)
	txs = append(txs, b.CoinbaseTx)
	txs = append(txs, b.Txs...)
	return txs
}
