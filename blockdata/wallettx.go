package blockdata

// UnlockTimeAsBlockHeightThreshold is the dividing line between the two
// unlock-time semantics: values below it are interpreted as a block
// height, values at or above it as Unix seconds. See spec section 3,
// "unlockTime is overloaded".
const UnlockTimeAsBlockHeightThreshold = 500_000_000

// ReceivedInput is an output we recognized as belonging to one of our
// subwallets, stored until spent.
type ReceivedInput struct {
	KeyImage          Hash32
	Amount            uint64
	BlockHeight       uint64
	TxPublicKey       Hash32
	TransactionIndex  int
	GlobalOutputIndex uint64
	Key               Hash32
	SpendHeight       uint64 // 0 means unspent
	UnlockTime        uint64
	ParentTxHash      Hash32
}

// Unspent reports whether this input has not yet been marked spent.
func (r *ReceivedInput) Unspent() bool {
	return r.SpendHeight == 0
}

// UnconfirmedInput is change from a locally issued send, not yet observed
// on-chain. It has no key image yet because it does not exist as a chain
// output until the parent transaction confirms.
type UnconfirmedInput struct {
	Amount       uint64
	Key          Hash32
	ParentTxHash Hash32
}

// Transaction is the wallet-level view of an on-chain (or locked, not yet
// confirmed) transaction: a single record regardless of how many
// subwallets it touches, with one signed transfer amount per subwallet.
type Transaction struct {
	Hash        Hash32
	Fee         uint64
	BlockHeight uint64 // 0 while locked/unconfirmed
	Timestamp   uint64
	PaymentID   string
	UnlockTime  uint64
	IsCoinbase  bool
	Transfers   map[Hash32]int64 // publicSpendKey -> signed amount delta
}

// Fusion reports whether this is a zero-fee, non-coinbase self-transfer
// that consolidates outputs rather than a real payment.
func (t *Transaction) Fusion() bool {
	return t.Fee == 0 && !t.IsCoinbase
}

// NetAmount sums the signed transfers across all subwallets, i.e. the
// overall effect of this transaction on the wallet's total balance.
func (t *Transaction) NetAmount() int64 {
	var total int64
	for _, v := range t.Transfers {
		total += v
	}
	return total
}
