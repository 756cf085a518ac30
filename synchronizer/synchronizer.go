// Package synchronizer implements spec section 4.F, the heart of the
// system: output recognition and spend recognition, turning one Block
// into the three change-lists MainLoop applies atomically to SubWallets.
// Grounded on wtxmgr.Store.InsertBlockAbeNew (wtxmgr/tx.go), which walks a
// block's transactions, recognizes owned outputs and consumed inputs, and
// updates balances and key-image state together — generalized here to
// return the changes as data rather than applying them directly, so
// MainLoop controls transactional application and reorg safety.
package synchronizer

import (
	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/subwallets"
)

// TransactionData is the atomic result of processing one block: the three
// lists spec section 4.F names, to be applied together to SubWallets.
type TransactionData struct {
	TransactionsToAdd    []blockdata.Transaction
	InputsToAdd          []InputToAdd
	KeyImagesToMarkSpent []KeyImageToMark
}

// InputToAdd pairs a newly recognized output with the subwallet that owns
// it.
type InputToAdd struct {
	PublicSpendKey blockdata.Hash32
	Input          blockdata.ReceivedInput
}

// KeyImageToMark pairs a spent key image with the subwallet that owned the
// output it spent.
type KeyImageToMark struct {
	PublicSpendKey blockdata.Hash32
	KeyImage       blockdata.Hash32
	SpendHeight    uint64
}

// WalletSynchronizer recognizes outputs and spends belonging to a
// SubWallets aggregate. It only reads from SubWallets; all mutation is
// applied by the caller via the returned TransactionData, keeping block
// processing and state mutation separately testable and reorg-safe.
type WalletSynchronizer struct {
	ops          cryptonote.Ops
	subWallets   *subwallets.SubWallets
	scanCoinbase bool
}

// New builds a WalletSynchronizer reading subwallet membership from
// subWallets and deriving outputs with ops. scanCoinbase mirrors spec
// section 6's scanCoinbase config option.
func New(ops cryptonote.Ops, subWallets *subwallets.SubWallets, scanCoinbase bool) *WalletSynchronizer {
	return &WalletSynchronizer{ops: ops, subWallets: subWallets, scanCoinbase: scanCoinbase}
}

// ProcessBlock implements spec section 4.F's output-recognition and
// spend-recognition algorithm for every transaction in block, in the
// daemon-provided order, with the coinbase transaction processed first so
// that same-block outputs precede any spend of them (spec section 4.F,
// "Chain invariants enforced").
func (w *WalletSynchronizer) ProcessBlock(block *blockdata.Block) (*TransactionData, error) {
	result := &TransactionData{}

	// Key images recognized earlier in this same block. SubWallets only
	// reflects state committed by a prior block (MainLoop defers mutation
	// until the whole block's TransactionData is returned), so a spend of
	// an output received earlier in this block would otherwise be missed:
	// the output is always processed first within a transaction, and
	// transactions are walked in the daemon-provided order, so this map
	// is populated in time for any later transaction that spends it (spec
	// section 4.F, "Chain invariants enforced").
	newOwners := make(map[blockdata.Hash32]blockdata.Hash32)

	for _, tx := range block.AllTxs() {
		if tx.IsCoinbase && !w.scanCoinbase {
			continue
		}

		txResult, err := w.processTransaction(block, tx, newOwners)
		if err != nil {
			// Output-recognition failures for a single transaction
			// are logged and the transaction skipped; block
			// processing continues (spec section 7).
			log.Warnf("skipping transaction %x in block %d: %v", tx.Hash, block.Height, err)
			continue
		}
		if txResult == nil {
			continue
		}
		for _, in := range txResult.inputs {
			// The all-zero sentinel is a view-only subwallet's
			// placeholder, never a spendable key image; recording it
			// here would let an unrelated zero-value input spend it
			// (view wallets never recognize spends, spec section
			// 4.D).
			if in.Input.KeyImage == cryptonote.ZeroKeyImage {
				continue
			}
			newOwners[in.Input.KeyImage] = in.PublicSpendKey
		}
		result.TransactionsToAdd = append(result.TransactionsToAdd, *txResult.tx)
		result.InputsToAdd = append(result.InputsToAdd, txResult.inputs...)
		result.KeyImagesToMarkSpent = append(result.KeyImagesToMarkSpent, txResult.spent...)
	}

	return result, nil
}

type transactionResult struct {
	tx     *blockdata.Transaction
	inputs []InputToAdd
	spent  []KeyImageToMark
}

func (w *WalletSynchronizer) processTransaction(block *blockdata.Block, tx blockdata.RawTx, newOwners map[blockdata.Hash32]blockdata.Hash32) (*transactionResult, error) {
	received := map[blockdata.Hash32]uint64{}
	spent := map[blockdata.Hash32]uint64{}
	var inputsToAdd []InputToAdd
	var keyImagesToMark []KeyImageToMark

	var totalOutputAmount uint64
	for _, o := range tx.Outputs {
		totalOutputAmount += o.Amount
	}

	if len(tx.Outputs) > 0 {
		derivation, err := w.ops.GenerateKeyDerivation(tx.TxPublicKey, w.subWallets.PrivateViewKey())
		if err != nil {
			return nil, err
		}

		for i, output := range tx.Outputs {
			derivedSpendKey, err := w.ops.UnderivePublicKey(derivation, i, output.Key)
			if err != nil {
				return nil, err
			}

			sw := w.subWallets.Get(derivedSpendKey)
			if sw == nil {
				continue
			}

			keyImage, err := sw.GetTxInputKeyImage(w.ops, derivation, i)
			if err != nil {
				return nil, err
			}

			globalIndex := uint64(0)
			if output.GlobalIndex != nil {
				globalIndex = *output.GlobalIndex
			}

			input := blockdata.ReceivedInput{
				KeyImage:          keyImage,
				Amount:            output.Amount,
				BlockHeight:       block.Height,
				TxPublicKey:       tx.TxPublicKey,
				TransactionIndex:  i,
				GlobalOutputIndex: globalIndex,
				Key:               output.Key,
				SpendHeight:       0,
				UnlockTime:        tx.UnlockTime,
				ParentTxHash:      tx.Hash,
			}
			inputsToAdd = append(inputsToAdd, InputToAdd{PublicSpendKey: derivedSpendKey, Input: input})
			received[derivedSpendKey] += output.Amount
		}
	}

	var totalInputAmount uint64
	if !tx.IsCoinbase {
		for _, input := range tx.Inputs {
			totalInputAmount += input.Amount
			found, pk := w.subWallets.GetKeyImageOwner(input.KeyImage)
			if !found {
				pk, found = newOwners[input.KeyImage]
			}
			if !found {
				continue
			}
			keyImagesToMark = append(keyImagesToMark, KeyImageToMark{
				PublicSpendKey: pk,
				KeyImage:       input.KeyImage,
				SpendHeight:    block.Height,
			})
			spent[pk] += input.Amount
		}
	}

	if len(received) == 0 && len(spent) == 0 {
		return nil, nil
	}

	transfers := make(map[blockdata.Hash32]int64, len(received)+len(spent))
	for pk, amt := range received {
		transfers[pk] += int64(amt)
	}
	for pk, amt := range spent {
		transfers[pk] -= int64(amt)
	}

	var fee uint64
	if !tx.IsCoinbase && totalInputAmount >= totalOutputAmount {
		fee = totalInputAmount - totalOutputAmount
	}

	synthesized := &blockdata.Transaction{
		Hash:        tx.Hash,
		Fee:         fee,
		BlockHeight: block.Height,
		Timestamp:   block.Timestamp,
		PaymentID:   tx.PaymentID,
		UnlockTime:  tx.UnlockTime,
		IsCoinbase:  tx.IsCoinbase,
		Transfers:   transfers,
	}

	return &transactionResult{tx: synthesized, inputs: inputsToAdd, spent: keyImagesToMark}, nil
}
