// Package walletdb implements the persisted wallet shape named in spec
// section 6, and the thin bbolt-backed file adapter behind
// WalletBackend's openFromFile/saveToFile. Wallet-file encryption is the
// out-of-scope persistence collaborator's concern (spec section 1); this
// package only guarantees the documented JSON shape round-trips exactly
// (spec section 8), storing that JSON as a single blob in a bbolt bucket,
// the same embedded-database engine this codebase uses for its address and
// transaction managers (wtxmgr/db.go, waddrmgr/db.go), reusing its
// "namespace bucket holding encoded records" shape at the coarsest
// possible grain.
package walletdb

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/subwallet"
	"github.com/tcwallet/walletlib/subwallets"
	"github.com/tcwallet/walletlib/syncstatus"
)

// WalletFileFormatVersion is the schema version stamped into every saved
// wallet file.
const WalletFileFormatVersion = 1

// FileJSON is the root of the persisted JSON shape (spec section 6,
// "Persisted JSON shape"). Field names are the stable, canonical contract.
type FileJSON struct {
	WalletFileFormatVersion int            `json:"walletFileFormatVersion"`
	SubWallets              SubWalletsJSON `json:"subWallets"`
	SynchronizationStatus   SyncStatusJSON `json:"synchronizationStatus"`
}

// SubWalletsJSON is the SubWallets aggregate's serialized shape.
type SubWalletsJSON struct {
	PublicSpendKeys   []string             `json:"publicSpendKeys"`
	SubWallet         []SubWalletJSON      `json:"subWallet"`
	Transactions      []TransactionJSON    `json:"transactions"`
	LockedTransactions []TransactionJSON   `json:"lockedTransactions"`
	PrivateViewKey    string               `json:"privateViewKey"`
	IsViewWallet      bool                 `json:"isViewWallet"`
	TxPrivateKeys     []TxPrivateKeyJSON   `json:"txPrivateKeys"`
}

// SubWalletJSON is one SubWallet's serialized shape.
type SubWalletJSON struct {
	PublicSpendKey    string              `json:"publicSpendKey"`
	Address           string              `json:"address"`
	ScanHeight        uint64              `json:"scanHeight"`
	CreationTimestamp uint64              `json:"creationTimestamp"`
	PrivateSpendKey   string              `json:"privateSpendKey"`
	Inputs            []ReceivedInputJSON `json:"inputs"`
	LockedInputs      []UnconfirmedInputJSON `json:"lockedInputs"`
	KeyImages         []string            `json:"keyImages"`
}

// ReceivedInputJSON is one SubWallet.Inputs entry.
type ReceivedInputJSON struct {
	KeyImage          string `json:"keyImage"`
	Amount            uint64 `json:"amount"`
	BlockHeight       uint64 `json:"blockHeight"`
	TxPublicKey       string `json:"txPublicKey"`
	TransactionIndex  int    `json:"transactionIndex"`
	GlobalOutputIndex uint64 `json:"globalOutputIndex"`
	Key               string `json:"key"`
	SpendHeight       uint64 `json:"spendHeight"`
	UnlockTime        uint64 `json:"unlockTime"`
	ParentTxHash      string `json:"parentTxHash"`
}

// UnconfirmedInputJSON is one SubWallet.LockedInputs entry.
type UnconfirmedInputJSON struct {
	Amount       uint64 `json:"amount"`
	Key          string `json:"key"`
	ParentTxHash string `json:"parentTxHash"`
}

// TransferJSON is one entry of TransactionJSON.Transfers.
type TransferJSON struct {
	PublicKey string `json:"publicKey"`
	Amount    int64  `json:"amount"`
}

// TransactionJSON is one Transaction's serialized shape.
type TransactionJSON struct {
	Hash        string         `json:"hash"`
	Fee         uint64         `json:"fee"`
	BlockHeight uint64         `json:"blockHeight"`
	Timestamp   uint64         `json:"timestamp"`
	PaymentID   string         `json:"paymentId"`
	UnlockTime  uint64         `json:"unlockTime"`
	IsCoinbase  bool           `json:"isCoinbase"`
	Transfers   []TransferJSON `json:"transfers"`
}

// TxPrivateKeyJSON is one SubWallets.txPrivateKeys entry.
type TxPrivateKeyJSON struct {
	TransactionHash string `json:"transactionHash"`
	TxPrivateKey    string `json:"txPrivateKey"`
}

// SyncStatusJSON is the SynchronizationStatus's serialized shape.
type SyncStatusJSON struct {
	BlockHashCheckpoints []string `json:"blockHashCheckpoints"`
	LastKnownBlockHashes []string `json:"lastKnownBlockHashes"`
	LastKnownBlockHeight uint64   `json:"lastKnownBlockHeight"`
	StartHeight          uint64   `json:"startHeight"`
	StartTimestamp       uint64   `json:"startTimestamp"`
}

func hashToHex(h blockdata.Hash32) string {
	return hex.EncodeToString(h[:])
}

func hexToHash(s string) (blockdata.Hash32, error) {
	var out blockdata.Hash32
	if s == "" {
		return out, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("walletdb: invalid 32-byte hex %q", s)
	}
	copy(out[:], b)
	return out, nil
}

func transactionToJSON(tx blockdata.Transaction) TransactionJSON {
	transfers := make([]TransferJSON, 0, len(tx.Transfers))
	for pk, amt := range tx.Transfers {
		transfers = append(transfers, TransferJSON{PublicKey: hashToHex(pk), Amount: amt})
	}
	return TransactionJSON{
		Hash:        hashToHex(tx.Hash),
		Fee:         tx.Fee,
		BlockHeight: tx.BlockHeight,
		Timestamp:   tx.Timestamp,
		PaymentID:   tx.PaymentID,
		UnlockTime:  tx.UnlockTime,
		IsCoinbase:  tx.IsCoinbase,
		Transfers:   transfers,
	}
}

func transactionFromJSON(tj TransactionJSON) (blockdata.Transaction, error) {
	hash, err := hexToHash(tj.Hash)
	if err != nil {
		return blockdata.Transaction{}, err
	}
	transfers := make(map[blockdata.Hash32]int64, len(tj.Transfers))
	for _, t := range tj.Transfers {
		pk, err := hexToHash(t.PublicKey)
		if err != nil {
			return blockdata.Transaction{}, err
		}
		transfers[pk] = t.Amount
	}
	return blockdata.Transaction{
		Hash:        hash,
		Fee:         tj.Fee,
		BlockHeight: tj.BlockHeight,
		Timestamp:   tj.Timestamp,
		PaymentID:   tj.PaymentID,
		UnlockTime:  tj.UnlockTime,
		IsCoinbase:  tj.IsCoinbase,
		Transfers:   transfers,
	}, nil
}

// Marshal serializes subWallets and syncStatus into the canonical JSON
// shape.
func Marshal(sw *subwallets.SubWallets, status *syncstatus.SynchronizationStatus) ([]byte, error) {
	doc := FileJSON{
		WalletFileFormatVersion: WalletFileFormatVersion,
		SubWallets:              subWalletsToJSON(sw),
		SynchronizationStatus:   syncStatusToJSON(status),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func subWalletsToJSON(sw *subwallets.SubWallets) SubWalletsJSON {
	keys := sw.PublicSpendKeys()
	pubKeys := make([]string, len(keys))
	for i, k := range keys {
		pubKeys[i] = hashToHex(k)
	}

	subWalletJSONs := make([]SubWalletJSON, 0, len(keys))
	for _, w := range sw.All() {
		subWalletJSONs = append(subWalletJSONs, subWalletToJSON(w))
	}

	txs := make([]TransactionJSON, 0, len(sw.ConfirmedTransactions()))
	for _, t := range sw.ConfirmedTransactions() {
		txs = append(txs, transactionToJSON(t))
	}
	locked := make([]TransactionJSON, 0, len(sw.LockedTransactions()))
	for _, t := range sw.LockedTransactions() {
		locked = append(locked, transactionToJSON(t))
	}

	txPrivKeys := make([]TxPrivateKeyJSON, 0, len(sw.TxPrivateKeys()))
	for hash, priv := range sw.TxPrivateKeys() {
		txPrivKeys = append(txPrivKeys, TxPrivateKeyJSON{
			TransactionHash: hashToHex(hash),
			TxPrivateKey:    hashToHex(priv),
		})
	}

	return SubWalletsJSON{
		PublicSpendKeys:    pubKeys,
		SubWallet:          subWalletJSONs,
		Transactions:       txs,
		LockedTransactions: locked,
		PrivateViewKey:     hashToHex(sw.PrivateViewKey()),
		IsViewWallet:       sw.IsViewWallet(),
		TxPrivateKeys:      txPrivKeys,
	}
}

func subWalletToJSON(w *subwallet.SubWallet) SubWalletJSON {
	inputs := make([]ReceivedInputJSON, len(w.Inputs))
	for i, in := range w.Inputs {
		inputs[i] = ReceivedInputJSON{
			KeyImage:          hashToHex(in.KeyImage),
			Amount:            in.Amount,
			BlockHeight:       in.BlockHeight,
			TxPublicKey:       hashToHex(in.TxPublicKey),
			TransactionIndex:  in.TransactionIndex,
			GlobalOutputIndex: in.GlobalOutputIndex,
			Key:               hashToHex(in.Key),
			SpendHeight:       in.SpendHeight,
			UnlockTime:        in.UnlockTime,
			ParentTxHash:      hashToHex(in.ParentTxHash),
		}
	}
	locked := make([]UnconfirmedInputJSON, len(w.LockedInputs))
	for i, in := range w.LockedInputs {
		locked[i] = UnconfirmedInputJSON{
			Amount:       in.Amount,
			Key:          hashToHex(in.Key),
			ParentTxHash: hashToHex(in.ParentTxHash),
		}
	}
	keyImages := make([]string, 0, len(w.KeyImages))
	for ki := range w.KeyImages {
		keyImages = append(keyImages, hashToHex(ki))
	}

	privateSpendKey := ""
	if w.PrivateSpendKey != nil {
		privateSpendKey = hashToHex(*w.PrivateSpendKey)
	}

	return SubWalletJSON{
		PublicSpendKey:    hashToHex(w.PublicSpendKey),
		Address:           w.Address,
		ScanHeight:        w.ScanHeight,
		CreationTimestamp: w.CreationTimestamp,
		PrivateSpendKey:   privateSpendKey,
		Inputs:            inputs,
		LockedInputs:      locked,
		KeyImages:         keyImages,
	}
}

func syncStatusToJSON(status *syncstatus.SynchronizationStatus) SyncStatusJSON {
	checkpoints := status.BlockHashCheckpoints()
	cps := make([]string, len(checkpoints))
	for i, h := range checkpoints {
		cps[i] = hashToHex(h)
	}
	recent := status.LastKnownBlockHashes()
	rec := make([]string, len(recent))
	for i, h := range recent {
		rec[i] = hashToHex(h)
	}
	return SyncStatusJSON{
		BlockHashCheckpoints: cps,
		LastKnownBlockHashes: rec,
		LastKnownBlockHeight: status.LastKnownBlockHeight(),
		StartHeight:          status.StartHeight(),
		StartTimestamp:       status.StartTimestamp(),
	}
}

// Unmarshal parses the canonical JSON shape back into a SubWallets
// aggregate and a SynchronizationStatus, the exact inverse of Marshal
// (spec section 8's round-trip law). Every field is validated explicitly
// rather than relying on dynamic revival (spec section 9's design note),
// failing with a descriptive error rather than producing malformed state.
func Unmarshal(data []byte) (*subwallets.SubWallets, *syncstatus.SynchronizationStatus, error) {
	var doc FileJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("walletdb: invalid wallet JSON: %w", err)
	}
	if doc.WalletFileFormatVersion != WalletFileFormatVersion {
		return nil, nil, fmt.Errorf("walletdb: unsupported wallet file format version %d", doc.WalletFileFormatVersion)
	}

	privateViewKey, err := hexToHash(doc.SubWallets.PrivateViewKey)
	if err != nil {
		return nil, nil, err
	}

	sw := subwallets.New(privateViewKey, doc.SubWallets.IsViewWallet)

	for _, wj := range doc.SubWallets.SubWallet {
		sub, err := subWalletFromJSON(wj)
		if err != nil {
			return nil, nil, err
		}
		if err := sw.AddSubWallet(sub); err != nil {
			return nil, nil, err
		}
	}

	for _, tj := range doc.SubWallets.Transactions {
		tx, err := transactionFromJSON(tj)
		if err != nil {
			return nil, nil, err
		}
		sw.AddTransaction(tx)
	}
	for _, tj := range doc.SubWallets.LockedTransactions {
		tx, err := transactionFromJSON(tj)
		if err != nil {
			return nil, nil, err
		}
		sw.AddLockedTransaction(tx)
	}
	for _, kj := range doc.SubWallets.TxPrivateKeys {
		hash, err := hexToHash(kj.TransactionHash)
		if err != nil {
			return nil, nil, err
		}
		priv, err := hexToHash(kj.TxPrivateKey)
		if err != nil {
			return nil, nil, err
		}
		sw.StoreTxPrivateKey(hash, priv)
	}

	status := syncstatus.New(doc.SynchronizationStatus.StartHeight, doc.SynchronizationStatus.StartTimestamp)
	if err := restoreSyncStatus(status, doc.SynchronizationStatus); err != nil {
		return nil, nil, err
	}

	return sw, status, nil
}

func subWalletFromJSON(wj SubWalletJSON) (*subwallet.SubWallet, error) {
	pub, err := hexToHash(wj.PublicSpendKey)
	if err != nil {
		return nil, err
	}
	var priv *blockdata.Hash32
	if wj.PrivateSpendKey != "" {
		p, err := hexToHash(wj.PrivateSpendKey)
		if err != nil {
			return nil, err
		}
		priv = &p
	}
	sub := subwallet.New(wj.Address, pub, priv, wj.ScanHeight, wj.CreationTimestamp)
	for _, ij := range wj.Inputs {
		ki, err := hexToHash(ij.KeyImage)
		if err != nil {
			return nil, err
		}
		txPub, err := hexToHash(ij.TxPublicKey)
		if err != nil {
			return nil, err
		}
		key, err := hexToHash(ij.Key)
		if err != nil {
			return nil, err
		}
		parent, err := hexToHash(ij.ParentTxHash)
		if err != nil {
			return nil, err
		}
		sub.StoreInput(blockdata.ReceivedInput{
			KeyImage:          ki,
			Amount:            ij.Amount,
			BlockHeight:       ij.BlockHeight,
			TxPublicKey:       txPub,
			TransactionIndex:  ij.TransactionIndex,
			GlobalOutputIndex: ij.GlobalOutputIndex,
			Key:               key,
			SpendHeight:       ij.SpendHeight,
			UnlockTime:        ij.UnlockTime,
			ParentTxHash:      parent,
		})
	}
	for _, lj := range wj.LockedInputs {
		key, err := hexToHash(lj.Key)
		if err != nil {
			return nil, err
		}
		parent, err := hexToHash(lj.ParentTxHash)
		if err != nil {
			return nil, err
		}
		sub.LockedInputs = append(sub.LockedInputs, blockdata.UnconfirmedInput{
			Amount:       lj.Amount,
			Key:          key,
			ParentTxHash: parent,
		})
	}
	// KeyImages is derived from Inputs above for non-view wallets; for
	// view wallets (whose inputs all carry the zero sentinel) explicit
	// keyImages are restored too so HasKeyImage still round-trips.
	if priv == nil {
		for _, kj := range wj.KeyImages {
			ki, err := hexToHash(kj)
			if err != nil {
				return nil, err
			}
			sub.KeyImages[ki] = struct{}{}
		}
	}
	return sub, nil
}

func restoreSyncStatus(status *syncstatus.SynchronizationStatus, sj SyncStatusJSON) error {
	// Replaying StoreBlockHash isn't possible without each hash's
	// original height, so the lists are restored directly. An empty list
	// comes back as nil, as it is in a SynchronizationStatus that has
	// stored nothing.
	var checkpoints []blockdata.Hash32
	for _, s := range sj.BlockHashCheckpoints {
		h, err := hexToHash(s)
		if err != nil {
			return err
		}
		checkpoints = append(checkpoints, h)
	}
	var recent []blockdata.Hash32
	for _, s := range sj.LastKnownBlockHashes {
		h, err := hexToHash(s)
		if err != nil {
			return err
		}
		recent = append(recent, h)
	}
	status.Restore(checkpoints, recent, sj.LastKnownBlockHeight)
	return nil
}
