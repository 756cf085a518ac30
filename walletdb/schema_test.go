package walletdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/subwallet"
	"github.com/tcwallet/walletlib/subwallets"
	"github.com/tcwallet/walletlib/syncstatus"
)

func hash(b byte) blockdata.Hash32 {
	var h blockdata.Hash32
	h[0] = b
	return h
}

func buildSampleWallet(t *testing.T) (*subwallets.SubWallets, *syncstatus.SynchronizationStatus) {
	t.Helper()

	sw := subwallets.New(hash(0xAA), false)

	privSpend := hash(0x01)
	primary := subwallet.New("addr-primary", hash(0x02), &privSpend, 1000, 0)
	primary.StoreInput(blockdata.ReceivedInput{
		KeyImage:          hash(0x10),
		Amount:            500,
		BlockHeight:       1010,
		TxPublicKey:       hash(0x11),
		TransactionIndex:  0,
		GlobalOutputIndex: 42,
		Key:               hash(0x12),
		UnlockTime:        0,
		ParentTxHash:      hash(0x13),
	})
	require.NoError(t, sw.AddSubWallet(primary))

	tx := blockdata.Transaction{
		Hash:        hash(0x13),
		Fee:         10,
		BlockHeight: 1010,
		Timestamp:   1234,
		PaymentID:   "abc",
		IsCoinbase:  false,
		Transfers:   map[blockdata.Hash32]int64{hash(0x02): 500},
	}
	sw.AddTransaction(tx)

	locked := blockdata.Transaction{
		Hash:      hash(0x14),
		Transfers: map[blockdata.Hash32]int64{hash(0x02): -20},
	}
	sw.AddLockedTransaction(locked)
	sw.StoreTxPrivateKey(hash(0x14), hash(0x15))

	status := syncstatus.New(900, 111)
	status.StoreBlockHash(1010, hash(0x20))

	return sw, status
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	sw, status := buildSampleWallet(t)

	data, err := Marshal(sw, status)
	require.NoError(t, err)

	gotSW, gotStatus, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, sw.PrivateViewKey(), gotSW.PrivateViewKey())
	assert.Equal(t, sw.IsViewWallet(), gotSW.IsViewWallet())
	assert.Equal(t, sw.PublicSpendKeys(), gotSW.PublicSpendKeys())
	assert.Equal(t, sw.ConfirmedTransactions(), gotSW.ConfirmedTransactions())
	assert.Equal(t, sw.LockedTransactions(), gotSW.LockedTransactions())
	assert.Equal(t, sw.TxPrivateKeys(), gotSW.TxPrivateKeys())

	original := sw.GetPrimarySubWallet()
	restored := gotSW.GetPrimarySubWallet()
	assert.Equal(t, original.Address, restored.Address)
	assert.Equal(t, original.PublicSpendKey, restored.PublicSpendKey)
	assert.Equal(t, *original.PrivateSpendKey, *restored.PrivateSpendKey)
	assert.Equal(t, original.ScanHeight, restored.ScanHeight)
	assert.Equal(t, original.Inputs, restored.Inputs)

	assert.Equal(t, status.LastKnownBlockHeight(), gotStatus.LastKnownBlockHeight())
	assert.Equal(t, status.StartHeight(), gotStatus.StartHeight())
	assert.Equal(t, status.StartTimestamp(), gotStatus.StartTimestamp())
	assert.Equal(t, status.LastKnownBlockHashes(), gotStatus.LastKnownBlockHashes())
	assert.Equal(t, status.BlockHashCheckpoints(), gotStatus.BlockHashCheckpoints())
}

func TestUnmarshalRejectsUnknownVersion(t *testing.T) {
	_, _, err := Unmarshal([]byte(`{"walletFileFormatVersion": 99}`))
	assert.Error(t, err)
}

func TestUnmarshalRejectsMalformedJSON(t *testing.T) {
	_, _, err := Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func TestViewWalletRoundTripsAsViewOnly(t *testing.T) {
	sw := subwallets.New(hash(0xAA), true)
	view := subwallet.New("addr-view", hash(0x02), nil, 0, 500)
	require.NoError(t, sw.AddSubWallet(view))

	status := syncstatus.New(0, 500)

	data, err := Marshal(sw, status)
	require.NoError(t, err)

	gotSW, _, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, gotSW.IsViewWallet())
	assert.True(t, gotSW.GetPrimarySubWallet().IsViewOnly())
}
