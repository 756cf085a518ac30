package walletbackend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/config"
	"github.com/tcwallet/walletlib/cryptonote"
	"github.com/tcwallet/walletlib/daemon"
)

func newTestBackend(t *testing.T) *WalletBackend {
	t.Helper()
	ops := cryptonote.NewMock()
	client := daemon.NewMock()
	w, err := Create(ops, client, config.Default())
	require.NoError(t, err)
	return w
}

func TestCreateProducesScanFromZero(t *testing.T) {
	w := newTestBackend(t)
	assert.NotEmpty(t, w.GetPrimaryAddress())
	assert.False(t, w.IsViewWallet())

	unlocked, locked := w.GetBalance(nil)
	assert.Zero(t, unlocked)
	assert.Zero(t, locked)
}

func TestImportFromSeedIsDeterministic(t *testing.T) {
	ops := cryptonote.NewMock()
	client := daemon.NewMock()
	words := []string{"alpha", "bravo", "charlie"}

	w1, err := ImportFromSeed(ops, client, config.Default(), words, 500)
	require.NoError(t, err)
	w2, err := ImportFromSeed(ops, client, config.Default(), words, 500)
	require.NoError(t, err)

	assert.Equal(t, w1.GetPrimaryAddress(), w2.GetPrimaryAddress())
}

func TestImportViewWalletHasNoSpendKeys(t *testing.T) {
	ops := cryptonote.NewMock()
	client := daemon.NewMock()

	publicSpend, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	_, privateView, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	publicView, err := ops.PrivateKeyToPublicKey(privateView)
	require.NoError(t, err)
	address, err := ops.EncodeAddress(publicSpend, publicView, "")
	require.NoError(t, err)

	w, err := ImportViewWallet(ops, client, config.Default(), publicSpend, privateView, address, 0)
	require.NoError(t, err)
	assert.True(t, w.IsViewWallet())

	_, priv, err := w.GetSpendKeys(address)
	require.NoError(t, err)
	assert.Nil(t, priv)

	_, err = w.GetMnemonicSeed("")
	assert.Error(t, err)
}

func TestSaveToFileLoadFromFileRoundTrip(t *testing.T) {
	w := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "wallet.db")
	require.NoError(t, w.SaveToFile(path))
	require.NoError(t, w.Close())

	ops := cryptonote.NewMock()
	client := daemon.NewMock()
	reopened, err := OpenFromFile(ops, client, config.Default(), path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, w.GetPrimaryAddress(), reopened.GetPrimaryAddress())
	assert.Equal(t, w.GetPrivateViewKey(), reopened.GetPrivateViewKey())
}

func TestToJSONLoadFromJSONRoundTrip(t *testing.T) {
	w := newTestBackend(t)
	data, err := w.ToJSON()
	require.NoError(t, err)

	ops := cryptonote.NewMock()
	client := daemon.NewMock()
	reloaded, err := LoadFromJSON(ops, client, config.Default(), data)
	require.NoError(t, err)

	assert.Equal(t, w.GetPrimaryAddress(), reloaded.GetPrimaryAddress())
}

func TestGetNodeFeeRejectsNonOKStatus(t *testing.T) {
	ops := cryptonote.NewMock()
	client := daemon.NewMock()
	client.FeeResp.Status = "FAILED"

	w, err := Create(ops, client, config.Default())
	require.NoError(t, err)

	_, _, err = w.GetNodeFee(context.Background())
	assert.Error(t, err)
}

func TestGetSpendKeysUnknownAddress(t *testing.T) {
	w := newTestBackend(t)
	_, _, err := w.GetSpendKeys("not-an-address")
	assert.Error(t, err)
}

func TestStartStopDoesNotPanic(t *testing.T) {
	w := newTestBackend(t)
	w.Start()
	w.Stop()
}

func TestIsTransactionConfirmedAndFusion(t *testing.T) {
	w := newTestBackend(t)
	hash := blockdata.Hash32{1, 2, 3}

	confirmed, err := w.IsFusionTransaction(hash)
	assert.Error(t, err)
	assert.False(t, confirmed)
	assert.False(t, w.IsTransactionConfirmed(hash))

	w.subWallets.AddTransaction(blockdata.Transaction{
		Hash:        hash,
		BlockHeight: 10,
		IsCoinbase:  false,
		Fee:         0,
		Transfers:   map[blockdata.Hash32]int64{},
	})

	assert.True(t, w.IsTransactionConfirmed(hash))
	isFusion, err := w.IsFusionTransaction(hash)
	require.NoError(t, err)
	assert.True(t, isFusion)
}
