package blockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTxsPutsCoinbaseFirst(t *testing.T) {
	coinbase := RawTx{Hash: Hash32{0xC0}, IsCoinbase: true}
	standard := RawTx{Hash: Hash32{0x01}}
	block := &Block{CoinbaseTx: coinbase, Txs: []RawTx{standard}}

	all := block.AllTxs()
	require.Len(t, all, 2)
	assert.Equal(t, coinbase.Hash, all[0].Hash)
	assert.Equal(t, standard.Hash, all[1].Hash)
}

func TestAllTxsWithNoStandardTransactions(t *testing.T) {
	coinbase := RawTx{Hash: Hash32{0xC0}, IsCoinbase: true}
	block := &Block{CoinbaseTx: coinbase}

	all := block.AllTxs()
	require.Len(t, all, 1)
	assert.Equal(t, coinbase.Hash, all[0].Hash)
}

func TestReceivedInputUnspent(t *testing.T) {
	in := ReceivedInput{SpendHeight: 0}
	assert.True(t, in.Unspent())

	in.SpendHeight = 5
	assert.False(t, in.Unspent())
}

func TestTransactionFusion(t *testing.T) {
	fusion := Transaction{Fee: 0, IsCoinbase: false}
	assert.True(t, fusion.Fusion())

	paid := Transaction{Fee: 10, IsCoinbase: false}
	assert.False(t, paid.Fusion())

	coinbase := Transaction{Fee: 0, IsCoinbase: true}
	assert.False(t, coinbase.Fusion())
}

func TestTransactionNetAmount(t *testing.T) {
	tx := Transaction{
		Transfers: map[Hash32]int64{
			{0x01}: 100,
			{0x02}: -30,
		},
	}
	assert.Equal(t, int64(70), tx.NetAmount())
}

func TestTransactionNetAmountEmptyTransfers(t *testing.T) {
	tx := Transaction{Transfers: map[Hash32]int64{}}
	assert.Zero(t, tx.NetAmount())
}
