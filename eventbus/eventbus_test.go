package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcwallet/walletlib/blockdata"
)

func recvOrTimeout[T any](t *testing.T, ch <-chan T) (T, bool) {
	t.Helper()
	select {
	case v := <-ch:
		return v, true
	case <-time.After(100 * time.Millisecond):
		var zero T
		return zero, false
	}
}

func TestEmitTransactionAlwaysReachesTransactionSubscriber(t *testing.T) {
	b := New()
	ch := b.SubscribeTransaction()

	tx := blockdata.Transaction{Hash: blockdata.Hash32{1}, Fee: 5, Transfers: map[blockdata.Hash32]int64{{1}: 10}}
	b.EmitTransaction(tx)

	got, ok := recvOrTimeout(t, ch)
	require.True(t, ok)
	assert.Equal(t, tx.Hash, got.Hash)
}

func TestEmitTransactionIncomingForPositiveNetAmount(t *testing.T) {
	b := New()
	incoming := b.SubscribeIncoming()
	outgoing := b.SubscribeOutgoing()
	fusion := b.SubscribeFusion()

	tx := blockdata.Transaction{Fee: 5, Transfers: map[blockdata.Hash32]int64{{1}: 100}}
	b.EmitTransaction(tx)

	_, ok := recvOrTimeout(t, incoming)
	assert.True(t, ok)
	_, ok = recvOrTimeout(t, outgoing)
	assert.False(t, ok)
	_, ok = recvOrTimeout(t, fusion)
	assert.False(t, ok)
}

func TestEmitTransactionOutgoingForNegativeNetAmount(t *testing.T) {
	b := New()
	outgoing := b.SubscribeOutgoing()

	tx := blockdata.Transaction{Fee: 5, Transfers: map[blockdata.Hash32]int64{{1}: -100}}
	b.EmitTransaction(tx)

	_, ok := recvOrTimeout(t, outgoing)
	assert.True(t, ok)
}

func TestEmitTransactionFusionTakesPriorityOverNetAmount(t *testing.T) {
	b := New()
	incoming := b.SubscribeIncoming()
	fusion := b.SubscribeFusion()

	tx := blockdata.Transaction{Fee: 0, IsCoinbase: false, Transfers: map[blockdata.Hash32]int64{{1}: 0}}
	b.EmitTransaction(tx)

	_, ok := recvOrTimeout(t, fusion)
	assert.True(t, ok)
	_, ok = recvOrTimeout(t, incoming)
	assert.False(t, ok)
}

func TestEmitTransactionCoinbaseIsIncomingNotFusion(t *testing.T) {
	b := New()
	incoming := b.SubscribeIncoming()
	fusion := b.SubscribeFusion()

	tx := blockdata.Transaction{Fee: 0, IsCoinbase: true, Transfers: map[blockdata.Hash32]int64{{1}: 50}}
	b.EmitTransaction(tx)

	_, ok := recvOrTimeout(t, incoming)
	assert.True(t, ok)
	_, ok = recvOrTimeout(t, fusion)
	assert.False(t, ok)
}

func TestEmitSyncAndDesync(t *testing.T) {
	b := New()
	sync := b.SubscribeSync()
	desync := b.SubscribeDesync()

	b.EmitSync(100, 100)
	got, ok := recvOrTimeout(t, sync)
	require.True(t, ok)
	assert.Equal(t, SyncEvent{WalletHeight: 100, NetworkHeight: 100}, got)

	b.EmitDesync(90, 100)
	got, ok = recvOrTimeout(t, desync)
	require.True(t, ok)
	assert.Equal(t, SyncEvent{WalletHeight: 90, NetworkHeight: 100}, got)
}

func TestBroadcastDropsWhenSubscriberBufferIsFull(t *testing.T) {
	b := New()
	ch := b.SubscribeTransaction()

	for i := 0; i < subscriberBuffer+10; i++ {
		b.EmitTransaction(blockdata.Transaction{Fee: 1, Transfers: map[blockdata.Hash32]int64{}})
	}

	assert.Len(t, ch, subscriberBuffer)
}
