package syncstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcwallet/walletlib/blockdata"
)

func hash(b byte) blockdata.Hash32 {
	var h blockdata.Hash32
	h[0] = b
	return h
}

func TestNewAnchorsStartHeightAndTimestamp(t *testing.T) {
	s := New(100, 555)
	assert.Equal(t, uint64(100), s.StartHeight())
	assert.Equal(t, uint64(555), s.StartTimestamp())
	assert.Zero(t, s.LastKnownBlockHeight())
}

func TestStoreBlockHashUpdatesTipAndDenseWindow(t *testing.T) {
	s := New(0, 0)
	s.StoreBlockHash(1, hash(0x01))
	s.StoreBlockHash(2, hash(0x02))

	assert.Equal(t, uint64(2), s.LastKnownBlockHeight())
	require.Len(t, s.LastKnownBlockHashes(), 2)
	// newest first
	assert.Equal(t, hash(0x02), s.LastKnownBlockHashes()[0])
	assert.Equal(t, hash(0x01), s.LastKnownBlockHashes()[1])
}

func TestStoreBlockHashCapsDenseWindowSize(t *testing.T) {
	s := NewWithConfig(0, 0, 3, DefaultBlockHashCheckpointsInterval, DefaultMaxBlockHashCheckpoints)
	for i := byte(1); i <= 5; i++ {
		s.StoreBlockHash(uint64(i), hash(i))
	}

	hashes := s.LastKnownBlockHashes()
	require.Len(t, hashes, 3)
	assert.Equal(t, hash(5), hashes[0])
	assert.Equal(t, hash(3), hashes[2])
}

func TestStoreBlockHashOnlyCheckpointsOnInterval(t *testing.T) {
	s := NewWithConfig(0, 0, DefaultLastKnownBlockHashesSize, 10, DefaultMaxBlockHashCheckpoints)
	s.StoreBlockHash(5, hash(0x05))
	assert.Empty(t, s.BlockHashCheckpoints())

	s.StoreBlockHash(10, hash(0x0A))
	require.Len(t, s.BlockHashCheckpoints(), 1)
	assert.Equal(t, hash(0x0A), s.BlockHashCheckpoints()[0])
}

func TestStoreBlockHashCapsCheckpointCount(t *testing.T) {
	s := NewWithConfig(0, 0, DefaultLastKnownBlockHashesSize, 10, 2)
	s.StoreBlockHash(10, hash(1))
	s.StoreBlockHash(20, hash(2))
	s.StoreBlockHash(30, hash(3))

	checkpoints := s.BlockHashCheckpoints()
	require.Len(t, checkpoints, 2)
	assert.Equal(t, hash(3), checkpoints[0])
	assert.Equal(t, hash(2), checkpoints[1])
}

func TestStoreBlockHashCheckpointIntervalZeroNeverCheckpoints(t *testing.T) {
	s := NewWithConfig(0, 0, DefaultLastKnownBlockHashesSize, 0, DefaultMaxBlockHashCheckpoints)
	s.StoreBlockHash(0, hash(0))
	s.StoreBlockHash(100, hash(1))
	assert.Empty(t, s.BlockHashCheckpoints())
}

func TestGetBlockCheckpointsOrdersSparseBeforeDense(t *testing.T) {
	s := NewWithConfig(0, 0, DefaultLastKnownBlockHashesSize, 5, DefaultMaxBlockHashCheckpoints)
	s.StoreBlockHash(5, hash(0xAA))
	s.StoreBlockHash(6, hash(0xBB))

	all := s.GetBlockCheckpoints()
	require.Len(t, all, 3)
	assert.Equal(t, hash(0xAA), all[0])
	assert.Equal(t, hash(0xBB), all[1])
	assert.Equal(t, hash(0xAA), all[2])
}

func TestRestoreReplacesState(t *testing.T) {
	s := New(0, 0)
	s.StoreBlockHash(1, hash(0x01))

	checkpoints := []blockdata.Hash32{hash(0x10)}
	recent := []blockdata.Hash32{hash(0x20), hash(0x21)}
	s.Restore(checkpoints, recent, 999)

	assert.Equal(t, checkpoints, s.BlockHashCheckpoints())
	assert.Equal(t, recent, s.LastKnownBlockHashes())
	assert.Equal(t, uint64(999), s.LastKnownBlockHeight())
}

func TestResetToHeightDropsHashesFromForkAndLowersTip(t *testing.T) {
	s := New(0, 0)
	s.StoreBlockHash(100, hash(1))
	s.StoreBlockHash(101, hash(2))

	s.ResetToHeight(101)
	assert.Equal(t, []blockdata.Hash32{hash(1)}, s.LastKnownBlockHashes())
	assert.Equal(t, uint64(100), s.LastKnownBlockHeight())
}

func TestResetToHeightZeroResetsTipToZero(t *testing.T) {
	s := New(0, 0)
	s.StoreBlockHash(5, hash(1))

	s.ResetToHeight(0)
	assert.Zero(t, s.LastKnownBlockHeight())
}
