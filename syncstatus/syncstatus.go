// Package syncstatus implements spec section 4.E: a rolling window of
// recently seen block hashes plus sparse long-range checkpoints, used to
// tell a remote daemon where to resume a wallet's chain scan and to detect
// reorgs. Grounded on waddrmgr.Manager's SyncedTo()/BlockStamp tip
// tracking (waddrmgr/manager.go), generalized from a single tip height to
// the dense-tail-plus-sparse-head checkpoint scheme the daemon RPC needs.
package syncstatus

import "github.com/tcwallet/walletlib/blockdata"

// DefaultLastKnownBlockHashesSize is the cap on the dense recent-hash
// window (spec section 6, lastKnownBlockHashesSize).
const DefaultLastKnownBlockHashesSize = 100

// DefaultBlockHashCheckpointsInterval is the stride, in blocks, between
// sparse checkpoints (spec section 6, blockHashCheckpointsInterval).
const DefaultBlockHashCheckpointsInterval = 5000

// DefaultMaxBlockHashCheckpoints caps the sparse checkpoint list (spec
// section 6, maxBlockHashCheckpoints).
const DefaultMaxBlockHashCheckpoints = 100

// SynchronizationStatus tracks where a wallet's chain scan has reached.
type SynchronizationStatus struct {
	lastKnownBlockHashes []blockdata.Hash32 // newest first
	blockHashCheckpoints []blockdata.Hash32 // newest first, sparse

	lastKnownBlockHeight uint64
	startHeight          uint64
	startTimestamp       uint64

	lastKnownBlockHashesSize     int
	blockHashCheckpointsInterval uint64
	maxBlockHashCheckpoints      int
}

// New builds a SynchronizationStatus anchored at (startHeight,
// startTimestamp), using the default tuning constants. Use
// NewWithConfig to override them.
func New(startHeight, startTimestamp uint64) *SynchronizationStatus {
	return NewWithConfig(startHeight, startTimestamp,
		DefaultLastKnownBlockHashesSize,
		DefaultBlockHashCheckpointsInterval,
		DefaultMaxBlockHashCheckpoints)
}

// NewWithConfig is New with explicit tuning constants, wired from
// config.Config.
func NewWithConfig(startHeight, startTimestamp uint64, lastKnownBlockHashesSize int, blockHashCheckpointsInterval uint64, maxBlockHashCheckpoints int) *SynchronizationStatus {
	return &SynchronizationStatus{
		startHeight:                  startHeight,
		startTimestamp:               startTimestamp,
		lastKnownBlockHashesSize:     lastKnownBlockHashesSize,
		blockHashCheckpointsInterval: blockHashCheckpointsInterval,
		maxBlockHashCheckpoints:      maxBlockHashCheckpoints,
	}
}

// LastKnownBlockHeight returns the most recently stored height.
func (s *SynchronizationStatus) LastKnownBlockHeight() uint64 { return s.lastKnownBlockHeight }

// StartHeight returns the wallet's scan start height.
func (s *SynchronizationStatus) StartHeight() uint64 { return s.startHeight }

// StartTimestamp returns the wallet's scan start timestamp.
func (s *SynchronizationStatus) StartTimestamp() uint64 { return s.startTimestamp }

// LastKnownBlockHashes returns the dense recent-hash window, newest first.
func (s *SynchronizationStatus) LastKnownBlockHashes() []blockdata.Hash32 {
	return s.lastKnownBlockHashes
}

// BlockHashCheckpoints returns the sparse long-range checkpoints, newest
// first.
func (s *SynchronizationStatus) BlockHashCheckpoints() []blockdata.Hash32 {
	return s.blockHashCheckpoints
}

// StoreBlockHash records a newly processed block's height and hash,
// implementing spec section 4.E's three-step algorithm.
func (s *SynchronizationStatus) StoreBlockHash(height uint64, hash blockdata.Hash32) {
	s.lastKnownBlockHashes = append([]blockdata.Hash32{hash}, s.lastKnownBlockHashes...)
	if len(s.lastKnownBlockHashes) > s.lastKnownBlockHashesSize {
		s.lastKnownBlockHashes = s.lastKnownBlockHashes[:s.lastKnownBlockHashesSize]
	}

	if s.blockHashCheckpointsInterval != 0 && height%s.blockHashCheckpointsInterval == 0 {
		s.blockHashCheckpoints = append([]blockdata.Hash32{hash}, s.blockHashCheckpoints...)
		if len(s.blockHashCheckpoints) > s.maxBlockHashCheckpoints {
			s.blockHashCheckpoints = s.blockHashCheckpoints[:s.maxBlockHashCheckpoints]
		}
	}

	s.lastKnownBlockHeight = height
}

// GetBlockCheckpoints returns the list the daemon should use to find our
// resume point: the sparse checkpoints followed by the full dense tail,
// duplicates preserved (spec section 4.E: "the server tolerates
// duplicates").
func (s *SynchronizationStatus) GetBlockCheckpoints() []blockdata.Hash32 {
	out := make([]blockdata.Hash32, 0, len(s.blockHashCheckpoints)+len(s.lastKnownBlockHashes))
	out = append(out, s.blockHashCheckpoints...)
	out = append(out, s.lastKnownBlockHashes...)
	return out
}

// Restore replaces the stored checkpoint and recent-hash state wholesale,
// used when loading a previously saved wallet file: the persisted shape
// carries the resulting lists directly rather than the sequence of
// StoreBlockHash calls that produced them (spec section 6).
func (s *SynchronizationStatus) Restore(checkpoints, recent []blockdata.Hash32, lastKnownBlockHeight uint64) {
	s.blockHashCheckpoints = checkpoints
	s.lastKnownBlockHashes = recent
	s.lastKnownBlockHeight = lastKnownBlockHeight
}

// ResetToHeight discards every dense-tail hash at or after forkHeight and
// lowers the recorded tip to forkHeight-1, used after a reorg to roll the
// checkpoint state back to the highest surviving hash (spec section 4.F,
// "Reorg handling"). The dense tail is contiguous and newest first, so
// entry i is the hash at height lastKnownBlockHeight-i. Sparse checkpoints
// don't carry a height and are all kept, including any taken at or after
// forkHeight.
func (s *SynchronizationStatus) ResetToHeight(forkHeight uint64) {
	if forkHeight <= s.lastKnownBlockHeight {
		drop := s.lastKnownBlockHeight - forkHeight + 1
		if drop >= uint64(len(s.lastKnownBlockHashes)) {
			s.lastKnownBlockHashes = nil
		} else {
			s.lastKnownBlockHashes = s.lastKnownBlockHashes[drop:]
		}
	}
	if forkHeight == 0 {
		s.lastKnownBlockHeight = 0
		return
	}
	s.lastKnownBlockHeight = forkHeight - 1
}
