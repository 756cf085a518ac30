// Package config holds the recognized wallet configuration options named
// in spec section 6, with the same defaults. cmd/lightwalletd parses these
// from flags/config file via github.com/jessevdk/go-flags, this codebase's
// own CLI flag library; library embedders can just build a Config literal.
package config

import "time"

// MixinBand is a height-indexed [min, max] mixin-count band.
type MixinBand struct {
	StartHeight uint64
	Min         int
	Max         int
}

// MixinLimits is an ordered, height-indexed table of mixin bands. Bands
// must be sorted ascending by StartHeight; ForHeight returns the band
// whose StartHeight is the greatest one not exceeding height.
type MixinLimits []MixinBand

// ForHeight returns the (min, max) mixin band in effect at height. If no
// band's StartHeight is at or below height, the first band is used (a
// wallet should not see heights before its earliest known rule).
func (m MixinLimits) ForHeight(height uint64) (min, max int) {
	if len(m) == 0 {
		return 0, 0
	}
	best := m[0]
	for _, band := range m {
		if band.StartHeight <= height {
			best = band
		} else {
			break
		}
	}
	return best.Min, best.Max
}

// Config collects every recognized option from spec section 6.
type Config struct {
	// MainLoopInterval is the period of the scheduler tick (default 10ms).
	MainLoopInterval time.Duration

	// BlocksPerTick bounds how many queued blocks are processed per
	// tick (default 1).
	BlocksPerTick int

	// RequestTimeout bounds every daemon RPC call (default 10s).
	RequestTimeout time.Duration

	// BlockTargetTime is the network's target block interval (default 30s).
	BlockTargetTime time.Duration

	// LastKnownBlockHashesSize caps the dense recent-hash window
	// (default 100).
	LastKnownBlockHashesSize int

	// BlockHashCheckpointsInterval is the stride, in blocks, between
	// sparse checkpoints (default 5000).
	BlockHashCheckpointsInterval uint64

	// MaxBlockHashCheckpoints caps the sparse checkpoint list (default 100).
	MaxBlockHashCheckpoints int

	// MinimumFee is the network's minimum per-transaction fee in atomic
	// units.
	MinimumFee uint64

	// IntegratedAddressLength is the character length of an integrated
	// address (used, per spec section 9, as the sole discriminator
	// between plain and integrated addresses).
	IntegratedAddressLength int

	// MixinLimits is the height-indexed mixin band table.
	MixinLimits MixinLimits

	// ScanCoinbase controls whether coinbase outputs are scanned for
	// ownership at all (default false).
	ScanCoinbase bool

	// UnlockTimeAsBlockHeightThreshold is the dividing line between
	// height-denominated and timestamp-denominated unlock times
	// (default 500,000,000).
	UnlockTimeAsBlockHeightThreshold uint64

	// HighWaterMark is the queued-block count above which the fetch
	// step pauses (spec section 9, "avoid unbounded blocksToProcess
	// growth").
	HighWaterMark int

	// LowWaterMark is the queued-block count below which a new fetch is
	// issued (spec section 4.G, "Fetch step").
	LowWaterMark int
}

// Default returns a Config populated with the defaults named in spec
// section 6.
func Default() Config {
	return Config{
		MainLoopInterval:                 10 * time.Millisecond,
		BlocksPerTick:                    1,
		RequestTimeout:                   10 * time.Second,
		BlockTargetTime:                  30 * time.Second,
		LastKnownBlockHashesSize:         100,
		BlockHashCheckpointsInterval:     5000,
		MaxBlockHashCheckpoints:          100,
		IntegratedAddressLength:          187,
		ScanCoinbase:                     false,
		UnlockTimeAsBlockHeightThreshold: 500_000_000,
		HighWaterMark:                    1000,
		LowWaterMark:                     50,
	}
}
