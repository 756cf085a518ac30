package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1, cfg.BlocksPerTick)
	assert.Equal(t, 100, cfg.LastKnownBlockHashesSize)
	assert.Equal(t, uint64(5000), cfg.BlockHashCheckpointsInterval)
	assert.Equal(t, 100, cfg.MaxBlockHashCheckpoints)
	assert.False(t, cfg.ScanCoinbase)
	assert.Equal(t, uint64(500_000_000), cfg.UnlockTimeAsBlockHeightThreshold)
	assert.Equal(t, 1000, cfg.HighWaterMark)
	assert.Equal(t, 50, cfg.LowWaterMark)
}

func TestMixinLimitsForHeightEmptyReturnsZero(t *testing.T) {
	var limits MixinLimits
	min, max := limits.ForHeight(1000)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestMixinLimitsForHeightBeforeFirstBandUsesFirstBand(t *testing.T) {
	limits := MixinLimits{
		{StartHeight: 100, Min: 2, Max: 4},
		{StartHeight: 200, Min: 3, Max: 6},
	}
	min, max := limits.ForHeight(50)
	assert.Equal(t, 2, min)
	assert.Equal(t, 4, max)
}

func TestMixinLimitsForHeightExactMatch(t *testing.T) {
	limits := MixinLimits{
		{StartHeight: 100, Min: 2, Max: 4},
		{StartHeight: 200, Min: 3, Max: 6},
	}
	min, max := limits.ForHeight(200)
	assert.Equal(t, 3, min)
	assert.Equal(t, 6, max)
}

func TestMixinLimitsForHeightBetweenBandsUsesEarlierBand(t *testing.T) {
	limits := MixinLimits{
		{StartHeight: 100, Min: 2, Max: 4},
		{StartHeight: 200, Min: 3, Max: 6},
	}
	min, max := limits.ForHeight(150)
	assert.Equal(t, 2, min)
	assert.Equal(t, 4, max)
}

func TestMixinLimitsForHeightAfterLastBand(t *testing.T) {
	limits := MixinLimits{
		{StartHeight: 100, Min: 2, Max: 4},
		{StartHeight: 200, Min: 3, Max: 6},
	}
	min, max := limits.ForHeight(10000)
	assert.Equal(t, 3, min)
	assert.Equal(t, 6, max)
}
