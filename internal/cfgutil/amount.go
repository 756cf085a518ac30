// Package cfgutil holds small config-parsing helpers that don't belong in
// the public config package, adapted from this codebase's
// internal/cfgutil/amount.go (itself wrapping abeutil.Amount for
// go-flags). TurtleCoin-family amounts are atomic-unit integers rather
// than a fixed-point currency type, so AmountFlag wraps a plain uint64.
package cfgutil

import (
	"strconv"
	"strings"
)

// AtomicUnitsPerCoin is the number of atomic units in one display unit for
// a typical CryptoNote-family coin with 2 decimal places of precision.
const AtomicUnitsPerCoin = 100

// AmountFlag wraps an atomic-unit amount and implements the
// flags.Marshaler/Unmarshaler interfaces so it can be used as a
// github.com/jessevdk/go-flags config struct field, taking either a bare
// integer (atomic units) or a decimal suffixed with " TRTL".
type AmountFlag struct {
	AtomicUnits uint64
}

// NewAmountFlag creates an AmountFlag with a default value.
func NewAmountFlag(defaultValue uint64) *AmountFlag {
	return &AmountFlag{AtomicUnits: defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (a *AmountFlag) MarshalFlag() (string, error) {
	return strconv.FormatUint(a.AtomicUnits, 10), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (a *AmountFlag) UnmarshalFlag(value string) error {
	if strings.HasSuffix(value, " TRTL") {
		value = strings.TrimSuffix(value, " TRTL")
		coins, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		a.AtomicUnits = uint64(coins * AtomicUnitsPerCoin)
		return nil
	}
	units, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return err
	}
	a.AtomicUnits = units
	return nil
}
