package synchronizer

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the package-wide logger. Any calls to this function must
// be made before a WalletSynchronizer processes any blocks (it is not
// concurrency safe), mirroring rpc/legacyrpc.UseLogger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
