package mainloop

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the package-wide logger. Any calls to this function must
// be made before Start is called (it is not concurrency safe), mirroring
// rpc/legacyrpc.UseLogger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
