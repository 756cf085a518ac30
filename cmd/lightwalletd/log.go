package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/tcwallet/walletlib/mainloop"
	"github.com/tcwallet/walletlib/synchronizer"
)

// logRotator gets set when initLogRotator is called and rotates log
// files written to the log directory.
var logRotator *rotator.Rotator

// logWriter implements an io.Writer that outputs to both standard output
// and the log rotator, mirroring this codebase's log.go.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var backendLog = btclog.NewBackend(logWriter{})

var (
	log         = backendLog.Logger("LWLD")
	mainLoopLog = backendLog.Logger("SYNC")
	daemonLog   = backendLog.Logger("DMON")
)

func init() {
	mainloop.UseLogger(mainLoopLog)
	synchronizer.UseLogger(mainLoopLog)
}

// subsystemLoggers maps each subsystem identifier to its logger instance.
var subsystemLoggers = map[string]btclog.Logger{
	"LWLD": log,
	"SYNC": mainLoopLog,
	"DMON": daemonLog,
}

// initLogRotator initializes the logging rotator to write logs to
// logFile and create roll files in the same directory. It must be called
// before the package-level log rotator variables are used.
func initLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
		os.Exit(1)
	}
	logRotator = r
}

// setLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored.
func setLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets the log level for every registered subsystem.
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
