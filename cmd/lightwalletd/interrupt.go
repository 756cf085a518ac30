package main

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals is the set of signals that trigger a graceful
// shutdown, adapted from this codebase's signalsigterm.go (which forked
// this list per build tag; modern Go's syscall package defines SIGTERM
// uniformly across the platforms this module targets).
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// interruptListener blocks until a signal in interruptSignals arrives.
func interruptListener() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, interruptSignals...)
	<-c
}
