package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var shouldShutdown atomic.Bool

// StartListeningForShutdownSignal flips a process-wide flag that long-running
// workers poll between iterations, so they stop picking up new work while the
// HTTP server drains.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		shouldShutdown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return shouldShutdown.Load()
}
