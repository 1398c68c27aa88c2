package main

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func TestWatchBackOffIsBounded(t *testing.T) {
	bo, ok := watchBackOff().(*backoff.ExponentialBackOff)
	if !ok {
		t.Fatalf("unexpected policy type: %T", watchBackOff())
	}
	// Shutdown closes the transport and waits for the watch loop to see
	// the failure; an unbounded elapsed-time budget would retry the dead
	// transport for minutes.
	if bo.MaxElapsedTime == 0 || bo.MaxElapsedTime > 5*time.Second {
		t.Fatalf("watch retry budget not bounded: %v", bo.MaxElapsedTime)
	}
}
