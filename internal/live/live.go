// Package live owns running matches. Each match gets exactly one goroutine,
// the single writer of all its mutable state; readers see only immutable
// snapshots published through an atomic pointer. Commands (force-complete,
// resume) travel over the runner's command channel, so every mutation happens
// on the runner goroutine.
package live

import (
	"errors"
	"log"
)

var (
	// ErrUnknownMatch maps to a not-found response at the API edge.
	ErrUnknownMatch = errors.New("unknown match")
	// ErrInvalidTransition rejects an operation without mutating state.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrAlreadyLive rejects starting a match that is already running.
	ErrAlreadyLive = errors.New("match already live")
)

func logInfo(format string, v ...any) {
	log.Printf(format, v...)
}
