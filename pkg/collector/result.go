package collector

import (
	"time"

	"imgcollect/pkg/search"
)

// StopReason explains why a provider run ended
type StopReason string

const (
	// StopReached means every page up to the stop bound was processed
	StopReached StopReason = "stop-reached"
	// StopExhausted means a page returned no links inside its result container
	StopExhausted StopReason = "exhausted"
	// StopUnrecognized means a page did not look like a results page
	StopUnrecognized StopReason = "unrecognized"
)

func stopReasonFor(status search.PageStatus) StopReason {
	if status == search.PageUnrecognized {
		return StopUnrecognized
	}
	return StopExhausted
}

// Result describes one provider run
type Result struct {
	RunID      string
	Provider   string
	Query      string
	OutputDir  string
	Pages      int
	Saved      int
	Bytes      int64
	Files      []string
	StopReason StopReason
	Duration   time.Duration
}
