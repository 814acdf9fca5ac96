package ui

import "sync/atomic"

// CaptureStats tallies a multi-page capture run.
type CaptureStats struct {
	Saved   atomic.Int64
	Missing atomic.Int64
	Failed  atomic.Int64
}
