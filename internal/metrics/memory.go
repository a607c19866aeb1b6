// Package metrics reads runtime memory statistics and CPU features for the
// `fib --details` report, the TUI status line and the server health check.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a reading of the Go runtime memory counters.
type MemorySnapshot struct {
	HeapAlloc  uint64 // live heap bytes
	Sys        uint64 // bytes obtained from the OS
	TotalAlloc uint64 // cumulative heap bytes allocated
	NumGC      uint32
	GCPause    time.Duration // cumulative stop-the-world time
	Goroutines int
}

// ReadMemory takes a MemorySnapshot. It briefly stops the world.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		TotalAlloc: m.TotalAlloc,
		NumGC:      m.NumGC,
		GCPause:    time.Duration(m.PauseTotalNs),
		Goroutines: runtime.NumGoroutine(),
	}
}

// Since returns the activity between earlier and s: cumulative counters
// become differences, gauges keep the value of s.
func (s MemorySnapshot) Since(earlier MemorySnapshot) MemorySnapshot {
	s.TotalAlloc -= earlier.TotalAlloc
	s.NumGC -= earlier.NumGC
	s.GCPause -= earlier.GCPause
	return s
}
