package metrics

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var sink []byte

func TestReadMemory(t *testing.T) {
	before := ReadMemory()
	assert.Positive(t, before.HeapAlloc)
	assert.Positive(t, before.Sys)
	assert.Positive(t, before.Goroutines)

	sink = make([]byte, 1<<20)
	runtime.GC()
	after := ReadMemory()

	d := after.Since(before)
	assert.GreaterOrEqual(t, d.TotalAlloc, uint64(1<<20))
	assert.GreaterOrEqual(t, d.NumGC, uint32(1))
	assert.Equal(t, after.HeapAlloc, d.HeapAlloc)
}

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{TotalAlloc: 100, NumGC: 2, GCPause: 10 * time.Microsecond, Goroutines: 9}
	after := MemorySnapshot{TotalAlloc: 350, NumGC: 5, GCPause: 40 * time.Microsecond, HeapAlloc: 7, Goroutines: 4}
	assert.Equal(t, MemorySnapshot{
		TotalAlloc: 250,
		NumGC:      3,
		GCPause:    30 * time.Microsecond,
		HeapAlloc:  7,
		Goroutines: 4,
	}, after.Since(before))
}

func TestDetectCPU(t *testing.T) {
	t.Parallel()

	info := DetectCPU()
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.GreaterOrEqual(t, info.NumCPU, 1)
	assert.Contains(t, info.String(), runtime.GOARCH+", ")
}

func TestCPUInfo_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "amd64, 12 CPUs, features: avx2 bmi2",
		CPUInfo{Arch: "amd64", NumCPU: 12, Features: []string{"avx2", "bmi2"}}.String())
	assert.Equal(t, "riscv64, 1 CPU, features: none", CPUInfo{Arch: "riscv64", NumCPU: 1}.String())
}

func TestSampleSystem(t *testing.T) {
	u := SampleSystem()
	assert.GreaterOrEqual(t, u.CPUPercent, 0.0)
	assert.LessOrEqual(t, u.CPUPercent, 100.0)
	assert.GreaterOrEqual(t, u.MemPercent, 0.0)
	assert.LessOrEqual(t, u.MemPercent, 100.0)
}

func TestSystemUsage_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "cpu 12% · mem 48%", SystemUsage{CPUPercent: 12.4, MemPercent: 47.6}.String())
}
