package metrics

import (
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUInfo describes the processor the calculations run on.
type CPUInfo struct {
	Arch     string   `json:"arch"`
	NumCPU   int      `json:"num_cpu"`
	Features []string `json:"features"`
}

// DetectCPU reports the architecture, logical CPU count and the SIMD and
// big-integer related features math/big can take advantage of.
func DetectCPU() CPUInfo {
	info := CPUInfo{Arch: runtime.GOARCH, NumCPU: runtime.NumCPU()}
	add := func(ok bool, name string) {
		if ok {
			info.Features = append(info.Features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasPMULL, "pmull")
	}
	return info
}

// String renders the info as "amd64, 8 CPUs, features: avx2 bmi2".
func (c CPUInfo) String() string {
	features := "none"
	if len(c.Features) > 0 {
		features = strings.Join(c.Features, " ")
	}
	unit := "CPUs"
	if c.NumCPU == 1 {
		unit = "CPU"
	}
	return c.Arch + ", " + strconv.Itoa(c.NumCPU) + " " + unit + ", features: " + features
}
