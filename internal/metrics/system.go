package metrics

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemUsage holds a system-wide CPU and memory reading.
type SystemUsage struct {
	CPUPercent float64 // 0.0 .. 100.0, since the previous sample
	MemPercent float64 // 0.0 .. 100.0
}

// SampleSystem reads system-wide CPU and memory usage. CPU uses a zero
// interval, so it reports the usage since the previous call and the first
// call may report 0. Values that cannot be read are left at zero.
func SampleSystem() SystemUsage {
	var u SystemUsage
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		u.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		u.MemPercent = vm.UsedPercent
	}
	return u
}

// String renders the reading as "cpu 12% · mem 48%".
func (u SystemUsage) String() string {
	return fmt.Sprintf("cpu %.0f%% · mem %.0f%%", u.CPUPercent, u.MemPercent)
}
