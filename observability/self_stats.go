package observability

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// SelfStats is a snapshot of the running process.
type SelfStats struct {
	RSSBytes   uint64
	CPUPercent float64
	Status     string
}

// CollectSelfStats retrieves memory, CPU and OS status of the current process.
func CollectSelfStats() (SelfStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return SelfStats{}, err
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return SelfStats{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return SelfStats{}, err
	}

	status, err := p.Status()
	if err != nil {
		return SelfStats{}, err
	}
	return SelfStats{RSSBytes: memInfo.RSS, CPUPercent: cpuPercent, Status: status}, nil
}
