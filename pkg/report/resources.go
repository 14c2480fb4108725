package report

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Resources is the process resource usage around a conversion.
type Resources struct {
	CPUPercent          float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryRSS           uint64  `json:"memory_rss" yaml:"memory_rss"`
	MemoryVMS           uint64  `json:"memory_vms" yaml:"memory_vms"`
	HeapAlloc           uint64  `json:"heap_alloc" yaml:"heap_alloc"`
	SystemMemoryPercent float64 `json:"system_memory_percent" yaml:"system_memory_percent"`
}

// ResourceMonitor measures the resources used by this process since it was
// created.
type ResourceMonitor struct {
	process      *process.Process
	startCPUTime float64
	startTime    time.Time
}

// NewResourceMonitor starts measuring. Probing the process may fail on some
// platforms; Usage then reports what it can.
func NewResourceMonitor() *ResourceMonitor {
	rm := &ResourceMonitor{startTime: time.Now()}
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: pids fit in int32
	if err != nil {
		return rm
	}
	rm.process = proc
	if cpuTime, err := proc.Times(); err == nil {
		rm.startCPUTime = cpuTime.Total()
	}
	return rm
}

// Usage returns the resources used so far.
func (rm *ResourceMonitor) Usage() *Resources {
	usage := &Resources{}

	if rm.process != nil {
		if cpuTime, err := rm.process.Times(); err == nil {
			if elapsed := time.Since(rm.startTime).Seconds(); elapsed > 0 {
				usage.CPUPercent = ((cpuTime.Total() - rm.startCPUTime) / elapsed) * 100
			}
		}
		if memInfo, err := rm.process.MemoryInfo(); err == nil {
			usage.MemoryRSS = memInfo.RSS
			usage.MemoryVMS = memInfo.VMS
		}
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemoryPercent = vmStat.UsedPercent
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	usage.HeapAlloc = memStats.HeapAlloc

	return usage
}
