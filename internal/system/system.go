package system

import (
	"fmt"
	"log"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit; a render holds the
// encoder pipe, frame buffers and log files at once.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not raise file limit: %v", err)
	}
}

// Stats is a point-in-time host snapshot for the performance report.
type Stats struct {
	LogicalCPUs int
	CPUPercent  float64
	MemUsedMB   uint64
	MemTotalMB  uint64
}

// Probe collects host stats. Failures degrade to zero values; the
// report is informational only.
func Probe() Stats {
	var s Stats

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemUsedMB = vm.Used / 1024 / 1024
		s.MemTotalMB = vm.Total / 1024 / 1024
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("cpus=%d cpu=%.1f%% mem=%d/%dMB",
		s.LogicalCPUs, s.CPUPercent, s.MemUsedMB, s.MemTotalMB)
}
