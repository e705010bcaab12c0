package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"quiz-lab/observability"
)

const heartbeatInterval = 5 * time.Second

// HeartbeatWorker samples the process's own RSS and CPU every few seconds
// and feeds them into the monitoring snapshot served by the stats endpoint
// and the debug inspector.
type HeartbeatWorker struct {
	log        *slog.Logger
	monitoring *observability.Monitoring
}

func NewHeartbeatWorker(log *slog.Logger, monitoring *observability.Monitoring) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, monitoring: monitoring}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.monitoring.SetProcessStats(rss/1024/1024, cpu)
		}
	}
}

// selfStats retrieves memory and CPU usage for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
