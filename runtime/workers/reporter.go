package workers

import (
	"context"
	"fmt"
	"time"

	"quiz-lab/observability"
)

// ReporterWorker prints a one-line live summary of the realtime counters.
// It is only wired in when the server runs at debug level; production
// deployments rely on the stats endpoint instead.
type ReporterWorker struct {
	monitoring *observability.Monitoring
	interval   time.Duration
}

func NewReporterWorker(monitoring *observability.Monitoring, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{monitoring: monitoring, interval: interval}
}

// Run starts the reporting loop to display real-time metrics until context cancellation
func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.printStats(startTime)
			fmt.Println("\n🏁 Reporter stopped.")
			return ctx.Err()
		case <-ticker.C:
			w.printStats(startTime)
		}
	}
}

// printStats formats and prints the latest metrics snapshot to the console
func (w *ReporterWorker) printStats(startTime time.Time) {
	stats := w.monitoring.Snapshot()
	duration := time.Since(startTime).Round(time.Second).String()

	fmt.Printf("\r📊 [%s] Conns: %d | Rooms: %d | Joins: %d/%d | Broadcasts: %d | RAM: %dMB",
		duration,
		stats.ConnectionsOpen,
		stats.RoomsCreated,
		stats.JoinsAccepted,
		stats.JoinsAccepted+stats.JoinsRejected,
		stats.BroadcastsSent,
		stats.AllocMemMb,
	)
}
