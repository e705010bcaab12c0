package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is the aggregated view served by the debug inspector.
type Stats struct {
	// --- REALTIME METRICS ---
	ConnectionsOpen   int64  `json:"connections_open"`
	RoomsCreated      uint64 `json:"rooms_created"`
	JoinsAccepted     uint64 `json:"joins_accepted"`
	JoinsRejected     uint64 `json:"joins_rejected"`
	BroadcastsSent    uint64 `json:"broadcasts_sent"`
	BroadcastsSkipped uint64 `json:"broadcasts_skipped"`
	ProtocolErrors    uint64 `json:"protocol_errors"`

	// --- PROCESS METRICS (heartbeat worker) ---
	ProcessRSSMb  uint64  `json:"process_rss_mb"`
	ProcessCPUPct float64 `json:"process_cpu_pct"`

	// --- GO RUNTIME METRICS ---
	AllocMemMb    uint64 `json:"alloc_mem_mb"`
	NumGC         uint32 `json:"num_gc"`
	NumGoroutines int    `json:"num_goroutines"`

	UpdatedAt string `json:"updated_at"`
}

// Monitoring collects realtime counters from the coordinator, router and
// transport. Counters are atomic so hot paths never take the mutex; the
// mutex only guards the last composed Stats.
type Monitoring struct {
	log *slog.Logger
	mu  sync.RWMutex

	connectionsOpen   int64
	roomsCreated      uint64
	joinsAccepted     uint64
	joinsRejected     uint64
	broadcastsSent    uint64
	broadcastsSkipped uint64
	protocolErrors    uint64

	processRSSMb  uint64
	processCPUPct uint64 // bits of a float64
}

func NewMonitoring(log *slog.Logger) *Monitoring {
	return &Monitoring{log: log}
}

func (m *Monitoring) IncrConnections()      { atomic.AddInt64(&m.connectionsOpen, 1) }
func (m *Monitoring) DecrConnections()      { atomic.AddInt64(&m.connectionsOpen, -1) }
func (m *Monitoring) IncrRoomsCreated()     { atomic.AddUint64(&m.roomsCreated, 1) }
func (m *Monitoring) IncrJoinsAccepted()    { atomic.AddUint64(&m.joinsAccepted, 1) }
func (m *Monitoring) IncrJoinsRejected()    { atomic.AddUint64(&m.joinsRejected, 1) }
func (m *Monitoring) IncrBroadcastSent()    { atomic.AddUint64(&m.broadcastsSent, 1) }
func (m *Monitoring) IncrBroadcastSkipped() { atomic.AddUint64(&m.broadcastsSkipped, 1) }
func (m *Monitoring) IncrProtocolErrors()   { atomic.AddUint64(&m.protocolErrors, 1) }

// SetProcessStats stores the self-stats sampled by the heartbeat worker.
func (m *Monitoring) SetProcessStats(rssMb uint64, cpuPct float64) {
	atomic.StoreUint64(&m.processRSSMb, rssMb)
	m.mu.Lock()
	m.processCPUPct = uint64(cpuPct * 100)
	m.mu.Unlock()
}

// Snapshot composes the current Stats, adding Go runtime metrics on the fly.
func (m *Monitoring) Snapshot() Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.RLock()
	cpu := float64(m.processCPUPct) / 100
	m.mu.RUnlock()

	return Stats{
		ConnectionsOpen:   atomic.LoadInt64(&m.connectionsOpen),
		RoomsCreated:      atomic.LoadUint64(&m.roomsCreated),
		JoinsAccepted:     atomic.LoadUint64(&m.joinsAccepted),
		JoinsRejected:     atomic.LoadUint64(&m.joinsRejected),
		BroadcastsSent:    atomic.LoadUint64(&m.broadcastsSent),
		BroadcastsSkipped: atomic.LoadUint64(&m.broadcastsSkipped),
		ProtocolErrors:    atomic.LoadUint64(&m.protocolErrors),
		ProcessRSSMb:      atomic.LoadUint64(&m.processRSSMb),
		ProcessCPUPct:     cpu,
		AllocMemMb:        ms.Alloc / 1024 / 1024,
		NumGC:             ms.NumGC,
		NumGoroutines:     runtime.NumGoroutine(),
		UpdatedAt:         time.Now().Format(time.RFC3339),
	}
}

// StatsMap adapts Snapshot to the debug server's provider signature.
func (m *Monitoring) StatsMap() map[string]any {
	s := m.Snapshot()
	return map[string]any{
		"Connections":       s.ConnectionsOpen,
		"RoomsCreated":      s.RoomsCreated,
		"JoinsAccepted":     s.JoinsAccepted,
		"JoinsRejected":     s.JoinsRejected,
		"BroadcastsSent":    s.BroadcastsSent,
		"BroadcastsSkipped": s.BroadcastsSkipped,
		"ProtocolErrors":    s.ProtocolErrors,
		"AllocMemMb":        s.AllocMemMb,
		"Goroutines":        s.NumGoroutines,
		"UpdatedAt":         s.UpdatedAt,
	}
}
