package telemetry

import (
	"context"
	"sync"

	"github.com/techietitans/autonomy/logging"
)

// A Display shows the diagnostics of the latest tick to the drive team.
type Display interface {
	Show(ctx context.Context, d Diagnostics) error
}

// LogDisplay writes every record to a logger at debug level.
type LogDisplay struct {
	Logger logging.Logger
}

// Show logs the record.
func (ld *LogDisplay) Show(ctx context.Context, d Diagnostics) error {
	ld.Logger.CDebugw(ctx, "telemetry", d.Fields()...)
	return nil
}

// MemoryDisplay keeps the latest record and a count of updates.
type MemoryDisplay struct {
	mu      sync.Mutex
	last    Diagnostics
	updates int
}

// Show stores the record.
func (md *MemoryDisplay) Show(ctx context.Context, d Diagnostics) error {
	md.mu.Lock()
	defer md.mu.Unlock()
	md.last = d
	md.updates++
	return nil
}

// Last returns the latest record.
func (md *MemoryDisplay) Last() Diagnostics {
	md.mu.Lock()
	defer md.mu.Unlock()
	return md.last
}

// Updates returns how many records were shown.
func (md *MemoryDisplay) Updates() int {
	md.mu.Lock()
	defer md.mu.Unlock()
	return md.updates
}
