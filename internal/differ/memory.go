package differ

import (
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	// lcsCellBytes is the size of one entry of the LCS table.
	lcsCellBytes = 4
	// minAutoLCSCells keeps the derived cap usable on memory-starved hosts.
	minAutoLCSCells int64 = 1 << 20
	// fallbackLCSCells is used when system memory cannot be read.
	fallbackLCSCells int64 = 16 << 20
)

// virtualMemory is replaced in tests.
var virtualMemory = mem.VirtualMemory

// MemoryBudget derives the LCS table cap from available system memory
type MemoryBudget struct {
	logger   zerolog.Logger
	fraction float64
	hardMax  int64
}

// NewMemoryBudget creates a new memory budget
func NewMemoryBudget(logger zerolog.Logger, fraction float64, hardMax int64) *MemoryBudget {
	return &MemoryBudget{
		logger:   logger.With().Str("component", "MemoryBudget").Logger(),
		fraction: fraction,
		hardMax:  hardMax,
	}
}

// MaxCells returns how many LCS cells fit into fraction of available memory,
// raised to minAutoLCSCells and capped by hardMax.
func (mb *MemoryBudget) MaxCells() int64 {
	cells := fallbackLCSCells
	vmStat, err := virtualMemory()
	if err != nil {
		mb.logger.Warn().Err(err).Int64("max_cells", cells).Msg("Failed to read system memory, using fallback LCS cap")
	} else {
		cells = int64(float64(vmStat.Available)*mb.fraction) / lcsCellBytes
	}

	if cells < minAutoLCSCells {
		cells = minAutoLCSCells
	}
	if mb.hardMax > 0 && cells > mb.hardMax {
		cells = mb.hardMax
	}

	mb.logger.Debug().Int64("max_cells", cells).Msg("Derived LCS table cap")
	return cells
}
