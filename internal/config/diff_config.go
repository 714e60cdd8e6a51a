package config

// DiffConfig defines configuration for the character and structural differs
type DiffConfig struct {
	// MaxLCSCells caps the m*n size of the LCS table. 0 derives the cap from available memory.
	MaxLCSCells int64 `json:"max_lcs_cells,omitempty" yaml:"max_lcs_cells,omitempty" validate:"min=0"`
	// HardMaxLCSCells bounds the memory-derived cap.
	HardMaxLCSCells int64 `json:"hard_max_lcs_cells,omitempty" yaml:"hard_max_lcs_cells,omitempty" validate:"min=1"`
	// MemoryFraction is the share of available memory the LCS table may use when MaxLCSCells is 0.
	MemoryFraction float64 `json:"memory_fraction,omitempty" yaml:"memory_fraction,omitempty" validate:"gt=0,lte=1"`
	// FallbackTimeoutMs bounds the approximate diff used for oversized inputs.
	FallbackTimeoutMs int `json:"fallback_timeout_ms,omitempty" yaml:"fallback_timeout_ms,omitempty" validate:"min=0"`
	// MinTextLength is the length below which both texts are considered too short to diff.
	MinTextLength    int `json:"min_text_length,omitempty" yaml:"min_text_length,omitempty" validate:"min=0"`
	MaxConcurrency   int `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty" validate:"min=1"`
	MaxSnapshotSizeMB int `json:"max_snapshot_size_mb,omitempty" yaml:"max_snapshot_size_mb,omitempty" validate:"min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		MaxLCSCells:       DefaultDiffMaxLCSCells,
		HardMaxLCSCells:   DefaultDiffHardMaxLCSCells,
		MemoryFraction:    DefaultDiffMemoryFraction,
		FallbackTimeoutMs: DefaultDiffFallbackTimeoutMs,
		MinTextLength:     DefaultDiffMinTextLength,
		MaxConcurrency:    DefaultDiffMaxConcurrency,
		MaxSnapshotSizeMB: DefaultDiffMaxSnapshotSizeMB,
	}
}
