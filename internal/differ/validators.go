package differ

import (
	"fmt"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/config"
)

// ContentSizeValidator validates snapshot size against limits
type ContentSizeValidator struct {
	maxSizeBytes int64
}

// NewContentSizeValidator creates a new content size validator. 0 disables the check.
func NewContentSizeValidator(maxSizeMB int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// MaxSizeBytes returns the configured limit
func (csv *ContentSizeValidator) MaxSizeBytes() int64 {
	return csv.maxSizeBytes
}

// ValidateSize checks if both snapshots are within limits
func (csv *ContentSizeValidator) ValidateSize(previousContent, currentContent []byte) error {
	if err := csv.validateSingleContent(previousContent, "previous_content"); err != nil {
		return err
	}
	return csv.validateSingleContent(currentContent, "current_content")
}

func (csv *ContentSizeValidator) validateSingleContent(content []byte, fieldName string) error {
	if csv.maxSizeBytes > 0 && int64(len(content)) > csv.maxSizeBytes {
		return common.NewValidationError(fieldName, len(content),
			fmt.Sprintf("%s too large (%d bytes > %d bytes limit)",
				fieldName, len(content), csv.maxSizeBytes))
	}
	return nil
}

// PreviewConfigValidator checks preview window sizes
type PreviewConfigValidator struct{}

// NewPreviewConfigValidator creates a new preview config validator
func NewPreviewConfigValidator() *PreviewConfigValidator {
	return &PreviewConfigValidator{}
}

// Validate rejects non-positive windows
func (pcv *PreviewConfigValidator) Validate(cfg config.PreviewConfig) error {
	checks := []struct {
		field string
		value int
	}{
		{"context_chars", cfg.ContextChars},
		{"display_context_chars", cfg.DisplayContextChars},
		{"max_change_chars", cfg.MaxChangeChars},
		{"new_document_chars", cfg.NewDocumentChars},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return common.NewValidationError(c.field, c.value, "must be positive")
		}
	}
	if cfg.NewDocumentAfter < 0 {
		return common.NewValidationError("new_document_after", cfg.NewDocumentAfter, "cannot be negative")
	}
	return nil
}
