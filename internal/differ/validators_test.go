package differ

import (
	"testing"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSizeValidator_ValidateSize(t *testing.T) {
	csv := NewContentSizeValidator(1)
	small := make([]byte, 10)
	big := make([]byte, 2*1024*1024)

	assert.NoError(t, csv.ValidateSize(small, small))

	err := csv.ValidateSize(small, big)
	require.Error(t, err)
	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "current_content", validationErr.Field)

	assert.NoError(t, NewContentSizeValidator(0).ValidateSize(big, big))
}

func TestPreviewConfigValidator_Validate(t *testing.T) {
	v := NewPreviewConfigValidator()
	assert.NoError(t, v.Validate(config.NewDefaultPreviewConfig()))

	cfg := config.NewDefaultPreviewConfig()
	cfg.ContextChars = 0
	assert.ErrorIs(t, v.Validate(cfg), common.ErrInvalidInput)

	cfg = config.NewDefaultPreviewConfig()
	cfg.NewDocumentAfter = -1
	assert.ErrorIs(t, v.Validate(cfg), common.ErrInvalidInput)
}
