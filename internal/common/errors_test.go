package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	err := WrapErrorf(base, "failed to read %s", "snapshot.json")

	assert.Equal(t, "failed to read snapshot.json: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("format", "xml", "unsupported output format")

	assert.Equal(t, "validation failed for field 'format': unsupported output format (value: xml)", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("preview_config", "context_chars", "must be positive"),
			expected: "configuration error in section 'preview_config', field 'context_chars': must be positive",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("diff_config", "", "missing"),
			expected: "configuration error in section 'diff_config': missing",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "unreadable"),
			expected: "configuration error: unreadable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}

func TestErrorCollector(t *testing.T) {
	var ec ErrorCollector
	assert.False(t, ec.HasErrors())
	assert.NoError(t, ec.Error())

	ec.Add(nil)
	ec.Add(errors.New("first"))
	assert.True(t, ec.HasErrors())
	assert.EqualError(t, ec.Error(), "first")

	ec.AddWithContext(errors.New("second"), "parsing current")
	assert.Len(t, ec.Errors(), 2)
	assert.EqualError(t, ec.Error(), "multiple errors occurred: [first; parsing current: second]")
}
