package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		expected      float64
		expectedError bool
	}{
		{
			name:     "plain float",
			output:   "903.486000",
			expected: 903.486,
		},
		{
			name:     "trailing newline",
			output:   "600.0\n",
			expected: 600,
		},
		{
			name:     "zero",
			output:   "0.000000",
			expected: 0,
		},
		{
			name:          "empty output",
			output:        "",
			expectedError: true,
		},
		{
			name:          "not a number",
			output:        "N/A",
			expectedError: true,
		},
		{
			name:          "negative duration",
			output:        "-1.5",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, err := ParseDuration(tt.output)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrDurationUnavailable)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, seconds)
			}
		})
	}
}

func TestFFProbe_Duration_MissingBinary(t *testing.T) {
	p := NewFFProbe("/nonexistent/ffprobe")

	_, err := p.Duration(context.Background(), "/some/file.mp4")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDurationUnavailable)
}

func TestNewFFProbe_DefaultsBinary(t *testing.T) {
	p := NewFFProbe("")

	assert.Equal(t, "ffprobe", p.binPath)
}
