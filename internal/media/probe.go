// Package media derives metadata from media files on disk
package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// FFProbe reads media durations by invoking the ffprobe binary
type FFProbe struct {
	binPath string
}

// NewFFProbe creates a prober that runs the given ffprobe binary
// (an empty path resolves "ffprobe" via PATH)
func NewFFProbe(binPath string) *FFProbe {
	if binPath == "" {
		binPath = "ffprobe"
	}
	return &FFProbe{binPath: binPath}
}

// Duration returns the duration of the media file at path in seconds.
// Any probe failure is reported as models.ErrDurationUnavailable so callers
// can fall back to a zero duration.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.binPath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %q: %v: %w", path, err, models.ErrDurationUnavailable)
	}

	return ParseDuration(string(out))
}

// ParseDuration parses ffprobe's duration output, a float in seconds
func ParseDuration(out string) (float64, error) {
	trimmed := strings.TrimSpace(out)
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable ffprobe output %q: %w", trimmed, models.ErrDurationUnavailable)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %f: %w", seconds, models.ErrDurationUnavailable)
	}

	return seconds, nil
}
