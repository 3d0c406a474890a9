// Package audio converts stored WAV recordings to MP3 for delivery.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Transcoder shells out to ffmpeg, piping WAV bytes in and MP3 bytes out.
type Transcoder struct {
	ffmpeg string
}

// NewTranscoder returns a Transcoder invoking the given ffmpeg binary.
// An empty path resolves "ffmpeg" from PATH.
func NewTranscoder(ffmpegPath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Transcoder{ffmpeg: ffmpegPath}
}

// WAVToMP3 transcodes wav to MP3. A non-zero ffmpeg exit fails with the
// subprocess's stderr included in the error.
func (t *Transcoder) WAVToMP3(ctx context.Context, wav []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-i", "pipe:0",
		"-f", "mp3",
		"-codec:a", "libmp3lame",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(wav)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("ffmpeg conversion failed: %w: %s", err, detail)
		}
		return nil, fmt.Errorf("ffmpeg conversion failed: %w", err)
	}
	return stdout.Bytes(), nil
}
