package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const resolveTimeout = 2 * time.Minute

// Resolver implements ports.StreamResolver with the local yt-dlp binary.
type Resolver struct {
	binaryPath string
	pageURL    func(videoID string) string
}

// NewResolver creates a Resolver. binaryPath may be a bare name looked up on
// PATH; empty means "yt-dlp". pageURL builds the watch page for a video id.
func NewResolver(binaryPath string, pageURL func(videoID string) string) *Resolver {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &Resolver{binaryPath: binaryPath, pageURL: pageURL}
}

// ResolveStream returns a direct, single-file media URL for videoID.
func (r *Resolver) ResolveStream(ctx context.Context, videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", errors.New("empty video id")
	}

	bin, err := exec.LookPath(r.binaryPath)
	if err != nil {
		return "", fmt.Errorf("yt-dlp not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	args := []string{"--format", "best", "--get-url", "--no-playlist", "--no-warnings", r.pageURL(videoID)}
	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("yt-dlp exited with %d: %s", exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("run yt-dlp: %w", err)
	}
	return firstURL(string(out))
}

// firstURL picks the first non-empty line of yt-dlp output.
func firstURL(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", errors.New("yt-dlp printed no URL")
}
