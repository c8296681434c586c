package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/google/uuid"
)

// Downloader fetches the media behind a job URL into the job directory.
type Downloader interface {
	Download(ctx context.Context, job *Job) (*Result, error)
}

type Updater interface {
	RunUpdate(ctx context.Context)
}

// Job is a single download-and-upload cycle. Dir is owned by the job and is
// removed by Cleanup once every file has been sent.
type Job struct {
	ID        string
	URL       string
	Platform  Platform
	AudioOnly bool
	Dir       string
}

// Result lists the produced files, oldest first.
type Result struct {
	Files []string
	Title string
}

func NewJob(mediaDir, rawURL string, platform Platform, audioOnly bool) (*Job, error) {
	id := uuid.New().String()
	dir := filepath.Join(mediaDir, string(platform), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create job directory: %w", err)
	}
	return &Job{
		ID:        id,
		URL:       rawURL,
		Platform:  platform,
		AudioOnly: audioOnly,
		Dir:       dir,
	}, nil
}

func (j *Job) Cleanup() {
	if j == nil || j.Dir == "" {
		return
	}
	if err := os.RemoveAll(j.Dir); err != nil {
		logutils.Log.WithError(err).WithField("dir", j.Dir).Warn("Failed to remove job directory")
	}
}
