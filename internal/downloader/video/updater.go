package ytdlp

import (
	"context"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/lrstanley/go-ytdlp"
)

const updateTimeout = 3 * time.Minute

// Install resolves a yt-dlp binary compatible with the library, downloading one
// into the user cache when none is found. It returns the executable path.
func Install(ctx context.Context) (string, error) {
	installCtx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	resolved, err := ytdlp.Install(installCtx, nil)
	if err != nil {
		return "", err
	}
	logutils.Log.WithFields(map[string]any{
		"binary":  resolved.Executable,
		"version": resolved.Version,
	}).Info("yt-dlp binary resolved")
	return resolved.Executable, nil
}

func selfUpdate(ctx context.Context, binaryPath string) (*ytdlp.Result, error) {
	cmd := ytdlp.New()
	if binaryPath != "" {
		cmd.SetExecutable(binaryPath)
	}
	return cmd.Update(ctx)
}

// RunUpdate runs yt-dlp --update. Failures are logged and never fatal.
func RunUpdate(ctx context.Context, binaryPath string) {
	updateCtx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	res, err := selfUpdate(updateCtx, binaryPath)
	if err != nil {
		if updateCtx.Err() != nil {
			logutils.Log.WithError(err).Warn("yt-dlp update timed out or was canceled")
			return
		}
		fields := map[string]any{"binary": binaryPath}
		if res != nil {
			fields["output"] = res.Stderr
			fields["exit_code"] = res.ExitCode
		}
		logutils.Log.WithError(err).WithFields(fields).Warn("yt-dlp update failed")
		return
	}

	logutils.Log.WithFields(map[string]any{
		"binary": binaryPath,
		"output": res.Stdout,
	}).Info("yt-dlp update check completed successfully")
}

type ytdlpUpdater struct{ binaryPath string }

func (u *ytdlpUpdater) RunUpdate(ctx context.Context) { RunUpdate(ctx, u.binaryPath) }

func NewUpdater(binaryPath string) downloader.Updater {
	return &ytdlpUpdater{binaryPath: binaryPath}
}

// StartPeriodicUpdater calls u every interval until ctx is done. A non-positive
// interval disables it.
func StartPeriodicUpdater(ctx context.Context, interval time.Duration, u downloader.Updater) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logutils.Log.WithField("interval", interval).Info("Starting periodic yt-dlp updater")

	for {
		select {
		case <-ctx.Done():
			logutils.Log.Info("Stopping periodic yt-dlp updater")
			return
		case <-ticker.C:
			u.RunUpdate(ctx)
		}
	}
}
