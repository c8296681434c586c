package factory

import (
	"context"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader/direct"
	ytdlp "github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader/video"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
)

// Router sends each job to the downloader that can handle it: links from a
// known platform and audio conversions go to yt-dlp, anything else is fetched
// directly.
type Router struct {
	video  downloader.Downloader
	direct downloader.Downloader
}

var _ downloader.Downloader = (*Router)(nil)

func NewRouter(videoDownloader, directDownloader downloader.Downloader) *Router {
	return &Router{video: videoDownloader, direct: directDownloader}
}

func NewDownloader(cfg *tmsconfig.Config) *Router {
	return NewRouter(
		ytdlp.NewYTDLPDownloader(cfg, ytdlp.NewYouTubeTitles()),
		direct.NewDirectDownloader(cfg),
	)
}

func (r *Router) pick(job *downloader.Job) downloader.Downloader {
	if job.AudioOnly || job.Platform.Known() {
		return r.video
	}
	return r.direct
}

func (r *Router) Download(ctx context.Context, job *downloader.Job) (*downloader.Result, error) {
	return r.pick(job).Download(ctx, job)
}

func RunUpdatersOnStart(ctx context.Context, cfg *tmsconfig.Config) {
	if !cfg.YtdlpSettings.AutoUpdate {
		return
	}
	// Install is synchronous: the resolved path must be set before downloads start.
	path, err := ytdlp.Install(ctx)
	if err != nil {
		logutils.Log.WithError(err).Warn("yt-dlp install failed, using configured binary")
		return
	}
	cfg.YtdlpSettings.BinaryPath = path
}

func StartPeriodicUpdaters(ctx context.Context, cfg *tmsconfig.Config) {
	if cfg.YtdlpSettings.UpdateInterval > 0 {
		go ytdlp.StartPeriodicUpdater(ctx, cfg.YtdlpSettings.UpdateInterval, ytdlp.NewUpdater(cfg.YtdlpSettings.BinaryPath))
	}
}
