package ytdlp

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/lrstanley/go-ytdlp"
)

const (
	videoFormat       = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/bv*+ba/b"
	shortVideoFormat  = "best[ext=mp4]/best[ext=webm]/best[ext=mov]/best[ext=avi]/best[ext=mkv]/best"
	audioFormat       = "bestaudio/best"
	audioCodec        = "mp3"
	audioQuality      = "192K"
	mergeFormat       = "mp4"
	youtubeClientArgs = "youtube:player_client=android"
	outputTemplate    = "%(title)s.%(ext)s"
	progressInterval  = 5 * time.Second
)

// options is the yt-dlp invocation for a single job.
type options struct {
	Output            string
	Format            string
	MergeOutputFormat string
	ExtractAudio      bool
	AudioFormat       string
	AudioQuality      string
	ExtractorArgs     string
	GeoBypass         bool
	Cookies           string
	SocketTimeout     time.Duration
	Retries           int
}

func buildOptions(job *downloader.Job, cfg *tmsconfig.Config) options {
	opts := options{
		Output:        filepath.Join(job.Dir, outputTemplate),
		Cookies:       cfg.CookiesFileIfExists(),
		SocketTimeout: cfg.YtdlpSettings.SocketTimeout,
		Retries:       cfg.YtdlpSettings.Retries,
	}

	switch {
	case job.AudioOnly:
		opts.Format = audioFormat
		opts.ExtractAudio = true
		opts.AudioFormat = audioCodec
		opts.AudioQuality = audioQuality
	case job.Platform == downloader.PlatformTikTok || job.Platform == downloader.PlatformDouyin:
		opts.Format = shortVideoFormat
	default:
		opts.Format = videoFormat
		opts.MergeOutputFormat = mergeFormat
	}

	switch job.Platform {
	case downloader.PlatformYouTube:
		opts.ExtractorArgs = youtubeClientArgs
		opts.GeoBypass = true
	case downloader.PlatformFacebook, downloader.PlatformInstagram:
		opts.GeoBypass = true
	}

	return opts
}

func (o options) command(binaryPath string) *ytdlp.Command {
	cmd := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		ConcurrentFragments(1).
		Output(o.Output).
		Format(o.Format)

	if binaryPath != "" {
		cmd.SetExecutable(binaryPath)
	}
	if o.MergeOutputFormat != "" {
		cmd.MergeOutputFormat(o.MergeOutputFormat)
	}
	if o.ExtractAudio {
		cmd.ExtractAudio().AudioFormat(o.AudioFormat).AudioQuality(o.AudioQuality)
	}
	if o.ExtractorArgs != "" {
		cmd.ExtractorArgs(o.ExtractorArgs)
	}
	if o.GeoBypass {
		cmd.GeoBypass()
	}
	if o.Cookies != "" {
		cmd.Cookies(o.Cookies)
	}
	if o.SocketTimeout > 0 {
		cmd.SocketTimeout(o.SocketTimeout.Seconds())
	}
	if o.Retries > 0 {
		cmd.Retries(strconv.Itoa(o.Retries))
	}
	return cmd
}

type YTDLPDownloader struct {
	config *tmsconfig.Config
	titles TitleResolver
}

var _ downloader.Downloader = (*YTDLPDownloader)(nil)

func NewYTDLPDownloader(config *tmsconfig.Config, titles TitleResolver) *YTDLPDownloader {
	return &YTDLPDownloader{config: config, titles: titles}
}

func (d *YTDLPDownloader) Download(ctx context.Context, job *downloader.Job) (*downloader.Result, error) {
	opts := buildOptions(job, d.config)
	cmd := opts.command(d.config.YtdlpSettings.BinaryPath)

	if logutils.IsDebug() {
		cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			logutils.Log.WithFields(map[string]any{
				"job_id":     job.ID,
				"downloaded": update.DownloadedBytes,
				"total":      update.TotalBytes,
			}).Debug("yt-dlp progress")
		})
	}

	logutils.Log.WithFields(map[string]any{
		"job_id":   job.ID,
		"url":      job.URL,
		"platform": job.Platform,
		"audio":    job.AudioOnly,
		"cookies":  opts.Cookies != "",
	}).Info("Starting yt-dlp download")

	res, err := cmd.Run(ctx, job.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(utils.ErrDownloadFailed, "yt-dlp canceled", map[string]any{"url": job.URL})
		}
		detail := err.Error()
		if res != nil && strings.TrimSpace(res.Stderr) != "" {
			detail = res.Stderr
		}
		logutils.Log.WithError(err).WithField("url", job.URL).Error("yt-dlp download failed")
		return nil, fmt.Errorf("%w: %s", utils.ErrDownloadFailed, detail)
	}

	files, err := downloader.CollectFiles(job.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, utils.ErrNoFiles
	}

	result := &downloader.Result{Files: files}
	if d.titles != nil && job.Platform == downloader.PlatformYouTube && !job.AudioOnly {
		result.Title = d.titles.Title(ctx, job.URL)
	}

	logutils.Log.WithFields(map[string]any{
		"job_id": job.ID,
		"files":  len(files),
	}).Info("yt-dlp download completed")
	return result, nil
}
