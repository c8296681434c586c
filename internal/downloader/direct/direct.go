package direct

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/go-resty/resty/v2"
)

const (
	requestTimeout  = 5 * time.Minute
	retryCount      = 2
	defaultBaseName = "media"
	userAgent       = "Mozilla/5.0 (compatible; telegram-media-downloader)"
)

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}._ -]+`)

// DirectDownloader fetches links that point straight at an image, video or audio file.
type DirectDownloader struct {
	client  *resty.Client
	maxSize int64
}

var _ downloader.Downloader = (*DirectDownloader)(nil)

func NewDirectDownloader(config *tmsconfig.Config) *DirectDownloader {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetRetryCount(retryCount).
		SetHeader("User-Agent", userAgent)
	return &DirectDownloader{
		client:  client,
		maxSize: config.DownloadSettings.MaxUploadSize,
	}
}

func isMediaContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "video/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/")
}

func (d *DirectDownloader) Download(ctx context.Context, job *downloader.Job) (*downloader.Result, error) {
	head, err := d.client.R().SetContext(ctx).Head(job.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDownloadFailed, err)
	}
	// Some hosts refuse HEAD; the GET below checks the content type again.
	if head.StatusCode() != http.StatusMethodNotAllowed {
		if head.IsError() {
			return nil, fmt.Errorf("%w: HTTP %d", utils.ErrDownloadFailed, head.StatusCode())
		}
		if !isMediaContentType(head.Header().Get("Content-Type")) {
			return nil, utils.WrapError(downloader.ErrNotMedia, "direct link rejected", map[string]any{
				"url":          job.URL,
				"content_type": head.Header().Get("Content-Type"),
			})
		}
		if head.RawResponse != nil && head.RawResponse.ContentLength > d.maxSize {
			return nil, utils.ErrFileTooLarge
		}
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(job.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDownloadFailed, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %d", utils.ErrDownloadFailed, resp.StatusCode())
	}
	contentType := resp.Header().Get("Content-Type")
	if !isMediaContentType(contentType) {
		return nil, utils.WrapError(downloader.ErrNotMedia, "direct link rejected", map[string]any{
			"url":          job.URL,
			"content_type": contentType,
		})
	}

	target := filepath.Join(job.Dir, fileName(job.URL, contentType))
	written, err := d.save(target, body)
	if err != nil {
		return nil, err
	}

	logutils.Log.WithFields(map[string]any{
		"job_id": job.ID,
		"url":    job.URL,
		"bytes":  written,
	}).Info("Direct download completed")

	return &downloader.Result{Files: []string{target}}, nil
}

func (d *DirectDownloader) save(target string, body io.Reader) (int64, error) {
	file, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	written, copyErr := io.Copy(file, io.LimitReader(body, d.maxSize+1))
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		os.Remove(target)
		return 0, fmt.Errorf("%w: %v", utils.ErrDownloadFailed, copyErr)
	case closeErr != nil:
		os.Remove(target)
		return 0, fmt.Errorf("close file: %w", closeErr)
	case written > d.maxSize:
		os.Remove(target)
		return 0, utils.ErrFileTooLarge
	}
	return written, nil
}

// fileName derives a safe local name from the URL path, adding an extension
// from the content type when the path has none.
func fileName(rawURL, contentType string) string {
	base := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		base = path.Base(parsed.Path)
	}
	base = strings.TrimSpace(unsafeNameChars.ReplaceAllString(base, "_"))
	if base == "" || base == "." || base == "/" || base == "_" {
		base = defaultBaseName
	}
	if filepath.Ext(base) == "" {
		base += extensionFor(contentType)
	}
	return base
}

var knownExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"audio/mpeg":      ".mp3",
	"audio/mp4":       ".m4a",
	"audio/ogg":       ".ogg",
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := knownExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
