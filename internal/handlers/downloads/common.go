package downloads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/app"
	tmsdownloader "github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	tmslang "github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/ui"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot API caption limit, in characters.
const maxCaptionLength = 1024

// Request describes one link to download and where to reply with the result.
type Request struct {
	ChatID    int64
	ReplyTo   int
	URL       string
	Platform  tmsdownloader.Platform
	AudioOnly bool
}

// HandleDownload downloads req.URL and uploads every produced file to the chat.
// Failures are reported to the chat; the returned error is for callers that count outcomes.
func HandleDownload(ctx context.Context, a *app.App, req Request) error {
	log := logutils.Log.WithFields(map[string]any{
		"chat_id":  req.ChatID,
		"url":      req.URL,
		"platform": req.Platform,
		"audio":    req.AudioOnly,
	})

	job, err := tmsdownloader.NewJob(a.Config.MediaDir(), req.URL, req.Platform, req.AudioOnly)
	if err != nil {
		log.WithError(err).Error("Failed to prepare download job")
		sendDownloadError(a, req, err)
		return err
	}
	defer job.Cleanup()

	downloadCtx, cancel := context.WithTimeout(ctx, a.Config.DownloadSettings.DownloadTimeout)
	defer cancel()

	result, err := a.Downloader.Download(downloadCtx, job)
	if err != nil {
		log.WithError(err).Warn("Download failed")
		sendDownloadError(a, req, err)
		return err
	}

	keyboard := ui.ActionKeyboard(ctx, a.Links, req.URL, req.Platform)

	sent := 0
	var lastErr error
	for _, file := range result.Files {
		if err := uploadFile(a, req, file, result.Title, keyboard); err != nil {
			lastErr = err
			continue
		}
		sent++
	}

	log.WithFields(map[string]any{
		"files": len(result.Files),
		"sent":  sent,
	}).Info("Download job finished")

	if sent == 0 {
		if lastErr == nil {
			lastErr = utils.ErrNoFiles
		}
		return lastErr
	}
	return nil
}

// uploadFile sends one file and removes it from disk whatever the outcome.
func uploadFile(a *app.App, req Request, path, title string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logutils.Log.WithError(err).WithField("path", path).Warn("Failed to remove uploaded file")
		}
	}()

	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		a.Bot.SendMessage(req.ChatID, tmslang.GetMessage(tmslang.UploadFailedMsgID, name, err.Error()), req.ReplyTo)
		return fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}

	maxSize := a.Config.DownloadSettings.MaxUploadSize
	if info.Size() > maxSize {
		logutils.Log.WithFields(map[string]any{
			"path":  path,
			"size":  info.Size(),
			"limit": maxSize,
		}).Warn("File exceeds upload limit")
		a.Bot.SendMessage(req.ChatID, tmslang.GetMessage(tmslang.FileTooLargeMsgID,
			name, humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxSize))), req.ReplyTo)
		return utils.ErrFileTooLarge
	}

	caption := title
	if caption == "" {
		caption = tmsdownloader.TitleFromPath(path)
	}

	if err := a.Bot.SendFile(req.ChatID, req.ReplyTo, path, truncate(caption, maxCaptionLength), keyboard); err != nil {
		a.Bot.SendMessage(req.ChatID, tmslang.GetMessage(tmslang.UploadFailedMsgID, name, err.Error()), req.ReplyTo)
		return fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	return nil
}

func sendDownloadError(a *app.App, req Request, err error) {
	var text string
	switch {
	case errors.Is(err, tmsdownloader.ErrNotMedia), errors.Is(err, utils.ErrUnsupportedURL):
		text = tmslang.GetMessage(tmslang.UnsupportedURLMsgID, req.URL)
	case errors.Is(err, utils.ErrNoFiles):
		text = tmslang.GetMessage(tmslang.NoFilesMsgID, req.URL)
	case errors.Is(err, utils.ErrFileTooLarge):
		limit := humanize.IBytes(uint64(a.Config.DownloadSettings.MaxUploadSize))
		text = tmslang.GetMessage(tmslang.FileTooLargeMsgID, req.URL, "> "+limit, limit)
	default:
		text = tmslang.GetMessage(tmslang.DownloadFailedMsgID, req.URL, utils.DownloadErrorMessage(err))
	}
	a.Bot.SendMessage(req.ChatID, text, req.ReplyTo)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
