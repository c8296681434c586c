package ui

import (
	"context"
	"strings"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/database"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	tmslang "github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	ConvertAudioPrefix       = "convert_audio"
	ConvertAudioCachedPrefix = "convert_audio_cached"
	// Bot API limit for callback_data, in bytes.
	MaxCallbackDataLength = 64
)

// ConvertAudioPayload is the decoded data of a "Convert to Audio" button.
type ConvertAudioPayload struct {
	URL      string
	Platform downloader.Platform
	// CacheKey is set when the URL has to be looked up in the link store.
	CacheKey string
}

// IsConvertAudio reports whether callback data belongs to the audio button.
func IsConvertAudio(data string) bool {
	return strings.HasPrefix(data, ConvertAudioPrefix+"|") || strings.HasPrefix(data, ConvertAudioCachedPrefix+"|")
}

// ParseConvertAudio decodes callback data built by ConvertAudioData.
func ParseConvertAudio(data string) (ConvertAudioPayload, bool) {
	if key, ok := strings.CutPrefix(data, ConvertAudioCachedPrefix+"|"); ok {
		if key == "" {
			return ConvertAudioPayload{}, false
		}
		return ConvertAudioPayload{CacheKey: key}, true
	}
	rest, ok := strings.CutPrefix(data, ConvertAudioPrefix+"|")
	if !ok {
		return ConvertAudioPayload{}, false
	}
	platform, url, ok := strings.Cut(rest, "|")
	if !ok || url == "" {
		return ConvertAudioPayload{}, false
	}
	return ConvertAudioPayload{URL: url, Platform: downloader.ParsePlatform(platform)}, true
}

// ConvertAudioData encodes the audio button payload inline when it fits into
// the callback limit and stores the URL in links otherwise.
func ConvertAudioData(ctx context.Context, links database.LinkStore, url string, platform downloader.Platform) (string, error) {
	data := ConvertAudioPrefix + "|" + string(platform) + "|" + url
	if len(data) <= MaxCallbackDataLength {
		return data, nil
	}
	key, err := links.SaveLink(ctx, url, string(platform))
	if err != nil {
		return "", err
	}
	return ConvertAudioCachedPrefix + "|" + key, nil
}

// ActionKeyboard is attached to every uploaded file.
func ActionKeyboard(ctx context.Context, links database.LinkStore, url string, platform downloader.Platform) *tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(tmslang.GetMessage(tmslang.HDDownloadButtonMsgID), url),
			tgbotapi.NewInlineKeyboardButtonURL(tmslang.GetMessage(tmslang.OriginURLButtonMsgID), url),
		),
	}

	data, err := ConvertAudioData(ctx, links, url, platform)
	if err != nil {
		logutils.Log.WithError(err).WithField("url", url).Warn("Audio button omitted, link could not be stored")
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tmslang.GetMessage(tmslang.ConvertAudioButtonMsgID), data),
		))
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
