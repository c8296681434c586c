package callbacks

import (
	"context"
	"errors"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/app"
	tmsdownloader "github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/handlers/downloads"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/ui"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func HandleCallbackQuery(ctx context.Context, a *app.App, query *tgbotapi.CallbackQuery) {
	if !ui.IsConvertAudio(query.Data) {
		a.Bot.AnswerCallbackQuery(query.ID, "")
		return
	}
	handleConvertAudio(ctx, a, query)
}

func handleConvertAudio(ctx context.Context, a *app.App, query *tgbotapi.CallbackQuery) {
	message := query.Message
	if message == nil {
		a.Bot.AnswerCallbackQuery(query.ID, "")
		return
	}
	chatID := message.Chat.ID

	payload, ok := ui.ParseConvertAudio(query.Data)
	if !ok {
		logutils.Log.WithField("data", query.Data).Warn("Malformed convert audio callback")
		a.Bot.AnswerCallbackQuery(query.ID, "")
		removeKeyboard(a, chatID, message.MessageID)
		return
	}

	if payload.CacheKey != "" {
		link, err := a.Links.GetLink(ctx, payload.CacheKey)
		if err != nil {
			if !errors.Is(err, utils.ErrLinkExpired) {
				logutils.Log.WithError(err).Error("Failed to resolve callback link")
			}
			a.Bot.AnswerCallbackQuery(query.ID, lang.GetMessage(lang.LinkExpiredMsgID))
			removeKeyboard(a, chatID, message.MessageID)
			return
		}
		payload.URL = link.URL
		payload.Platform = tmsdownloader.ParsePlatform(link.Platform)
	}

	a.Bot.AnswerCallbackQuery(query.ID, lang.GetMessage(lang.ConvertingAudioMsgID))

	logutils.Log.WithFields(map[string]any{
		"chat_id":  chatID,
		"url":      payload.URL,
		"platform": payload.Platform,
	}).Info("Converting to audio")

	_ = downloads.HandleDownload(ctx, a, downloads.Request{
		ChatID:    chatID,
		ReplyTo:   message.MessageID,
		URL:       payload.URL,
		Platform:  payload.Platform,
		AudioOnly: true,
	})
}

func removeKeyboard(a *app.App, chatID int64, messageID int) {
	if err := a.Bot.RemoveKeyboard(chatID, messageID); err != nil {
		logutils.Log.WithError(err).Debug("Keyboard was not removed")
	}
}
