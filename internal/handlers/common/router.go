package common

import (
	"context"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/app"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/handlers/callbacks"
	tmsdownloads "github.com/NikitaDmitryuk/telegram-media-downloader/internal/handlers/downloads"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func Router(ctx context.Context, a *app.App, update *tgbotapi.Update) {
	defer RecoverMiddleware(update)

	LoggingMiddleware(update)

	if query := update.CallbackQuery; query != nil {
		if query.Message != nil && !a.Limiter.Allow(query.Message.Chat.ID) {
			a.Bot.AnswerCallbackQuery(query.ID, lang.GetMessage(lang.RateLimitedMsgID))
			return
		}
		callbacks.HandleCallbackQuery(ctx, a, query)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		handleCommand(ctx, a, update.Message)
		return
	}

	handleMessage(ctx, a, update.Message)
}

func handleCommand(ctx context.Context, a *app.App, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.StartMsgID), 0)
	case "download", "dl":
		urls := MessageURLs(message)
		if len(urls) == 0 {
			urls = MessageURLs(message.ReplyToMessage)
		}
		downloadSingle(ctx, a, message, urls)
	case "dlreply":
		downloadSingle(ctx, a, message, MessageURLs(message.ReplyToMessage))
	case "downloadlist", "dllist", "dlall":
		urls := MessageURLs(message)
		if len(urls) == 0 {
			urls = MessageURLs(message.ReplyToMessage)
		}
		downloadList(ctx, a, message, urls)
	default:
		logutils.Log.WithField("command", message.Command()).Debug("Ignoring unknown command")
	}
}

// handleMessage reacts to plain messages carrying a supported link, either in
// the message itself or in the message it replies to.
func handleMessage(ctx context.Context, a *app.App, message *tgbotapi.Message) {
	urls := MessageURLs(message)
	if len(urls) == 0 && message.ReplyToMessage != nil {
		urls = MessageURLs(message.ReplyToMessage)
	}

	url, platform, ok := SelectURL(urls, false)
	if !ok {
		return
	}
	if !allow(a, message) {
		return
	}

	_ = tmsdownloads.HandleDownload(ctx, a, tmsdownloads.Request{
		ChatID:   message.Chat.ID,
		ReplyTo:  message.MessageID,
		URL:      url,
		Platform: platform,
	})
}

func downloadSingle(ctx context.Context, a *app.App, message *tgbotapi.Message, urls []string) {
	url, platform, ok := SelectURL(urls, true)
	if !ok {
		a.Bot.SendMessage(message.Chat.ID, lang.GetMessage(lang.NoURLMsgID), message.MessageID)
		return
	}
	if !allow(a, message) {
		return
	}

	_ = tmsdownloads.HandleDownload(ctx, a, tmsdownloads.Request{
		ChatID:   message.Chat.ID,
		ReplyTo:  message.MessageID,
		URL:      url,
		Platform: platform,
	})
}

func downloadList(ctx context.Context, a *app.App, message *tgbotapi.Message, urls []string) {
	if len(urls) == 0 {
		a.Bot.SendMessage(message.Chat.ID, lang.GetMessage(lang.NoURLMsgID), message.MessageID)
		return
	}
	if !allow(a, message) {
		return
	}

	tmsdownloads.HandleDownloadList(ctx, a, message.Chat.ID, message.MessageID, urls)
}

func allow(a *app.App, message *tgbotapi.Message) bool {
	if a.Limiter.Allow(message.Chat.ID) {
		return true
	}
	a.Bot.SendMessage(message.Chat.ID, lang.GetMessage(lang.RateLimitedMsgID), message.MessageID)
	return false
}
