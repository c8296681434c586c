package common

import (
	"runtime/debug"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func LoggingMiddleware(update *tgbotapi.Update) {
	switch {
	case update.Message != nil:
		username := ""
		if update.Message.From != nil {
			username = update.Message.From.UserName
		}
		logutils.Log.WithFields(map[string]any{
			"update_id": update.UpdateID,
			"chat_id":   update.Message.Chat.ID,
			"username":  username,
			"text":      update.Message.Text,
		}).Info("Received a new message")
	case update.CallbackQuery != nil:
		logutils.Log.WithFields(map[string]any{
			"update_id": update.UpdateID,
			"username":  update.CallbackQuery.From.UserName,
			"data":      update.CallbackQuery.Data,
		}).Info("Received a callback query")
	}
}

// RecoverMiddleware must be deferred; it keeps one failing update from killing the worker.
func RecoverMiddleware(update *tgbotapi.Update) {
	if r := recover(); r != nil {
		logutils.Log.WithFields(map[string]any{
			"update_id": update.UpdateID,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("Recovered from panic while handling update")
	}
}
