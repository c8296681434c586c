package bot

import (
	"fmt"
	"path/filepath"
	"strings"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Service is the subset of the Bot API the handlers depend on.
type Service interface {
	SendMessage(chatID int64, text string, replyTo int)
	SendFile(chatID int64, replyTo int, path, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackID, text string)
	RemoveKeyboard(chatID int64, messageID int) error
}

type Bot struct {
	Api *tgbotapi.BotAPI
}

var _ Service = (*Bot)(nil)

func InitBot(config *tmsconfig.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		logutils.Log.WithError(err).Error("Error creating bot")
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	api.Debug = logutils.IsDebug()
	logutils.Log.Infof("Authorized on account %s", api.Self.UserName)
	return &Bot{Api: api}, nil
}

func (b *Bot) SendMessage(chatID int64, text string, replyTo int) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.DisableWebPagePreview = true
	if _, err := b.Api.Send(msg); err != nil {
		logutils.Log.WithError(err).WithField("chat_id", chatID).Errorf("Message not sent: %s", text)
	}
}

// SendFile uploads a local file, choosing the Bot API method from the file extension.
func (b *Bot) SendFile(
	chatID int64,
	replyTo int,
	path, caption string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) error {
	file := tgbotapi.FilePath(path)
	kind := KindOf(path)

	var chattable tgbotapi.Chattable
	switch kind {
	case KindVideo:
		cfg := tgbotapi.NewVideo(chatID, file)
		cfg.Caption = caption
		cfg.SupportsStreaming = true
		applyReply(&cfg.BaseChat, replyTo, keyboard)
		chattable = cfg
	case KindPhoto:
		cfg := tgbotapi.NewPhoto(chatID, file)
		cfg.Caption = caption
		applyReply(&cfg.BaseChat, replyTo, keyboard)
		chattable = cfg
	case KindAudio:
		cfg := tgbotapi.NewAudio(chatID, file)
		cfg.Caption = caption
		cfg.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		applyReply(&cfg.BaseChat, replyTo, keyboard)
		chattable = cfg
	default:
		cfg := tgbotapi.NewDocument(chatID, file)
		cfg.Caption = caption
		applyReply(&cfg.BaseChat, replyTo, keyboard)
		chattable = cfg
	}

	if _, err := b.Api.Send(chattable); err != nil {
		logutils.Log.WithError(err).WithFields(map[string]any{
			"chat_id": chatID,
			"path":    path,
			"kind":    kind,
		}).Error("Failed to send file")
		return fmt.Errorf("send %s: %w", kind, err)
	}

	logutils.Log.WithFields(map[string]any{
		"chat_id": chatID,
		"path":    path,
		"kind":    kind,
	}).Info("File sent successfully")
	return nil
}

func applyReply(chat *tgbotapi.BaseChat, replyTo int, keyboard *tgbotapi.InlineKeyboardMarkup) {
	chat.ReplyToMessageID = replyTo
	chat.AllowSendingWithoutReply = true
	if keyboard != nil {
		chat.ReplyMarkup = *keyboard
	}
}

func (b *Bot) AnswerCallbackQuery(callbackID, text string) {
	if _, err := b.Api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logutils.Log.WithError(err).Error("Failed to answer callback query")
	}
}

// RemoveKeyboard strips the inline keyboard from a message the bot sent earlier.
func (b *Bot) RemoveKeyboard(chatID int64, messageID int) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.Api.Request(edit); err != nil {
		logutils.Log.WithError(err).Errorf("Failed to remove keyboard from message %d in chat %d", messageID, chatID)
		return err
	}
	return nil
}
