package testutils

import (
	"sync"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/bot"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MockMessage captures a single message sent by MockBot.
type MockMessage struct {
	ChatID  int64
	Text    string
	ReplyTo int
}

// MockFile captures a single upload made by MockBot.
type MockFile struct {
	ChatID   int64
	ReplyTo  int
	Path     string
	Kind     bot.MediaKind
	Caption  string
	Keyboard *tgbotapi.InlineKeyboardMarkup
	// Existed is true when the file was on disk at the moment of the upload.
	Existed bool
}

// MockBot implements bot.Service for testing.
type MockBot struct {
	mu sync.Mutex

	SentMessages     []MockMessage
	SentFiles        []MockFile
	AnsweredQueries  []string
	RemovedKeyboards []int

	// SendFileError, if set, is returned by SendFile.
	SendFileError error
}

var _ bot.Service = (*MockBot)(nil)

func (m *MockBot) SendMessage(chatID int64, text string, replyTo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = append(m.SentMessages, MockMessage{ChatID: chatID, Text: text, ReplyTo: replyTo})
}

func (m *MockBot) SendFile(
	chatID int64,
	replyTo int,
	path, caption string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendFileError != nil {
		return m.SendFileError
	}
	m.SentFiles = append(m.SentFiles, MockFile{
		ChatID:   chatID,
		ReplyTo:  replyTo,
		Path:     path,
		Kind:     bot.KindOf(path),
		Caption:  caption,
		Keyboard: keyboard,
		Existed:  fileExists(path),
	})
	return nil
}

func (m *MockBot) AnswerCallbackQuery(callbackID, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnsweredQueries = append(m.AnsweredQueries, callbackID)
}

func (m *MockBot) RemoveKeyboard(_ int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovedKeyboards = append(m.RemovedKeyboards, messageID)
	return nil
}

func (m *MockBot) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockMessage(nil), m.SentMessages...)
}

func (m *MockBot) Files() []MockFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockFile(nil), m.SentFiles...)
}

// GetLastMessage returns the most recently sent message, or nil if none.
func (m *MockBot) GetLastMessage() *MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return nil
	}
	msg := m.SentMessages[len(m.SentMessages)-1]
	return &msg
}
