package lang

import (
	"fmt"
	"strings"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
)

const defaultLang = "en"

var lang = defaultLang

// SetupLang selects the message language. Unknown languages fall back to English.
func SetupLang(code string) {
	code = normalize(code)
	if _, ok := supported[code]; !ok {
		logutils.Log.WithField("lang", code).Warn("Unsupported language, using English")
		code = defaultLang
	}
	lang = code
}

func GetMessage(id MessageID, args ...any) string {
	if m, ok := messages[id]; ok {
		if msg, ok := m[lang]; ok {
			return fmt.Sprintf(msg, args...)
		}
		if msg, ok := m[defaultLang]; ok {
			return fmt.Sprintf(msg, args...)
		}
	}
	logutils.Log.WithField("message_id", id).Warn("Message not found")
	return string(id)
}

// normalize turns locale-style values such as "vi_VN.UTF-8" into "vi".
func normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "_.-"); idx >= 0 {
		code = code[:idx]
	}
	return code
}
