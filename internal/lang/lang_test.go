package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessage(t *testing.T) {
	t.Cleanup(func() { SetupLang(defaultLang) })

	SetupLang("en")
	assert.Equal(t, "Finished: 1 of 2 links downloaded", GetMessage(ListSummaryMsgID, 1, 2))

	SetupLang("vi")
	assert.Equal(t, "Bot tải file sẵn sàng. Gửi link hoặc dùng /download, /downloadlist.", GetMessage(StartMsgID))
	assert.Equal(t, "HD Download", GetMessage(HDDownloadButtonMsgID), "missing translation falls back to English")

	assert.Equal(t, "missing_id", GetMessage(MessageID("missing_id")))
}

func TestSetupLang_Unsupported(t *testing.T) {
	t.Cleanup(func() { SetupLang(defaultLang) })

	SetupLang("xx")
	assert.Equal(t, defaultLang, lang)
}

func TestEveryMessageHasEnglish(t *testing.T) {
	for id, translations := range messages {
		_, ok := translations[defaultLang]
		assert.True(t, ok, "message %s has no English text", id)
	}
}

func TestSetupLang_LocaleStyle(t *testing.T) {
	t.Cleanup(func() { SetupLang(defaultLang) })

	SetupLang("vi_VN.UTF-8")
	assert.Equal(t, "vi", lang)
}
