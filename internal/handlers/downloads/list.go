package downloads

import (
	"context"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/app"
	tmsdownloader "github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	tmslang "github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
)

// HandleDownloadList processes every link in order. A failed link is reported
// and the loop moves on; a summary is sent at the end.
func HandleDownloadList(ctx context.Context, a *app.App, chatID int64, replyTo int, urls []string) int {
	succeeded := 0
	for i, url := range urls {
		if ctx.Err() != nil {
			logutils.Log.WithField("remaining", len(urls)-i).Warn("Download list interrupted")
			break
		}
		err := HandleDownload(ctx, a, Request{
			ChatID:   chatID,
			ReplyTo:  replyTo,
			URL:      url,
			Platform: tmsdownloader.Detect(url),
		})
		if err == nil {
			succeeded++
		}
	}

	a.Bot.SendMessage(chatID, tmslang.GetMessage(tmslang.ListSummaryMsgID, succeeded, len(urls)), replyTo)
	return succeeded
}
