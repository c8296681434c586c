package ytdlp

import (
	"context"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/kkdai/youtube/v2"
)

const titleTimeout = 15 * time.Second

type TitleResolver interface {
	Title(ctx context.Context, videoURL string) string
}

// YouTubeTitles looks up video titles through the YouTube player API.
type YouTubeTitles struct {
	client youtube.Client
}

func NewYouTubeTitles() *YouTubeTitles {
	return &YouTubeTitles{}
}

// Title returns "" when the title cannot be resolved; callers fall back to the file name.
func (t *YouTubeTitles) Title(ctx context.Context, videoURL string) string {
	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	video, err := t.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		logutils.Log.WithError(err).WithField("url", videoURL).Debug("Failed to resolve YouTube title")
		return ""
	}
	return video.Title
}
