package bot

import (
	"path/filepath"
	"strings"
)

type MediaKind string

const (
	KindVideo    MediaKind = "video"
	KindPhoto    MediaKind = "photo"
	KindAudio    MediaKind = "audio"
	KindDocument MediaKind = "document"
)

var extensionKinds = map[string]MediaKind{
	".mp4":  KindVideo,
	".avi":  KindVideo,
	".mov":  KindVideo,
	".mkv":  KindVideo,
	".jpg":  KindPhoto,
	".jpeg": KindPhoto,
	".png":  KindPhoto,
	".gif":  KindPhoto,
	".webp": KindPhoto,
	".mp3":  KindAudio,
	".m4a":  KindAudio,
	".flac": KindAudio,
	".wav":  KindAudio,
	".aac":  KindAudio,
	".ogg":  KindAudio,
}

// KindOf maps a file name to the Bot API upload method used for it.
func KindOf(path string) MediaKind {
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}
	return KindDocument
}
