package downloader

import "errors"

// ErrNotMedia is returned by the direct downloader when a link does not point at a media file.
var ErrNotMedia = errors.New("link does not point at a media file")
