package utils

import (
	"errors"
	"strings"
)

var (
	ErrInvalidURL         = errors.New("invalid URL provided")
	ErrUnsupportedURL     = errors.New("unsupported URL")
	ErrDownloadFailed     = errors.New("download failed")
	ErrNoFiles            = errors.New("no files downloaded")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUploadFailed       = errors.New("upload failed")
	ErrLinkExpired        = errors.New("callback link expired")
	ErrConfigurationError = errors.New("configuration error")
)

type WrappedError struct {
	Err     error
	Message string
	Context map[string]any
}

func (w *WrappedError) Error() string {
	if w.Message != "" {
		return w.Message + ": " + w.Err.Error()
	}
	return w.Err.Error()
}

func (w *WrappedError) Unwrap() error {
	return w.Err
}

func WrapError(err error, message string, ctx map[string]any) error {
	return &WrappedError{
		Err:     err,
		Message: message,
		Context: ctx,
	}
}

// RootError returns the innermost error in the chain (for user-facing messages without wrapper text).
func RootError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		err = e
	}
	return err
}

const maxErrorMessageLength = 300

// DownloadErrorMessage returns a short human-readable reason for a failed job.
// yt-dlp reports the useful part on the last "ERROR:" line of its output.
func DownloadErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.LastIndex(msg, "ERROR:"); idx >= 0 {
		msg = strings.TrimSpace(msg[idx+len("ERROR:"):])
		if nl := strings.IndexByte(msg, '\n'); nl >= 0 {
			msg = msg[:nl]
		}
	} else {
		msg = RootError(err).Error()
	}
	if len(msg) > maxErrorMessageLength {
		msg = msg[:maxErrorMessageLength] + "..."
	}
	return msg
}
