package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	originalErr := errors.New("original error")
	ctx := map[string]any{
		"key1": "value1",
		"key2": 123,
	}

	wrappedErr := WrapError(originalErr, "wrapped message", ctx)

	require.ErrorIs(t, wrappedErr, originalErr)
	assert.Equal(t, "wrapped message: original error", wrappedErr.Error())

	var wrappedError *WrappedError
	require.ErrorAs(t, wrappedErr, &wrappedError)
	assert.Equal(t, "wrapped message", wrappedError.Message)
	assert.Len(t, wrappedError.Context, 2)
}

func TestWrappedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		expected string
	}{
		{
			name:     "with message",
			err:      errors.New("test error"),
			message:  "wrapper message",
			expected: "wrapper message: test error",
		},
		{
			name:     "without message",
			err:      errors.New("test error"),
			message:  "",
			expected: "test error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := &WrappedError{Err: tt.err, Message: tt.message}
			assert.Equal(t, tt.expected, wrapped.Error())
		})
	}
}

func TestRootError(t *testing.T) {
	root := errors.New("root cause")
	err := fmt.Errorf("outer: %w", WrapError(root, "middle", nil))

	assert.Equal(t, root, RootError(err))
	assert.Nil(t, RootError(nil))
}

func TestDownloadErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error uses root cause",
			err:      fmt.Errorf("download %s: %w", "x", ErrUnsupportedURL),
			expected: "unsupported URL",
		},
		{
			name: "yt-dlp output keeps last ERROR line",
			err: fmt.Errorf("yt-dlp: %w", errors.New(
				"[youtube] abc: Downloading webpage\nERROR: [youtube] abc: Video unavailable\nmore output")),
			expected: "[youtube] abc: Video unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DownloadErrorMessage(tt.err))
		})
	}
}

func TestDownloadErrorMessage_Truncates(t *testing.T) {
	msg := DownloadErrorMessage(errors.New(strings.Repeat("x", 1000)))
	assert.True(t, strings.HasSuffix(msg, "..."))
	assert.Len(t, msg, maxErrorMessageLength+3)
}
