package common

import (
	"testing"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestIsValidLink(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Valid HTTP URL", "http://example.com", true},
		{"Valid HTTPS URL", "https://example.com", true},
		{"Valid URL with path", "https://example.com/path/to/resource", true},
		{"Valid URL with query parameters", "https://example.com/search?q=test&category=video", true},
		{"Valid YouTube URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"Invalid URL without protocol", "example.com", false},
		{"Invalid FTP URL", "ftp://example.com", false},
		{"Missing host", "https://", false},
		{"URL with spaces", "https://example.com/a b", false},
		{"Empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidLink(tt.input))
		})
	}
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		entities []tgbotapi.MessageEntity
		expected []string
	}{
		{
			name:     "no links",
			text:     "hello there",
			expected: nil,
		},
		{
			name:     "single link in sentence",
			text:     "look at this https://youtu.be/abc, it is great.",
			expected: []string{"https://youtu.be/abc"},
		},
		{
			name:     "several links keep order",
			text:     "https://x.com/a/status/1\nhttps://vm.tiktok.com/b https://x.com/a/status/1",
			expected: []string{"https://x.com/a/status/1", "https://vm.tiktok.com/b"},
		},
		{
			name: "text_link entity",
			text: "click here",
			entities: []tgbotapi.MessageEntity{
				{Type: "bold", Offset: 0, Length: 5},
				{Type: "text_link", Offset: 6, Length: 4, URL: "https://www.instagram.com/reel/x/"},
			},
			expected: []string{"https://www.instagram.com/reel/x/"},
		},
		{
			name:     "link in parentheses",
			text:     "(https://redd.it/abc)",
			expected: []string{"https://redd.it/abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractURLs(tt.text, tt.entities))
		})
	}
}

func TestMessageURLs_Caption(t *testing.T) {
	msg := &tgbotapi.Message{
		Caption: "source: https://pin.it/abc",
		CaptionEntities: []tgbotapi.MessageEntity{
			{Type: "text_link", Offset: 0, Length: 6, URL: "https://youtu.be/zzz"},
		},
	}
	assert.Equal(t, []string{"https://pin.it/abc", "https://youtu.be/zzz"}, MessageURLs(msg))
	assert.Nil(t, MessageURLs(nil))
}

func TestIsMediaLink(t *testing.T) {
	assert.True(t, IsMediaLink("https://cdn.example.com/clip.mp4?token=1"))
	assert.True(t, IsMediaLink("https://cdn.example.com/pic.JPG"))
	assert.True(t, IsMediaLink("https://cdn.example.com/song.mp3"))
	assert.False(t, IsMediaLink("https://example.com/article"))
	assert.False(t, IsMediaLink("https://example.com/file.zip"))
}

func TestSelectURL(t *testing.T) {
	tests := []struct {
		name     string
		urls     []string
		explicit bool
		url      string
		platform downloader.Platform
		ok       bool
	}{
		{
			name:     "known platform preferred over earlier link",
			urls:     []string{"https://example.com/news", "https://youtu.be/abc"},
			url:      "https://youtu.be/abc",
			platform: downloader.PlatformYouTube,
			ok:       true,
		},
		{
			name: "direct media link",
			urls: []string{"https://example.com/news", "https://cdn.example.com/a.mp4"},
			url:  "https://cdn.example.com/a.mp4",
			ok:   true,
		},
		{
			name: "implicit unsupported link ignored",
			urls: []string{"https://example.com/news"},
			ok:   false,
		},
		{
			name:     "explicit unsupported link kept",
			urls:     []string{"https://example.com/news"},
			explicit: true,
			url:      "https://example.com/news",
			ok:       true,
		},
		{
			name:     "nothing",
			explicit: true,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, platform, ok := SelectURL(tt.urls, tt.explicit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.url, url)
			if tt.ok {
				want := tt.platform
				if want == "" {
					want = downloader.PlatformUnknown
				}
				assert.Equal(t, want, platform)
			}
		})
	}
}

func BenchmarkExtractURLs(b *testing.B) {
	text := "check https://www.youtube.com/watch?v=dQw4w9WgXcQ and https://vm.tiktok.com/ZMabc/ please"
	for i := 0; i < b.N; i++ {
		ExtractURLs(text, nil)
	}
}
