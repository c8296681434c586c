package common

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/bot"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	linkPattern = regexp.MustCompile(`^https?://\S+$`)
	urlPattern  = regexp.MustCompile(`https?://[^\s]+`)
)

const trailingPunctuation = `.,;:!?"')]}>`

func IsValidLink(text string) bool {
	if !linkPattern.MatchString(text) {
		return false
	}
	parsed, err := url.Parse(text)
	return err == nil && parsed.Host != ""
}

// ExtractURLs returns the links found in text followed by the targets of
// text_link entities, in order and without duplicates.
func ExtractURLs(text string, entities []tgbotapi.MessageEntity) []string {
	var urls []string
	seen := make(map[string]struct{})
	add := func(u string) {
		u = strings.TrimRight(u, trailingPunctuation)
		if !IsValidLink(u) {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, match := range urlPattern.FindAllString(text, -1) {
		add(match)
	}
	for _, entity := range entities {
		if entity.Type == "text_link" && entity.URL != "" {
			add(entity.URL)
		}
	}
	return urls
}

// MessageURLs collects links from the message text and its caption.
func MessageURLs(msg *tgbotapi.Message) []string {
	if msg == nil {
		return nil
	}
	urls := ExtractURLs(msg.Text, msg.Entities)
	if msg.Caption != "" || len(msg.CaptionEntities) > 0 {
		urls = appendUnique(urls, ExtractURLs(msg.Caption, msg.CaptionEntities)...)
	}
	return urls
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		found := false
		for _, d := range dst {
			if d == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

// IsMediaLink reports whether the URL path ends with a video, photo or audio extension.
func IsMediaLink(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return bot.KindOf(parsed.Path) != bot.KindDocument
}

// SelectURL picks the link to download: the first one from a known platform,
// otherwise the first direct media link. With explicit set, any first link is
// accepted so the user gets feedback about it.
func SelectURL(urls []string, explicit bool) (string, downloader.Platform, bool) {
	for _, u := range urls {
		if p := downloader.Detect(u); p.Known() {
			return u, p, true
		}
	}
	for _, u := range urls {
		if IsMediaLink(u) {
			return u, downloader.PlatformUnknown, true
		}
	}
	if explicit && len(urls) > 0 {
		return urls[0], downloader.PlatformUnknown, true
	}
	return "", downloader.PlatformUnknown, false
}
