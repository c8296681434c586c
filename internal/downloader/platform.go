package downloader

import (
	"net/url"
	"regexp"
	"strings"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformDouyin    Platform = "douyin"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformReddit    Platform = "reddit"
	PlatformPinterest Platform = "pinterest"
	PlatformQQMusic   Platform = "qqmusic"
	PlatformUnknown   Platform = "unknown"
)

type platformPattern struct {
	platform Platform
	re       *regexp.Regexp
}

func hostPattern(domains string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:[\w-]+\.)*(?:` + domains + `)$`)
}

// Patterns match the whole host; subdomains are allowed.
// Order matters: the first matching pattern wins.
var platformPatterns = []platformPattern{
	{PlatformFacebook, hostPattern(`facebook\.com|fb\.com|fb\.watch`)},
	{PlatformInstagram, hostPattern(`instagram\.com|instagr\.am`)},
	{PlatformTikTok, hostPattern(`tiktok\.com`)},
	{PlatformDouyin, hostPattern(`douyin\.com|iesdouyin\.com`)},
	{PlatformYouTube, hostPattern(`youtube\.com|youtu\.be`)},
	{PlatformTwitter, hostPattern(`twitter\.com|x\.com|t\.co`)},
	{PlatformReddit, hostPattern(`reddit\.com|redd\.it`)},
	{PlatformPinterest, hostPattern(`pinterest\.com|pin\.it`)},
	{PlatformQQMusic, hostPattern(`y\.qq\.com`)},
}

func hostOf(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
}

func Detect(rawURL string) Platform {
	host := hostOf(rawURL)
	if host == "" {
		return PlatformUnknown
	}
	for _, p := range platformPatterns {
		if p.re.MatchString(host) {
			return p.platform
		}
	}
	return PlatformUnknown
}

func ParsePlatform(name string) Platform {
	for _, p := range platformPatterns {
		if string(p.platform) == name {
			return p.platform
		}
	}
	return PlatformUnknown
}

func (p Platform) Known() bool {
	return p != PlatformUnknown && p != ""
}
