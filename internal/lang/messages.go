package lang

type MessageID string

const (
	StartMsgID              MessageID = "start"
	NoURLMsgID              MessageID = "no_url"
	UnsupportedURLMsgID     MessageID = "unsupported_url"
	DownloadFailedMsgID     MessageID = "download_failed"
	NoFilesMsgID            MessageID = "no_files"
	FileTooLargeMsgID       MessageID = "file_too_large"
	UploadFailedMsgID       MessageID = "upload_failed"
	ListSummaryMsgID        MessageID = "list_summary"
	RateLimitedMsgID        MessageID = "rate_limited"
	ConvertingAudioMsgID    MessageID = "converting_audio"
	LinkExpiredMsgID        MessageID = "link_expired"
	HDDownloadButtonMsgID   MessageID = "button_hd_download"
	OriginURLButtonMsgID    MessageID = "button_origin_url"
	ConvertAudioButtonMsgID MessageID = "button_convert_audio"
)

var supported = map[string]struct{}{
	"en": {},
	"vi": {},
}

var messages = map[MessageID]map[string]string{
	StartMsgID: {
		"en": "Download bot is ready. Send a link or use /download, /downloadlist.",
		"vi": "Bot tải file sẵn sàng. Gửi link hoặc dùng /download, /downloadlist.",
	},
	NoURLMsgID: {
		"en": "No link found. Usage: /download <url> or /downloadlist <url> <url>...",
		"vi": "Không tìm thấy link. Cách dùng: /download <url> hoặc /downloadlist <url> <url>...",
	},
	UnsupportedURLMsgID: {
		"en": "This link is not supported: %s",
		"vi": "Link này không được hỗ trợ: %s",
	},
	DownloadFailedMsgID: {
		"en": "Failed to download %s: %s",
		"vi": "Tải thất bại %s: %s",
	},
	NoFilesMsgID: {
		"en": "Nothing was downloaded from %s",
		"vi": "Không tải được file nào từ %s",
	},
	FileTooLargeMsgID: {
		"en": "%s is too large to send (%s, limit %s)",
		"vi": "%s quá lớn để gửi (%s, giới hạn %s)",
	},
	UploadFailedMsgID: {
		"en": "Failed to send %s: %s",
		"vi": "Gửi thất bại %s: %s",
	},
	ListSummaryMsgID: {
		"en": "Finished: %d of %d links downloaded",
		"vi": "Hoàn tất: đã tải %d trên %d link",
	},
	RateLimitedMsgID: {
		"en": "Too many requests, please slow down",
		"vi": "Quá nhiều yêu cầu, vui lòng chờ một chút",
	},
	ConvertingAudioMsgID: {
		"en": "Converting to audio...",
		"vi": "Đang chuyển sang audio...",
	},
	LinkExpiredMsgID: {
		"en": "This button has expired",
		"vi": "Nút này đã hết hạn",
	},
	HDDownloadButtonMsgID: {
		"en": "HD Download",
	},
	OriginURLButtonMsgID: {
		"en": "Origin URL",
	},
	ConvertAudioButtonMsgID: {
		"en": "Convert to Audio",
		"vi": "Chuyển sang Audio",
	},
}
