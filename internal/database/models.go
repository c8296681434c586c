package database

import "time"

// CallbackLink keeps a URL whose inline callback payload would exceed the
// 64-byte Bot API limit. Key is referenced from the button instead.
type CallbackLink struct {
	Key      string    `gorm:"primaryKey;size:16"`
	URL      string    `gorm:"not null"`
	Platform string    `gorm:"not null"`
	StoredAt time.Time `gorm:"index"`
}
