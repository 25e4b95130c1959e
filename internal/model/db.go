package model

import "time"

// Payment is written once per completed checkout session.
type Payment struct {
	PaymentIntentID string `gorm:"primaryKey;size:64;not null"`
	SessionID       string `gorm:"size:128;uniqueIndex;not null"`
	OrderID         string `gorm:"size:64;index;not null"`
	Tier            string `gorm:"size:32;not null"`
	AmountCents     int64  `gorm:"not null"`
	Currency        string `gorm:"size:8;not null"`
	CreatedAt       time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

// ShareEvent is an analytics row written whenever a share link is opened.
type ShareEvent struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"size:64;index;not null"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:512"`
	HasAudio  bool
	HasVideo  bool
	CreatedAt time.Time
}

// StyleCount is an aggregate row for the admin dashboard.
type StyleCount struct {
	Style string `json:"style"`
	Count int64  `json:"count"`
}

func AllTables() []interface{} {
	return []interface{}{
		&Order{},
		&LyricsVariation{},
		&SongVariation{},
		&VideoClip{},
		&Payment{},
		&WebhookEvent{},
		&ShareEvent{},
	}
}
