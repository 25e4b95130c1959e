package model

import "time"

type OrderStatus string

const (
	StatusCreated       OrderStatus = "created"
	StatusStyleSelected OrderStatus = "style_selected"
	StatusLyricsReady   OrderStatus = "lyrics_ready"
	StatusSongReady     OrderStatus = "song_ready"
	StatusPaid          OrderStatus = "paid"
	StatusCompleted     OrderStatus = "completed"
	StatusCancelled     OrderStatus = "cancelled"
	StatusFailed        OrderStatus = "failed"
)

// statusRank orders the forward wizard progression. Terminal variants are
// left out on purpose: nothing advances out of them.
var statusRank = map[OrderStatus]int{
	StatusCreated:       0,
	StatusStyleSelected: 1,
	StatusLyricsReady:   2,
	StatusSongReady:     3,
	StatusPaid:          4,
	StatusCompleted:     5,
}

func (s OrderStatus) Valid() bool {
	if _, ok := statusRank[s]; ok {
		return true
	}
	return s == StatusCancelled || s == StatusFailed
}

// Shareable reports whether media of an order in this status may be shared.
func (s OrderStatus) Shareable() bool {
	return s == StatusPaid || s == StatusCompleted
}

// Advance returns next when it is further along the wizard than s and s has
// not been paid for yet; otherwise s is kept.
func (s OrderStatus) Advance(next OrderStatus) OrderStatus {
	cur, ok := statusRank[s]
	if !ok || cur >= statusRank[StatusPaid] {
		return s
	}
	if n, ok := statusRank[next]; ok && n > cur {
		return next
	}
	return s
}

// PayableStatuses are the statuses a checkout may complete from.
func PayableStatuses() []OrderStatus {
	return []OrderStatus{StatusCreated, StatusStyleSelected, StatusLyricsReady, StatusSongReady}
}

func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusCreated, StatusStyleSelected, StatusLyricsReady, StatusSongReady,
		StatusPaid, StatusCompleted, StatusCancelled, StatusFailed,
	}
}

// Order is one birthday song purchase, from questionnaire to share link.
type Order struct {
	ID    string `gorm:"primaryKey;size:64;not null" json:"id"`
	Email string `gorm:"size:255" json:"email,omitempty"`

	RecipientName     string   `gorm:"size:100;not null" json:"recipientName"`
	Nickname          string   `gorm:"size:100" json:"nickname,omitempty"`
	Gender            string   `gorm:"size:32" json:"gender,omitempty"`
	Age               int      `json:"age,omitempty"`
	Relationship      string   `gorm:"size:100" json:"relationship,omitempty"`
	PersonalityTraits []string `gorm:"serializer:json;type:text" json:"personalityTraits"`
	Hobbies           []string `gorm:"serializer:json;type:text" json:"hobbies"`
	FunnyStory        string   `gorm:"size:2000" json:"funnyStory,omitempty"`
	Occupation        string   `gorm:"size:200" json:"occupation,omitempty"`
	PetPeeve          string   `gorm:"size:500" json:"petPeeve,omitempty"`
	ImportantPeople   string   `gorm:"size:1000" json:"importantPeople,omitempty"`
	SharedMemory      string   `gorm:"size:2000" json:"sharedMemory,omitempty"`
	DesiredMessage    string   `gorm:"size:2000" json:"desiredMessage,omitempty"`
	Tone              string   `gorm:"size:32" json:"tone,omitempty"`
	Language          string   `gorm:"size:16" json:"language,omitempty"`

	SelectedStyle    string      `gorm:"size:32;index" json:"selectedStyle,omitempty"`
	SelectedLyricsID string      `gorm:"size:64" json:"selectedLyricsId,omitempty"`
	SelectedSongID   string      `gorm:"size:64" json:"selectedSongId,omitempty"`
	Status           OrderStatus `gorm:"size:32;index;not null" json:"status"`
	CreatedAt        time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

type LyricsVariation struct {
	ID            string    `gorm:"primaryKey;size:64;not null" json:"id"`
	OrderID       string    `gorm:"size:64;index;not null" json:"orderId"`
	Model         string    `gorm:"size:64;not null" json:"model"`
	Style         string    `gorm:"size:32" json:"style"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	EditedContent *string   `gorm:"type:text" json:"editedContent,omitempty"`
	Position      int       `gorm:"not null;default:0" json:"position"`
	Selected      bool      `gorm:"not null;default:false" json:"selected"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FinalContent is the edit if there is one, otherwise the generated text.
// Songs keep a copy of it from the moment they are generated.
func (l *LyricsVariation) FinalContent() string {
	if l.EditedContent != nil && *l.EditedContent != "" {
		return *l.EditedContent
	}
	return l.Content
}

type SongVariation struct {
	ID         string    `gorm:"primaryKey;size:64;not null" json:"id"`
	OrderID    string    `gorm:"size:64;index;not null" json:"orderId"`
	LyricsID   string    `gorm:"size:64" json:"lyricsId"`
	Lyrics     string    `gorm:"type:text" json:"lyrics"`
	PreviewURL string    `gorm:"size:512" json:"previewUrl"`
	AudioURL   string    `gorm:"size:512" json:"audioUrl"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Selected   bool      `gorm:"not null;default:false" json:"selected"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VideoStatus string

const (
	VideoPending    VideoStatus = "pending"
	VideoProcessing VideoStatus = "processing"
	VideoCompleted  VideoStatus = "completed"
	VideoFailed     VideoStatus = "failed"
)

type VideoClip struct {
	ID        string      `gorm:"primaryKey;size:64;not null" json:"id"`
	OrderID   string      `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	SongID    string      `gorm:"size:64" json:"songId"`
	Status    VideoStatus `gorm:"size:32;not null" json:"status"`
	VideoURL  string      `gorm:"size:512" json:"videoUrl,omitempty"`
	ReadyAt   time.Time   `json:"-"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
