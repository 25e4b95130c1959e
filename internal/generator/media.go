package generator

import (
	"fmt"
	"strings"
)

// SongVariationCount is how many songs one generation run produces.
const SongVariationCount = 2

// Media mints the URLs of mock-rendered audio and video files.
type Media struct {
	baseURL string
}

func NewMedia(baseURL string) *Media {
	return &Media{baseURL: strings.TrimRight(baseURL, "/")}
}

func (m *Media) SongURLs(orderID, songID string) (previewURL, audioURL string) {
	previewURL = fmt.Sprintf("%s/songs/%s/%s-preview.mp3", m.baseURL, orderID, songID)
	audioURL = fmt.Sprintf("%s/songs/%s/%s.mp3", m.baseURL, orderID, songID)
	return previewURL, audioURL
}

func (m *Media) VideoURL(orderID, clipID string) string {
	return fmt.Sprintf("%s/videos/%s/%s.mp4", m.baseURL, orderID, clipID)
}
