package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Advance(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want OrderStatus
	}{
		{StatusCreated, StatusLyricsReady, StatusLyricsReady},
		{StatusSongReady, StatusLyricsReady, StatusSongReady},
		{StatusPaid, StatusSongReady, StatusPaid},
		{StatusCompleted, StatusSongReady, StatusCompleted},
		{StatusCancelled, StatusLyricsReady, StatusCancelled},
		{StatusStyleSelected, StatusStyleSelected, StatusStyleSelected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.Advance(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_Shareable(t *testing.T) {
	for _, s := range AllStatuses() {
		want := s == StatusPaid || s == StatusCompleted
		assert.Equal(t, want, s.Shareable(), string(s))
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestLyricsVariation_FinalContent(t *testing.T) {
	l := &LyricsVariation{Content: "original"}
	assert.Equal(t, "original", l.FinalContent())

	empty := ""
	l.EditedContent = &empty
	assert.Equal(t, "original", l.FinalContent())

	edited := "edited"
	l.EditedContent = &edited
	assert.Equal(t, "edited", l.FinalContent())
	assert.Equal(t, "original", l.Content)
}
