package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSongReadyContent(t *testing.T) {
	subject, text, htmlBody := songReadyContent("Maya", "http://localhost:5173/share/o1")

	assert.Equal(t, "Maya's birthday song is ready", subject)
	assert.Contains(t, text, "http://localhost:5173/share/o1")
	assert.Contains(t, htmlBody, "<strong>Maya</strong>")
	assert.Contains(t, htmlBody, `href="http://localhost:5173/share/o1"`)
}

func TestSongReadyContent_EscapesHTML(t *testing.T) {
	_, text, htmlBody := songReadyContent(`<b onclick="x()">Al</b>`, `http://x.test/share/o1?a=1&b="2"`)

	assert.NotContains(t, htmlBody, "<b onclick")
	assert.Contains(t, htmlBody, "&lt;b onclick=&#34;x()&#34;&gt;Al&lt;/b&gt;")
	assert.Contains(t, htmlBody, `href="http://x.test/share/o1?a=1&amp;b=&#34;2&#34;"`)

	// plain text part is not HTML
	assert.Contains(t, text, `<b onclick="x()">Al</b>`)
}
