package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "", truncateContent("hello", 0))
	assert.Equal(t, "hello", truncateContent("hello", 10))
	assert.Equal(t, "hel", truncateContent("hello", 3))
	// CJK 字符占两列
	assert.Equal(t, "推送", truncateContent("推送成功", 5))
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Pushed to origin", 40, "Pushed to origin"},
		{"wraps", "Pulled from origin: 3 files changed", 20, "Pulled from origin:\n3 files changed"},
		{"keeps paragraphs", "a\n\nb", 10, "a\n\nb"},
		{"zero width", "abc", 0, "abc"},
		{"empty", "", 10, ""},
		{"long word on its own line", "see https://example.com/a/very/long/path now", 10, "see\nhttps://example.com/a/very/long/path\nnow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wordWrap(tt.input, tt.width))
		})
	}
}

func TestCalculateContentWidth(t *testing.T) {
	assert.Equal(t, 40, CalculateContentWidth(20))
	assert.Equal(t, 76, CalculateContentWidth(80))
	assert.Equal(t, 100, CalculateContentWidth(300))
}

func TestRenderBox(t *testing.T) {
	styles := DefaultStyles()
	box := renderBox("pushnote", "line one\nline two", 30, styles)

	lines := strings.Split(box, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "pushnote")
	for _, line := range lines {
		assert.Equal(t, 32, lipgloss.Width(line))
	}
}

func TestRenderLine_Truncates(t *testing.T) {
	line := renderLine(strings.Repeat("x", 50), 20, DefaultStyles())
	assert.Equal(t, 22, lipgloss.Width(line))
	assert.Contains(t, line, "...")
}

func TestRenderButton(t *testing.T) {
	b := Button{Hint: "[L]", Text: "View full output"}
	got := RenderButton(b, false)
	assert.Contains(t, got, "[L]")
	assert.Contains(t, got, "View full output")
	assert.Equal(t, RenderButton(b, false), RenderButton(b, false))
}
