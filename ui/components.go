package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors 定义统一的颜色主题
type Colors struct {
	Gray   lipgloss.Color
	Blue   lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	White  lipgloss.Color
	Black  lipgloss.Color
	Orange lipgloss.Color
}

// DefaultColors 返回默认的颜色主题
func DefaultColors() Colors {
	return Colors{
		Gray:   lipgloss.Color("245"),
		Blue:   lipgloss.Color("39"),
		Green:  lipgloss.Color("42"),
		Yellow: lipgloss.Color("220"),
		Red:    lipgloss.Color("196"),
		White:  lipgloss.Color("255"),
		Black:  lipgloss.Color("0"),
		Orange: lipgloss.Color("208"),
	}
}

// Styles 定义统一的样式
type Styles struct {
	Colors   Colors
	Border   lipgloss.Style
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Progress lipgloss.Style
	Link     lipgloss.Style
	Stderr   lipgloss.Style
	Match    lipgloss.Style
}

// DefaultStyles 返回默认的样式集
func DefaultStyles() Styles {
	colors := DefaultColors()
	return Styles{
		Colors:   colors,
		Border:   lipgloss.NewStyle().Foreground(colors.Blue),
		Title:    lipgloss.NewStyle().Foreground(colors.White).Bold(true),
		Subtle:   lipgloss.NewStyle().Foreground(colors.Gray),
		Success:  lipgloss.NewStyle().Foreground(colors.Green),
		Warning:  lipgloss.NewStyle().Foreground(colors.Yellow),
		Error:    lipgloss.NewStyle().Foreground(colors.Red),
		Progress: lipgloss.NewStyle().Foreground(colors.Yellow),
		Link:     lipgloss.NewStyle().Foreground(colors.Blue).Underline(true),
		Stderr:   lipgloss.NewStyle().Foreground(colors.Orange),
		Match:    lipgloss.NewStyle().Foreground(colors.Black).Background(colors.Yellow),
	}
}

// truncateContent 按显示宽度截断，CJK 字符按双宽计算
func truncateContent(content string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if lipgloss.Width(content) <= maxWidth {
		return content
	}

	var result strings.Builder
	for _, r := range content {
		testStr := result.String() + string(r)
		if lipgloss.Width(testStr) > maxWidth {
			break
		}
		result.WriteRune(r)
	}

	return result.String()
}

// wordWrap 包装文本，支持CJK字符
func wordWrap(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}

	var finalResult strings.Builder
	paragraphs := strings.Split(s, "\n")

	for i, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) != "" {
			finalResult.WriteString(wrapParagraph(paragraph, width))
		}
		if i < len(paragraphs)-1 {
			finalResult.WriteString("\n")
		}
	}
	return finalResult.String()
}

// wrapParagraph 包装单个段落，超长的单词（例如链接）单独占一行
func wrapParagraph(paragraph string, width int) string {
	var result strings.Builder
	var line strings.Builder

	for _, word := range strings.Fields(paragraph) {
		if line.Len() == 0 {
			line.WriteString(word)
		} else if lipgloss.Width(line.String()+" "+word) <= width {
			line.WriteString(" ")
			line.WriteString(word)
		} else {
			result.WriteString(line.String() + "\n")
			line.Reset()
			line.WriteString(word)
		}

		if lipgloss.Width(line.String()) > width {
			result.WriteString(line.String() + "\n")
			line.Reset()
		}
	}

	if line.Len() > 0 {
		result.WriteString(line.String())
	}

	return strings.TrimSuffix(result.String(), "\n")
}

// Button 表示一个快捷键提示
type Button struct {
	Hint       string
	Text       string
	HintStyle  lipgloss.Style
	TextStyle  lipgloss.Style
	SelectedBg lipgloss.Color
}

// RenderButton 渲染单个按钮
func RenderButton(b Button, isSelected bool) string {
	hStyle := b.HintStyle
	tStyle := b.TextStyle

	if isSelected {
		colors := DefaultColors()
		fgColor := colors.Black
		// 红色背景上白色文字更清晰
		if b.SelectedBg == colors.Red {
			fgColor = colors.White
		}
		hStyle = hStyle.Background(b.SelectedBg).Foreground(fgColor)
		tStyle = tStyle.Background(b.SelectedBg).Foreground(fgColor)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		hStyle.Padding(0, 1).Render(b.Hint),
		tStyle.Padding(0, 1).Render(b.Text),
	)
}

// RenderStatusLine 渲染状态行
func RenderStatusLine(icon, text string, style lipgloss.Style) string {
	return icon + " " + style.Render(text)
}

// CalculateContentWidth 计算响应式内容宽度
func CalculateContentWidth(terminalWidth int) int {
	const (
		minWidth = 40
		maxWidth = 100
		margin   = 4
	)

	availableWidth := terminalWidth - margin

	if availableWidth < minWidth {
		return minWidth
	}
	if availableWidth > maxWidth {
		return maxWidth
	}

	return availableWidth
}

// renderBox 渲染带标题的边框容器
func renderBox(title, content string, width int, styles Styles) string {
	titleText := styles.Title.Render(" " + title + " ")
	titlePadding := width - lipgloss.Width(titleText)
	if titlePadding < 0 {
		titlePadding = 0
	}

	border := func(s string) string { return styles.Border.Render(s) }

	header := border("┌") +
		border(strings.Repeat("─", titlePadding/2)) +
		titleText +
		border(strings.Repeat("─", titlePadding-titlePadding/2)) +
		border("┐")

	lines := strings.Split(content, "\n")
	body := make([]string, 0, len(lines))
	for _, line := range lines {
		body = append(body, renderLine(line, width, styles))
	}

	footer := border("└") + border(strings.Repeat("─", width)) + border("┘")

	return strings.Join(append(append([]string{header}, body...), footer), "\n")
}

// renderLine 渲染单行内容，超宽时截断并补省略号
func renderLine(content string, width int, styles Styles) string {
	if lipgloss.Width(content) > width {
		content = truncateContent(content, width-3) + "..."
	}

	linePadding := width - lipgloss.Width(content)
	if linePadding < 0 {
		linePadding = 0
	}

	return styles.Border.Render("│") + content + strings.Repeat(" ", linePadding) + styles.Border.Render("│")
}
