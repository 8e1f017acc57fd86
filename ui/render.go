package ui

import (
	"strings"

	"github.com/penwyp/pushnote/internal/remote"
)

const logIndent = "  "

// RenderOutcome 非交互模式下的静态渲染。
// header 为空时不输出远程仓库描述行。
func RenderOutcome(outcome remote.Outcome, header string, styles Styles) string {
	var b strings.Builder

	b.WriteString(RenderStatusLine(outcomeIcon(outcome.Style), outcome.Message, styles.Success))
	if header != "" {
		b.WriteString(" " + styles.Subtle.Render("("+header+")"))
	}
	b.WriteString("\n")

	switch style := outcome.Style.(type) {
	case remote.WithActionLink:
		b.WriteString(logIndent + styles.Title.Render(style.Label+":") + " " + styles.Link.Render(style.URL) + "\n")
	case remote.WithFullLog:
		for _, line := range logLines(style.Output) {
			text := line.Text
			if line.Stderr {
				text = styles.Stderr.Render(text)
			}
			b.WriteString(logIndent + text + "\n")
		}
	}

	return b.String()
}

func outcomeIcon(style remote.Style) string {
	switch style.(type) {
	case remote.WithActionLink:
		return "↗"
	case remote.WithFullLog:
		return "•"
	default:
		return "✓"
	}
}

// LogLine 日志中的一行，记录来自哪个流
type LogLine struct {
	Text   string
	Stderr bool
}

// logLines 先 stdout 后 stderr，去掉每个流末尾的空行
func logLines(out remote.Output) []LogLine {
	var lines []LogLine
	for _, text := range splitLines(out.Stdout) {
		lines = append(lines, LogLine{Text: text})
	}
	for _, text := range splitLines(out.Stderr) {
		lines = append(lines, LogLine{Text: text, Stderr: true})
	}
	return lines
}

func splitLines(s string) []string {
	s = strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// git 的进度行用 \r 原地刷新，只保留最后一次刷新
		if idx := strings.LastIndex(strings.TrimRight(line, "\r"), "\r"); idx >= 0 {
			line = line[idx+1:]
		}
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
