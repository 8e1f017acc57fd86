package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/penwyp/pushnote/internal/remote"
)

// LogView 完整输出查看器：stdout 在前，stderr 在后，支持 / 过滤
type LogView struct {
	lines   []LogLine
	dropped int

	viewport  viewport.Model
	search    textinput.Model
	searching bool
	query     string

	styles Styles
}

// NewLogView 创建日志视图，只保留最后 maxLines 行，maxLines <= 0 表示不限制
func NewLogView(out remote.Output, maxLines int, styles Styles) *LogView {
	lines := logLines(out)
	dropped := 0
	if maxLines > 0 && len(lines) > maxLines {
		dropped = len(lines) - maxLines
		lines = lines[dropped:]
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 200

	v := &LogView{
		lines:    lines,
		dropped:  dropped,
		viewport: viewport.New(80, 20),
		search:   ti,
		styles:   styles,
	}
	v.refresh()
	return v
}

// SetSize 根据终端大小调整视口，预留标题和底部各一行
func (v *LogView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-2, 1)
	v.search.Width = max(width-2, 10)
	v.refresh()
}

// Searching 是否正在输入过滤词
func (v *LogView) Searching() bool {
	return v.searching
}

// Query 当前过滤词
func (v *LogView) Query() string {
	return v.query
}

// Dropped 因超过行数上限被丢弃的最早行数
func (v *LogView) Dropped() int {
	return v.dropped
}

// Visible 返回通过过滤的行，过滤不区分大小写
func (v *LogView) Visible() []LogLine {
	if v.query == "" {
		return v.lines
	}
	needle := strings.ToLower(v.query)
	var visible []LogLine
	for _, line := range v.lines {
		if strings.Contains(strings.ToLower(line.Text), needle) {
			visible = append(visible, line)
		}
	}
	return visible
}

// Update 处理按键；关闭视图由调用方负责
func (v *LogView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		if v.searching {
			return v.updateSearch(key)
		}
		if key.String() == "/" {
			v.searching = true
			return v.search.Focus()
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *LogView) updateSearch(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		v.searching = false
		v.search.Blur()
		return nil
	case "esc":
		v.searching = false
		v.search.Blur()
		v.search.Reset()
		v.query = ""
		v.refresh()
		return nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(key)
	if v.search.Value() != v.query {
		v.query = v.search.Value()
		v.refresh()
	}
	return cmd
}

func (v *LogView) refresh() {
	visible := v.Visible()
	rendered := make([]string, 0, len(visible))
	for _, line := range visible {
		rendered = append(rendered, v.renderLine(line))
	}
	v.viewport.SetContent(strings.Join(rendered, "\n"))
	v.viewport.GotoTop()
}

func (v *LogView) renderLine(line LogLine) string {
	text := v.highlight(line.Text)
	if line.Stderr {
		return v.styles.Stderr.Render(text)
	}
	return text
}

// highlight 标出第一个匹配位置；小写化改变字节长度时不做标记
func (v *LogView) highlight(text string) string {
	if v.query == "" {
		return text
	}
	lower, needle := strings.ToLower(text), strings.ToLower(v.query)
	if len(lower) != len(text) || len(needle) != len(v.query) {
		return text
	}
	idx := strings.Index(lower, needle)
	if idx < 0 {
		return text
	}
	end := idx + len(needle)
	return text[:idx] + v.styles.Match.Render(text[idx:end]) + text[end:]
}

// View 渲染日志视图
func (v *LogView) View() string {
	title := v.styles.Title.Render("Full output")
	stats := fmt.Sprintf(" %d lines", len(v.lines))
	if v.dropped > 0 {
		stats += fmt.Sprintf(", %d earlier lines dropped", v.dropped)
	}
	if v.query != "" {
		stats += fmt.Sprintf(", %d matching", len(v.Visible()))
	}

	var footer string
	switch {
	case v.searching:
		footer = v.search.View()
	case v.query != "":
		footer = v.styles.Subtle.Render(fmt.Sprintf("filter: %q · / edit · esc back", v.query))
	default:
		footer = v.styles.Subtle.Render("↑/↓ scroll · / filter · esc back")
	}

	return strings.Join([]string{title + v.styles.Subtle.Render(stats), v.viewport.View(), footer}, "\n")
}
