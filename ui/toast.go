package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/penwyp/pushnote/internal/browser"
	"github.com/penwyp/pushnote/internal/config"
	"github.com/penwyp/pushnote/internal/remote"
)

// ToastOptions 提示框的展示参数
type ToastOptions struct {
	Header   string               // 远程仓库描述，例如 "origin · GitHub user/repo"
	OpenMode config.OpenLinksMode // ask / auto / never
	LogLines int                  // 日志视图保留的最大行数
	Opener   browser.Opener
	Copy     func(text string) error // 复制链接到剪贴板，nil 表示不支持
	Styles   Styles
}

// linkOpenedMsg 打开链接的结果
type linkOpenedMsg struct{ err error }

// linkCopiedMsg 复制链接的结果
type linkCopiedMsg struct{ err error }

// ToastModel 展示分类结果，并按样式提供后续动作
type ToastModel struct {
	ctx     context.Context
	outcome remote.Outcome
	opts    ToastOptions

	logView *LogView
	showLog bool

	opening   bool
	openCount int
	openErr   error

	copied  bool
	copyErr error

	terminalWidth  int
	terminalHeight int
	done           bool
}

// NewToastModel 创建提示框模型
func NewToastModel(ctx context.Context, outcome remote.Outcome, opts ToastOptions) *ToastModel {
	if opts.OpenMode == "" {
		opts.OpenMode = config.OpenLinksAsk
	}
	return &ToastModel{
		ctx:            ctx,
		outcome:        outcome,
		opts:           opts,
		terminalWidth:  80,
		terminalHeight: 24,
	}
}

// Init auto 模式下立即打开链接
func (m *ToastModel) Init() tea.Cmd {
	if m.opts.OpenMode == config.OpenLinksAuto {
		return m.openLink()
	}
	return nil
}

// Update 处理消息
func (m *ToastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		if m.logView != nil {
			m.logView.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case linkOpenedMsg:
		m.opening = false
		m.openErr = msg.err
		return m, nil

	case linkCopiedMsg:
		m.copied = msg.err == nil
		m.copyErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.showLog {
			return m.updateLog(msg)
		}
		return m.updateToast(msg)
	}

	if m.showLog {
		return m, m.logView.Update(msg)
	}
	return m, nil
}

func (m *ToastModel) updateToast(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "esc" {
		return m.quit()
	}

	switch style := m.outcome.Style.(type) {
	case remote.WithFullLog:
		if key == "l" {
			if m.logView == nil {
				m.logView = NewLogView(style.Output, m.opts.LogLines, m.opts.Styles)
				m.logView.SetSize(m.terminalWidth, m.terminalHeight)
			}
			m.showLog = true
		}
		return m, nil

	case remote.WithActionLink:
		switch key {
		case "enter", "o":
			return m, m.openLink()
		case "c":
			return m, m.copyLink(style.URL)
		}
		return m, nil

	default:
		// Plain：任意键关闭
		return m.quit()
	}
}

func (m *ToastModel) updateLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.logView.Searching() {
		switch msg.String() {
		case "q", "esc":
			m.showLog = false
			return m, nil
		}
	}
	return m, m.logView.Update(msg)
}

// openLink 每次按键最多触发一次打开；上一次尚未完成时忽略
func (m *ToastModel) openLink() tea.Cmd {
	link, ok := m.outcome.Style.(remote.WithActionLink)
	if !ok || m.opening || !m.canOpen() {
		return nil
	}

	m.opening = true
	m.openCount++
	ctx, opener := m.ctx, m.opts.Opener
	return func() tea.Msg {
		return linkOpenedMsg{err: opener.Open(ctx, link.URL)}
	}
}

func (m *ToastModel) copyLink(url string) tea.Cmd {
	if m.opts.Copy == nil {
		return nil
	}
	copyFn := m.opts.Copy
	return func() tea.Msg {
		return linkCopiedMsg{err: copyFn(url)}
	}
}

func (m *ToastModel) canOpen() bool {
	return m.opts.Opener != nil && m.opts.OpenMode != config.OpenLinksNever
}

func (m *ToastModel) quit() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

// OpenCount 已触发打开链接的次数
func (m *ToastModel) OpenCount() int {
	return m.openCount
}

// OpenErr 最近一次打开链接的错误
func (m *ToastModel) OpenErr() error {
	return m.openErr
}

// Copied 链接是否已复制到剪贴板
func (m *ToastModel) Copied() bool {
	return m.copied
}

// ShowingLog 是否处于日志视图
func (m *ToastModel) ShowingLog() bool {
	return m.showLog
}

// IsDone 用户是否已关闭提示框
func (m *ToastModel) IsDone() bool {
	return m.done
}

// View 渲染提示框
func (m *ToastModel) View() string {
	if m.done {
		return ""
	}
	if m.showLog {
		return m.logView.View()
	}

	styles := m.opts.Styles
	width := CalculateContentWidth(m.terminalWidth)

	var body []string
	for _, line := range strings.Split(wordWrap(m.outcome.Message, width-2), "\n") {
		body = append(body, " "+styles.Success.Render(line))
	}
	if m.opts.Header != "" {
		body = append(body, " "+styles.Subtle.Render(truncateContent(m.opts.Header, width-2)))
	}

	parts := []string{renderBox("pushnote", strings.Join(body, "\n"), width, styles)}

	if link, ok := m.outcome.Style.(remote.WithActionLink); ok {
		parts = append(parts, " "+styles.Title.Render(link.Label+":")+" "+styles.Link.Render(link.URL))
		if status := m.openStatus(); status != "" {
			parts = append(parts, " "+status)
		}
		if status := m.copyStatus(); status != "" {
			parts = append(parts, " "+status)
		}
	}

	parts = append(parts, m.renderButtons())
	return strings.Join(parts, "\n") + "\n"
}

func (m *ToastModel) openStatus() string {
	styles := m.opts.Styles
	switch {
	case m.opening:
		return styles.Progress.Render("Opening…")
	case m.openErr != nil:
		return styles.Error.Render("✗ " + m.openErr.Error())
	case m.openCount > 0:
		return styles.Success.Render("✓ Opened in browser")
	}
	return ""
}

func (m *ToastModel) copyStatus() string {
	switch {
	case m.copyErr != nil:
		return m.opts.Styles.Error.Render("✗ copy failed: " + m.copyErr.Error())
	case m.copied:
		return m.opts.Styles.Success.Render("✓ Copied link")
	}
	return ""
}

// renderButtons 渲染当前样式可用的快捷键
func (m *ToastModel) renderButtons() string {
	colors := m.opts.Styles.Colors
	hint := lipgloss.NewStyle().Foreground(colors.Gray)

	var buttons []Button
	switch style := m.outcome.Style.(type) {
	case remote.WithFullLog:
		buttons = append(buttons, Button{Hint: "[L]", Text: "View full output", HintStyle: hint, TextStyle: lipgloss.NewStyle().Foreground(colors.Yellow)})
	case remote.WithActionLink:
		if m.canOpen() {
			buttons = append(buttons, Button{Hint: "[Enter]", Text: style.Label, HintStyle: hint, TextStyle: lipgloss.NewStyle().Foreground(colors.Green), SelectedBg: colors.Green})
		}
		if m.opts.Copy != nil {
			buttons = append(buttons, Button{Hint: "[C]", Text: "Copy link", HintStyle: hint, TextStyle: lipgloss.NewStyle().Foreground(colors.Blue)})
		}
	}
	if _, plain := m.outcome.Style.(remote.Plain); plain {
		buttons = append(buttons, Button{Hint: "[any key]", Text: "Dismiss", HintStyle: hint, TextStyle: hint})
	} else {
		buttons = append(buttons, Button{Hint: "[Q]", Text: "Dismiss", HintStyle: hint, TextStyle: hint})
	}

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		rendered = append(rendered, RenderButton(b, m.opening && b.SelectedBg != ""))
	}
	return strings.Join(rendered, "  ")
}
