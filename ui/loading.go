package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/penwyp/pushnote/internal/git"
)

// Task 耗时的远程操作
type Task func(ctx context.Context) (*git.Completed, error)

// LoadingModel 在 git 执行远程操作时展示 Spinner。
// 完成后通过 tea.Quit 退出，将结果或 err 写回自身字段。
type LoadingModel struct {
	spinner spinner.Model
	ctx     context.Context
	label   string
	task    Task
	styles  Styles

	completed *git.Completed
	err       error
	done      bool
}

func NewLoadingModel(ctx context.Context, label string, task Task, styles Styles) *LoadingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	return &LoadingModel{
		spinner: sp,
		ctx:     ctx,
		label:   label,
		task:    task,
		styles:  styles,
	}
}

// Init 启动 spinner 与任务
func (m *LoadingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runTaskCmd(m.ctx, m.task))
}

// Update 处理消息
func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case taskDoneMsg:
		m.completed = msg.completed
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View 完成后不留下任何内容，由后续的提示框接管
func (m *LoadingModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.styles.Progress.Render(m.label) + "\n"
}

// Result 返回任务结果
func (m *LoadingModel) Result() (*git.Completed, error) {
	return m.completed, m.err
}

type taskDoneMsg struct {
	completed *git.Completed
	err       error
}

func runTaskCmd(ctx context.Context, task Task) tea.Cmd {
	return func() tea.Msg {
		completed, err := task(ctx)
		return taskDoneMsg{completed: completed, err: err}
	}
}
