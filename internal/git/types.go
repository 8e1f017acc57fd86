package git

import (
	"context"

	"github.com/penwyp/pushnote/internal/remote"
)

// Remote Git远程仓库信息
type Remote struct {
	Name     string // 远程仓库名称，如 origin
	FetchURL string // 拉取URL
	PushURL  string // 推送URL
}

// Descriptor 转换为分类器使用的远程仓库描述，优先使用推送地址
func (r Remote) Descriptor() remote.Remote {
	url := r.PushURL
	if url == "" {
		url = r.FetchURL
	}
	return remote.Remote{Name: r.Name, URL: url}
}

// Result 一次命令执行捕获的输出
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Output 转换为分类器的输入
func (r Result) Output() remote.Output {
	return remote.Output{Stdout: r.Stdout, Stderr: r.Stderr}
}

// Runner Git命令执行器接口。
// 命令以非零状态退出时同时返回捕获的输出和错误。
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (Result, error)
}

// RemoteManager Git远程仓库管理器
type RemoteManager interface {
	// GetRemotes 获取所有远程仓库，按 git remote -v 的顺序
	GetRemotes(ctx context.Context) ([]Remote, error)

	// SelectRemote 根据优先级选择远程仓库
	SelectRemote(remotes []Remote, preferredName string) (*Remote, error)

	// GetCurrentBranch 获取当前分支名
	GetCurrentBranch(ctx context.Context) (string, error)

	// HasUpstreamBranch 检查分支是否有上游分支
	HasUpstreamBranch(ctx context.Context, branch string) bool
}

// Completed 一次已完成的远程操作及其输出，作为分类器的输入
type Completed struct {
	Operation remote.Operation
	Output    remote.Output
}
