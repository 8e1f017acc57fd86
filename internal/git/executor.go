package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/remote"
	"go.uber.org/zap"
)

// PushOptions git push 选项
type PushOptions struct {
	Remote         string // 为空时按 SelectRemote 规则选择
	Branch         string // 为空时使用当前分支
	SetUpstream    bool   // 强制设置上游；没有上游时自动设置
	ForceWithLease bool
}

// PullOptions git pull 选项
type PullOptions struct {
	Remote string
	Branch string
	Rebase bool
}

// FetchOptions git fetch 选项
type FetchOptions struct {
	Remote string
	All    bool // 抓取全部远程仓库，此时忽略 Remote
	Prune  bool
}

// Executor 执行远程操作并返回分类器所需的操作描述与输出。
// 命令失败时不返回 Completed，错误中附带 stderr。
type Executor struct {
	runner  Runner
	remotes RemoteManager
	logger  *zap.Logger
}

// NewExecutor 创建远程操作执行器
func NewExecutor(runner Runner, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		runner:  runner,
		remotes: NewRemoteManager(runner),
		logger:  logger,
	}
}

// Push 推送分支
func (e *Executor) Push(ctx context.Context, opts PushOptions) (*Completed, error) {
	if err := e.checkRepository(ctx); err != nil {
		return nil, err
	}

	branch, err := e.branch(ctx, opts.Branch)
	if err != nil {
		return nil, err
	}

	target, err := e.resolveRemote(ctx, opts.Remote)
	if err != nil {
		return nil, err
	}

	args := []string{"push"}
	if opts.ForceWithLease {
		args = append(args, "--force-with-lease")
	}
	if opts.SetUpstream || !e.remotes.HasUpstreamBranch(ctx, branch) {
		args = append(args, "--set-upstream")
	}
	args = append(args, target.Name, branch)

	out, err := e.run(ctx, args)
	if err != nil {
		return nil, err
	}

	return &Completed{
		Operation: remote.Push{Branch: branch, Remote: target.Descriptor()},
		Output:    out,
	}, nil
}

// Pull 拉取并合并（或变基）远程分支
func (e *Executor) Pull(ctx context.Context, opts PullOptions) (*Completed, error) {
	if err := e.checkRepository(ctx); err != nil {
		return nil, err
	}

	branch, err := e.branch(ctx, opts.Branch)
	if err != nil {
		return nil, err
	}

	target, err := e.resolveRemote(ctx, opts.Remote)
	if err != nil {
		return nil, err
	}

	args := []string{"pull"}
	if opts.Rebase {
		args = append(args, "--rebase")
	}
	args = append(args, target.Name, branch)

	out, err := e.run(ctx, args)
	if err != nil {
		return nil, err
	}

	return &Completed{
		Operation: remote.Pull{Remote: target.Descriptor(), Rebase: opts.Rebase},
		Output:    out,
	}, nil
}

// Fetch 抓取远程仓库
func (e *Executor) Fetch(ctx context.Context, opts FetchOptions) (*Completed, error) {
	if err := e.checkRepository(ctx); err != nil {
		return nil, err
	}

	args := []string{"fetch"}
	if opts.Prune {
		args = append(args, "--prune")
	}

	var op remote.Fetch
	if opts.All {
		args = append(args, "--all")
	} else {
		target, err := e.resolveRemote(ctx, opts.Remote)
		if err != nil {
			return nil, err
		}
		descriptor := target.Descriptor()
		op.Remote = &descriptor
		args = append(args, target.Name)
	}

	out, err := e.run(ctx, args)
	if err != nil {
		return nil, err
	}

	return &Completed{Operation: op, Output: out}, nil
}

func (e *Executor) checkRepository(ctx context.Context) error {
	if _, err := e.runner.Run(ctx, "git", "rev-parse", "--git-dir"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.ErrNotGitRepository
	}
	return nil
}

func (e *Executor) branch(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return e.remotes.GetCurrentBranch(ctx)
}

func (e *Executor) resolveRemote(ctx context.Context, preferred string) (*Remote, error) {
	remotes, err := e.remotes.GetRemotes(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrTypeGit, "failed to list remotes", err)
	}
	return e.remotes.SelectRemote(remotes, preferred)
}

// run 执行 git 远程命令；失败时返回带 stderr 的 PushnoteError
func (e *Executor) run(ctx context.Context, args []string) (remote.Output, error) {
	res, err := e.runner.Run(ctx, "git", args...)
	if err != nil {
		msg := fmt.Sprintf("git %s failed", args[0])
		if ctx.Err() != nil {
			return remote.Output{}, errors.WrapRetryable(errors.ErrTypeTimeout, msg, ctx.Err())
		}
		e.logger.Debug("Remote command failed",
			zap.Strings("args", args),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", tail(res.Stderr, 1000)))
		return remote.Output{}, errors.Wrap(errors.ErrTypeGit, msg, err).WithDetails(res.Stderr)
	}

	e.logger.Debug("Remote command succeeded",
		zap.Strings("args", args),
		zap.Int("stdout_length", len(res.Stdout)),
		zap.Int("stderr_length", len(res.Stderr)))

	return res.Output(), nil
}

// tail 截取最后 n 个字节用于日志
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + strings.TrimLeft(s[len(s)-n:], "\n")
}
