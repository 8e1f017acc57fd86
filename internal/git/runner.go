package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// waitDelay 超时杀掉 git 后，继承了输出管道的子进程（例如服务端 hook）最多再等这么久
const waitDelay = 2 * time.Second

// ExecRunner 使用 os/exec 执行命令，分别捕获 stdout 与 stderr。
type ExecRunner struct {
	Dir    string      // 工作目录，空表示当前目录
	Logger *zap.Logger // 可为 nil
}

// NewExecRunner 创建命令执行器
func NewExecRunner(dir string, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{Dir: dir, Logger: logger}
}

// Run 执行命令。命令启动失败或以非零状态退出时返回错误，已捕获的输出仍在 Result 中。
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	// 禁止 git 在终端中交互式询问凭据，否则 TUI 会卡住；
	// 固定英文输出，分类依赖 git 的原始消息
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")

	logger.Debug("Running command",
		zap.String("command", name),
		zap.Strings("args", args))

	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	logger.Debug("Command finished",
		zap.String("command", name),
		zap.Int("exit_code", res.ExitCode),
		zap.Int("stdout_length", len(res.Stdout)),
		zap.Int("stderr_length", len(res.Stderr)),
		zap.Error(err))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s %v: %w", name, args, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("%s exited with status %d: %w", name, res.ExitCode, err)
		}
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return res, nil
}
