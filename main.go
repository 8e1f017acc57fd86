package main

import (
	"os"

	"github.com/penwyp/pushnote/cmd"
	"github.com/penwyp/pushnote/internal/errors"
)

// main 为 CLI 入口，调用 cmd.Execute。
func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// 远程命令失败时错误信息已经打印
	var exitErr *cmd.ExitError
	if !errors.As(err, &exitErr) {
		_, _ = os.Stderr.WriteString(errors.FormatError(err) + "\n")
	}
	os.Exit(cmd.ExitCode(err))
}
