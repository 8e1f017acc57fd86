package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorHandler 将失败的 git 远程命令转换为用户可读的信息。
// 成功的命令交给 remote 包分类，不会经过这里。
type ErrorHandler struct{}

// NewErrorHandler 创建新的错误处理器
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// HandleGitError 根据错误与捕获的 stderr 返回结构化的错误信息
func (h *ErrorHandler) HandleGitError(err error) GitFailure {
	if err == nil {
		return GitFailure{ExitCode: ExitCodeSuccess}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return GitFailure{
			Message:     "The remote operation timed out",
			Suggestion:  "Raise timeout in the pushnote config (0 disables it) or check your connection",
			ExitCode:    ExitCodeTimeout,
			IsRetryable: true,
		}
	}

	if errors.Is(err, ErrNotGitRepository) {
		return GitFailure{
			Message:    "Not inside a git repository",
			Suggestion: ErrNotGitRepository.Suggestion,
			ExitCode:   ExitCodeNotGitRepository,
		}
	}

	details := GetDetails(err)
	text := err.Error() + "\n" + details

	// 认证失败（需在权限错误之前判断，ssh 的提示同样包含 Permission denied）
	if containsAny(text,
		"Authentication failed",
		"could not read Username",
		"Permission denied (publickey",
		"Invalid username or password",
	) {
		return GitFailure{
			Message:    "Authentication with the remote failed",
			Details:    strings.TrimSpace(details),
			Suggestion: "Check your credentials or SSH key, e.g.\n  ssh -T git@github.com",
			ExitCode:   ExitCodeAuthFailed,
		}
	}

	// 推送被拒绝
	if strings.Contains(text, "[rejected]") || strings.Contains(text, "failed to push some refs") {
		suggestion := "Inspect the remote messages above"
		if containsAny(text, "non-fast-forward", "fetch first") {
			suggestion = "Integrate the remote changes first:\n  pushnote pull --rebase"
		}
		return GitFailure{
			Message:    "The remote rejected the push",
			Details:    strings.TrimSpace(details),
			Suggestion: suggestion,
			ExitCode:   ExitCodeRejected,
		}
	}

	if strings.Contains(text, "has no upstream branch") {
		return GitFailure{
			Message:    "The current branch has no upstream branch",
			Suggestion: "Run: pushnote push --set-upstream",
			ExitCode:   ExitCodeGitError,
		}
	}

	if strings.Contains(text, "does not appear to be a git repository") {
		remoteName := extractQuoted(text)
		return GitFailure{
			Message:    fmt.Sprintf("Git remote '%s' not found", remoteName),
			Suggestion: fmt.Sprintf("Run: git remote add %s <url>", remoteName),
			ExitCode:   ExitCodeGitError,
		}
	}

	if containsAny(text, "CONFLICT", "Automatic merge failed") {
		return GitFailure{
			Message:    "Pull stopped on merge conflicts",
			Details:    strings.TrimSpace(details),
			Suggestion: "Resolve the conflicts, then run: git commit",
			ExitCode:   ExitCodeGitError,
		}
	}

	if strings.Contains(text, "would be overwritten") {
		return GitFailure{
			Message:    "Local changes would be overwritten",
			Details:    strings.TrimSpace(details),
			Suggestion: "Commit or stash your changes first:\n  git stash",
			ExitCode:   ExitCodeGitError,
		}
	}

	// 网络错误
	if containsAny(text,
		"Could not resolve host",
		"no such host",
		"Connection refused",
		"connection refused",
		"Connection timed out",
		"Could not read from remote repository",
		"unable to access",
	) {
		return GitFailure{
			Message:     "Network error occurred",
			Details:     strings.TrimSpace(details),
			Suggestion:  "Check your internet connection and try again",
			ExitCode:    ExitCodeNetworkError,
			IsRetryable: true,
		}
	}

	// 权限错误
	if containsAny(text, "403", "Permission denied", "permission denied") {
		return GitFailure{
			Message:    "Permission denied",
			Details:    strings.TrimSpace(details),
			Suggestion: "Check repository permissions and authentication status",
			ExitCode:   ExitCodePermissionDenied,
		}
	}

	if GetType(err) == ErrTypeConfig {
		return GitFailure{
			Message:    err.Error(),
			Suggestion: GetSuggestion(err),
			ExitCode:   ExitCodeConfigError,
		}
	}

	// 默认错误，保留调用方标记的可重试性
	return GitFailure{
		Message:     fmt.Sprintf("Error: %s", err.Error()),
		Details:     strings.TrimSpace(details),
		Suggestion:  GetSuggestion(err),
		ExitCode:    ExitCodeGenericError,
		IsRetryable: IsRetryable(err),
	}
}

// FormatFailure 格式化错误信息为用户友好的输出
func (h *ErrorHandler) FormatFailure(failure GitFailure) string {
	var sb strings.Builder

	sb.WriteString(color.RedString("Error: %s\n", failure.Message))

	if failure.Details != "" {
		sb.WriteString(color.YellowString("Details: %s\n", failure.Details))
	}

	if failure.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(failure.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// 辅助函数

func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func extractQuoted(text string) string {
	// 从 "fatal: 'upstream' does not appear to be a git repository" 中提取 "upstream"
	start := strings.Index(text, "'")
	if start == -1 {
		return "origin"
	}
	end := strings.Index(text[start+1:], "'")
	if end <= 0 {
		return "origin"
	}
	return text[start+1 : start+1+end]
}
