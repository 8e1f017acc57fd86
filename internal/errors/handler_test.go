package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func gitErr(stderr string) error {
	return Wrap(ErrTypeGit, "git push failed", errors.New("exit status 1")).WithDetails(stderr)
}

// TestErrorHandler_HandleGitError 测试 git 失败输出的识别
func TestErrorHandler_HandleGitError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedMessage    string
		expectedSuggestion string
		expectedExitCode   int
		retryable          bool
	}{
		{
			name:               "https authentication",
			err:                gitErr("remote: Invalid username or password.\nfatal: Authentication failed for 'https://github.com/user/repo.git/'\n"),
			expectedMessage:    "Authentication with the remote failed",
			expectedSuggestion: "ssh -T",
			expectedExitCode:   ExitCodeAuthFailed,
		},
		{
			name:               "ssh key rejected",
			err:                gitErr("git@github.com: Permission denied (publickey).\nfatal: Could not read from remote repository.\n"),
			expectedMessage:    "Authentication with the remote failed",
			expectedSuggestion: "SSH key",
			expectedExitCode:   ExitCodeAuthFailed,
		},
		{
			name: "non-fast-forward",
			err: gitErr("To github.com:user/repo.git\n ! [rejected]        main -> main (fetch first)\n" +
				"error: failed to push some refs to 'github.com:user/repo.git'\n"),
			expectedMessage:    "The remote rejected the push",
			expectedSuggestion: "pushnote pull --rebase",
			expectedExitCode:   ExitCodeRejected,
		},
		{
			name:               "pre-receive hook declined",
			err:                gitErr(" ! [remote rejected] main -> main (pre-receive hook declined)\nerror: failed to push some refs\n"),
			expectedMessage:    "The remote rejected the push",
			expectedSuggestion: "remote messages",
			expectedExitCode:   ExitCodeRejected,
		},
		{
			name:               "no upstream",
			err:                gitErr("fatal: The current branch feature has no upstream branch.\n"),
			expectedMessage:    "The current branch has no upstream branch",
			expectedSuggestion: "--set-upstream",
			expectedExitCode:   ExitCodeGitError,
		},
		{
			name:               "unknown remote",
			err:                gitErr("fatal: 'upstream' does not appear to be a git repository\nfatal: Could not read from remote repository.\n"),
			expectedMessage:    "Git remote 'upstream' not found",
			expectedSuggestion: "git remote add upstream <url>",
			expectedExitCode:   ExitCodeGitError,
		},
		{
			name:               "merge conflict",
			err:                gitErr("CONFLICT (content): Merge conflict in main.go\nAutomatic merge failed; fix conflicts and then commit the result.\n"),
			expectedMessage:    "Pull stopped on merge conflicts",
			expectedSuggestion: "git commit",
			expectedExitCode:   ExitCodeGitError,
		},
		{
			name:               "dirty worktree",
			err:                gitErr("error: Your local changes to the following files would be overwritten by merge:\n\tmain.go\n"),
			expectedMessage:    "Local changes would be overwritten",
			expectedSuggestion: "git stash",
			expectedExitCode:   ExitCodeGitError,
		},
		{
			name:               "dns failure",
			err:                gitErr("fatal: unable to access 'https://github.com/user/repo.git/': Could not resolve host: github.com\n"),
			expectedMessage:    "Network error occurred",
			expectedSuggestion: "internet connection",
			expectedExitCode:   ExitCodeNetworkError,
			retryable:          true,
		},
		{
			name:               "forbidden",
			err:                gitErr("fatal: The requested URL returned error: 403\n"),
			expectedMessage:    "Permission denied",
			expectedSuggestion: "repository permissions",
			expectedExitCode:   ExitCodePermissionDenied,
		},
		{
			name:               "timeout",
			err:                fmt.Errorf("git push: %w", context.DeadlineExceeded),
			expectedMessage:    "The remote operation timed out",
			expectedSuggestion: "Raise timeout in the pushnote config",
			expectedExitCode:   ExitCodeTimeout,
			retryable:          true,
		},
		{
			name:               "not a repository",
			err:                ErrNotGitRepository,
			expectedMessage:    "Not inside a git repository",
			expectedSuggestion: "git init",
			expectedExitCode:   ExitCodeNotGitRepository,
		},
		{
			name:               "config error",
			err:                New(ErrTypeConfig, "invalid open_links mode \"sometimes\"").WithSuggestion("use ask, auto or never"),
			expectedMessage:    "invalid open_links mode",
			expectedSuggestion: "use ask",
			expectedExitCode:   ExitCodeConfigError,
		},
		{
			name:             "unknown error",
			err:              errors.New("something odd"),
			expectedMessage:  "Error: something odd",
			expectedExitCode: ExitCodeGenericError,
		},
	}

	handler := NewErrorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := handler.HandleGitError(tt.err)
			assert.Contains(t, failure.Message, tt.expectedMessage)
			if tt.expectedSuggestion != "" {
				assert.Contains(t, failure.Suggestion, tt.expectedSuggestion)
			}
			assert.Equal(t, tt.expectedExitCode, failure.ExitCode)
			assert.Equal(t, tt.retryable, failure.IsRetryable)
		})
	}
}

func TestErrorHandler_HandleGitError_Nil(t *testing.T) {
	failure := NewErrorHandler().HandleGitError(nil)
	assert.Equal(t, ExitCodeSuccess, failure.ExitCode)
	assert.Empty(t, failure.Message)
	assert.False(t, failure.IsRetryable)
}

func TestErrorHandler_HandleGitError_KeepsRetryableFlag(t *testing.T) {
	handler := NewErrorHandler()

	failure := handler.HandleGitError(fmt.Errorf("clipboard: %w", WrapRetryable(ErrTypeUnknown, "device busy", errors.New("EBUSY"))))
	assert.Equal(t, ExitCodeGenericError, failure.ExitCode)
	assert.True(t, failure.IsRetryable)

	failure = handler.HandleGitError(Wrap(ErrTypeValidation, "unknown operation", ErrInvalidInput))
	assert.Equal(t, ExitCodeGenericError, failure.ExitCode)
	assert.False(t, failure.IsRetryable)
}

func TestErrorHandler_FormatFailure(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	handler := NewErrorHandler()
	out := handler.FormatFailure(GitFailure{
		Message:    "The remote rejected the push",
		Details:    "! [rejected] main -> main",
		Suggestion: "pushnote pull --rebase",
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Error: The remote rejected the push", lines[0])
	assert.Equal(t, "Details: ! [rejected] main -> main", lines[1])
	assert.Contains(t, out, "\npushnote pull --rebase\n")

	out = handler.FormatFailure(GitFailure{Message: "boom"})
	assert.Equal(t, "Error: boom\n", out)
}

func TestExtractQuoted(t *testing.T) {
	assert.Equal(t, "upstream", extractQuoted("fatal: 'upstream' does not appear"))
	assert.Equal(t, "origin", extractQuoted("no quotes here"))
	assert.Equal(t, "origin", extractQuoted("dangling ' quote"))
}
