package git

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// 超时杀进程后不应残留等待管道的 goroutine
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_SeparatesStreams(t *testing.T) {
	requireShell(t)

	runner := NewExecRunner("", nil)
	res, err := runner.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecRunner_NonZeroExitKeepsOutput(t *testing.T) {
	requireShell(t)

	runner := NewExecRunner(t.TempDir(), nil)
	res, err := runner.Run(context.Background(), "sh", "-c", "echo 'fatal: nope' 1>&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 3")
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "fatal: nope\n", res.Stderr)
}

func TestExecRunner_Environment(t *testing.T) {
	requireShell(t)

	res, err := NewExecRunner("", nil).Run(context.Background(), "sh", "-c", "echo $GIT_TERMINAL_PROMPT $LC_ALL")
	require.NoError(t, err)
	assert.Equal(t, "0 C\n", res.Stdout)
}

func TestExecRunner_Timeout(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewExecRunner("", nil).Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	res, err := NewExecRunner("", nil).Run(context.Background(), "pushnote-definitely-missing-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run")
	assert.Equal(t, -1, res.ExitCode)
}
