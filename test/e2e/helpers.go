package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBinary 构建 pushnote 可执行文件并返回路径。
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "pushnote-bin")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/penwyp/pushnote")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v, output: %s", err, string(out))
	}
	return binPath
}

// requireGit 没有 git 或在 Windows 上（hook 依赖 sh）时跳过
func requireGit(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hooks require a POSIX shell")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// TestHelper provides utilities for E2E tests
type TestHelper struct {
	t       *testing.T
	binPath string
	config  string
}

// NewTestHelper creates a new test helper with an isolated config file
func NewTestHelper(t *testing.T) *TestHelper {
	requireGit(t)
	return &TestHelper{
		t:       t,
		binPath: buildBinary(t),
		config:  filepath.Join(t.TempDir(), "config.yaml"),
	}
}

// WriteConfig 写入 pushnote 配置
func (h *TestHelper) WriteConfig(content string) {
	require.NoError(h.t, os.WriteFile(h.config, []byte(content), 0644))
}

// RepoConfig holds configuration for creating a test repository
type RepoConfig struct {
	Branch string
	// Hooks 服务端 hook，键为 hook 名称（例如 post-receive），值为脚本内容
	Hooks map[string]string
}

// Repo 一个带本地裸仓库作为 origin 的工作区
type Repo struct {
	Dir    string
	Remote string
}

// CreateRepo 创建裸仓库与克隆，完成一次初始提交并推送 main
func (h *TestHelper) CreateRepo(config RepoConfig) Repo {
	root := h.t.TempDir()
	repo := Repo{
		Dir:    filepath.Join(root, "work"),
		Remote: filepath.Join(root, "remote.git"),
	}

	h.runGit(root, "init", "--bare", "--initial-branch=main", repo.Remote)
	h.runGit(root, "init", "--initial-branch=main", repo.Dir)
	h.runGit(repo.Dir, "config", "user.email", "test@example.com")
	h.runGit(repo.Dir, "config", "user.name", "tester")
	h.runGit(repo.Dir, "remote", "add", "origin", repo.Remote)

	h.Commit(repo, "README.md", "# Test Repository\n", "chore: initial commit")
	h.runGit(repo.Dir, "push", "--set-upstream", "origin", "main")

	for name, script := range config.Hooks {
		path := filepath.Join(repo.Remote, "hooks", name)
		require.NoError(h.t, os.WriteFile(path, []byte(script), 0755))
	}

	if config.Branch != "" && config.Branch != "main" {
		h.runGit(repo.Dir, "checkout", "-b", config.Branch)
	}
	return repo
}

// Commit 写入文件并提交
func (h *TestHelper) Commit(repo Repo, file, content, message string) {
	require.NoError(h.t, os.WriteFile(filepath.Join(repo.Dir, file), []byte(content), 0644))
	h.runGit(repo.Dir, "add", file)
	h.runGit(repo.Dir, "commit", "-m", message)
}

func (h *TestHelper) runGit(dir string, args ...string) string {
	h.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(h.t, err, "git %v: %s", args, out)
	return string(out)
}

// Result pushnote 一次运行的结果
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run 在 dir 中以非交互模式运行 pushnote
func (h *TestHelper) Run(dir, stdin string, args ...string) Result {
	h.t.Helper()

	cmd := exec.Command(h.binPath, append([]string{"--config", h.config, "--no-tui"}, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "BROWSER=true")
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		h.t.Fatalf("failed to run pushnote: %v", err)
	}
	return res
}
