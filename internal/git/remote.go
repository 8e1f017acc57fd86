package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/pushnote/internal/errors"
)

// remoteManager Git远程仓库管理器实现
type remoteManager struct {
	runner Runner
}

// NewRemoteManager 创建新的远程仓库管理器
func NewRemoteManager(runner Runner) RemoteManager {
	return &remoteManager{
		runner: runner,
	}
}

// GetRemotes 获取所有远程仓库
func (m *remoteManager) GetRemotes(ctx context.Context) ([]Remote, error) {
	res, err := m.runner.Run(ctx, "git", "remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("failed to get remotes: %w", err)
	}

	// 解析git remote -v输出，保持出现顺序
	index := make(map[string]int)
	result := make([]Remote, 0)

	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		// 格式: origin	https://github.com/owner/repo.git (fetch)
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		name := parts[0]
		url := parts[1]
		typeStr := strings.Trim(parts[2], "()")

		i, exists := index[name]
		if !exists {
			i = len(result)
			index[name] = i
			result = append(result, Remote{Name: name})
		}

		switch typeStr {
		case "fetch":
			result[i].FetchURL = url
		case "push":
			result[i].PushURL = url
		}
	}

	return result, nil
}

// SelectRemote 根据优先级选择远程仓库：指定名称 > origin > 唯一的远程仓库
func (m *remoteManager) SelectRemote(remotes []Remote, preferredName string) (*Remote, error) {
	if len(remotes) == 0 {
		return nil, errors.ErrNoRemotes
	}

	if preferredName != "" {
		for _, remote := range remotes {
			if remote.Name == preferredName {
				return &remote, nil
			}
		}
		return nil, errors.New(errors.ErrTypeGit, fmt.Sprintf("remote '%s' not found", preferredName)).
			WithSuggestion(fmt.Sprintf("Run: git remote add %s <url>", preferredName))
	}

	for _, remote := range remotes {
		if remote.Name == "origin" {
			return &remote, nil
		}
	}

	if len(remotes) == 1 {
		return &remotes[0], nil
	}

	return nil, errors.New(errors.ErrTypeGit, "no 'origin' remote found and no remote specified").
		WithSuggestion("Pass the remote name explicitly, e.g. pushnote push upstream")
}

// GetCurrentBranch 获取当前分支名
func (m *remoteManager) GetCurrentBranch(ctx context.Context) (string, error) {
	res, err := m.runner.Run(ctx, "git", "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(res.Stdout)
	if branch == "" {
		return "", errors.ErrDetachedHead
	}

	return branch, nil
}

// HasUpstreamBranch 检查分支是否有上游分支
func (m *remoteManager) HasUpstreamBranch(ctx context.Context, branch string) bool {
	_, err := m.runner.Run(ctx, "git", "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	return err == nil
}
