package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Info 解析后的 Git remote 信息，仅用于展示
type Info struct {
	Provider string // github, gitlab, gitea, bitbucket, unknown
	Host     string // 主机名，如 github.com
	Port     int    // 端口号，0表示默认端口
	Owner    string // 仓库所有者或组织（GitLab 子组以 / 连接）
	Repo     string // 仓库名称
	Protocol string // https, ssh
}

var (
	// SSH格式: git@host:owner/repo.git 或 ssh://git@host:port/owner/repo.git
	sshPattern = regexp.MustCompile(`^(?:ssh://)?(?:[\w.-]+@)?([^:/]+)(?::(\d+))?[:/](.+?)(?:\.git)?/?$`)
)

// ParseRemoteURL 解析 Git remote URL
func ParseRemoteURL(remoteURL string) (Info, error) {
	if remoteURL == "" {
		return Info{}, fmt.Errorf("empty URL")
	}

	var info Info
	var path string

	switch {
	case strings.HasPrefix(remoteURL, "http://") || strings.HasPrefix(remoteURL, "https://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return Info{}, fmt.Errorf("invalid URL: %w", err)
		}
		info.Protocol = "https"
		info.Host = u.Hostname()
		if p := u.Port(); p != "" {
			port, err := strconv.Atoi(p)
			if err != nil {
				return Info{}, fmt.Errorf("invalid port: %s", p)
			}
			info.Port = port
		}
		path = strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")

	case strings.HasPrefix(remoteURL, "ssh://") || strings.Contains(remoteURL, "@") || isSCPLike(remoteURL):
		matches := sshPattern.FindStringSubmatch(remoteURL)
		if len(matches) < 4 {
			return Info{}, fmt.Errorf("invalid SSH URL format: %s", remoteURL)
		}
		info.Protocol = "ssh"
		info.Host = matches[1]
		if matches[2] != "" {
			port, err := strconv.Atoi(matches[2])
			if err != nil {
				return Info{}, fmt.Errorf("invalid port: %s", matches[2])
			}
			info.Port = port
		}
		path = strings.TrimSuffix(matches[3], ".git")

	default:
		return Info{}, fmt.Errorf("unsupported URL format: %s", remoteURL)
	}

	if path == "" {
		return Info{}, fmt.Errorf("missing repository path")
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return Info{}, fmt.Errorf("invalid repository path: %s", path)
	}
	info.Repo = parts[len(parts)-1]
	info.Owner = strings.Join(parts[:len(parts)-1], "/")
	info.Provider = detectProviderFromHost(info.Host)

	return info, nil
}

// isSCPLike host:owner/repo 形式（无用户名）
func isSCPLike(s string) bool {
	colon := strings.Index(s, ":")
	slash := strings.Index(s, "/")
	return colon > 0 && (slash == -1 || colon < slash)
}

// detectProviderFromHost 根据主机名检测Provider类型
func detectProviderFromHost(host string) string {
	host = strings.ToLower(host)
	switch {
	case strings.Contains(host, "github"):
		return "github"
	case strings.Contains(host, "gitlab"):
		return "gitlab"
	case strings.Contains(host, "bitbucket"):
		return "bitbucket"
	case strings.Contains(host, "gitea"), host == "codeberg.org":
		return "gitea"
	default:
		return "unknown"
	}
}

// DisplayName 返回托管平台的展示名称，未知平台返回主机名
func (i Info) DisplayName() string {
	switch i.Provider {
	case "github":
		return "GitHub"
	case "gitlab":
		return "GitLab"
	case "bitbucket":
		return "Bitbucket"
	case "gitea":
		return "Gitea"
	default:
		return i.Host
	}
}

// Slug 返回 owner/repo
func (i Info) Slug() string {
	return i.Owner + "/" + i.Repo
}

// Describe 为远程仓库生成一行展示文本，例如 "origin · GitHub user/repo"。
// URL 无法解析时只返回远程仓库名。
func Describe(remoteName, remoteURL string) string {
	info, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return remoteName
	}
	if remoteName == "" {
		return fmt.Sprintf("%s %s", info.DisplayName(), info.Slug())
	}
	return fmt.Sprintf("%s · %s %s", remoteName, info.DisplayName(), info.Slug())
}
