package config

import (
	"fmt"

	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/remote"
)

// OpenLinksMode 控制动作链接的打开方式
type OpenLinksMode string

const (
	OpenLinksAsk   OpenLinksMode = "ask"   // 在提示中等待用户确认
	OpenLinksAuto  OpenLinksMode = "auto"  // 分类完成后立即打开
	OpenLinksNever OpenLinksMode = "never" // 只显示链接，不打开
)

const (
	currentVersion  = "1.0.0"
	defaultLogLines = 1000
	defaultTimeout  = 120
)

// Config 配置文件结构
type Config struct {
	Version       string        `json:"version" yaml:"version" toml:"version"`
	DefaultRemote string        `json:"default_remote,omitempty" yaml:"default_remote,omitempty" toml:"default_remote,omitempty"`
	OpenLinks     OpenLinksMode `json:"open_links" yaml:"open_links" toml:"open_links"`
	LogLines      int           `json:"log_lines" yaml:"log_lines" toml:"log_lines"`
	Timeout       int           `json:"timeout" yaml:"timeout" toml:"timeout"` // 远程命令超时（秒）
	Hints         []HintConfig  `json:"hints,omitempty" yaml:"hints,omitempty" toml:"hints,omitempty"`
}

// HintConfig 用户自定义的提示短语，追加在内置提示之后
type HintConfig struct {
	Substring string `json:"substring" yaml:"substring" toml:"substring"`
	Label     string `json:"label" yaml:"label" toml:"label"`
}

// Manager 配置管理器接口
type Manager interface {
	// Load 加载配置文件；文件不存在时返回的错误满足 errors.Is(err, fs.ErrNotExist)
	Load() (*Config, error)

	// Save 保存配置文件（原子操作）
	Save(config *Config) error

	// CreateDefaultConfig 创建默认配置
	CreateDefaultConfig() error

	// Path 配置文件路径
	Path() string
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Version:   currentVersion,
		OpenLinks: OpenLinksAsk,
		LogLines:  defaultLogLines,
		Timeout:   defaultTimeout,
	}
}

// Validate 校验配置，返回的错误都包装 errors.ErrInvalidConfig
func (c *Config) Validate() error {
	switch c.OpenLinks {
	case OpenLinksAsk, OpenLinksAuto, OpenLinksNever:
	default:
		return invalid(fmt.Sprintf("invalid open_links mode %q", c.OpenLinks)).
			WithSuggestion("open_links must be one of: ask, auto, never")
	}

	if c.LogLines < 0 {
		return invalid(fmt.Sprintf("log_lines must not be negative, got %d", c.LogLines))
	}
	if c.Timeout < 0 {
		return invalid(fmt.Sprintf("timeout must not be negative, got %d", c.Timeout))
	}

	for i, h := range c.Hints {
		if h.Substring == "" {
			return invalid(fmt.Sprintf("hints[%d]: substring is empty", i))
		}
		if h.Label == "" {
			return invalid(fmt.Sprintf("hints[%d]: label is empty", i))
		}
	}

	return nil
}

func invalid(message string) *errors.PushnoteError {
	return errors.Wrap(errors.ErrTypeConfig, message, errors.ErrInvalidConfig).
		WithSuggestion(errors.ErrInvalidConfig.Suggestion)
}

// ClassifierHints 转换为分类器使用的提示
func (c *Config) ClassifierHints() []remote.Hint {
	hints := make([]remote.Hint, 0, len(c.Hints))
	for _, h := range c.Hints {
		hints = append(hints, remote.Hint{Substring: h.Substring, Label: h.Label})
	}
	return hints
}
