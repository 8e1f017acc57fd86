package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/penwyp/pushnote/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format 配置文件格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// fileManager 读写 JSON、YAML 或 TOML 配置文件
type fileManager struct {
	configPath string
	format     Format
	mu         sync.Mutex // 保护并发写入
}

// NewManager 创建配置管理器，格式由扩展名决定，默认 YAML
func NewManager(configPath string) (Manager, error) {
	if configPath == "" {
		return nil, errors.New(errors.ErrTypeConfig, "config path cannot be empty")
	}

	return &fileManager{
		configPath: configPath,
		format:     formatFromPath(configPath),
	}, nil
}

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Path 配置文件路径
func (m *fileManager) Path() string {
	return m.configPath
}

// Load 加载配置文件。文件中没有出现的键保留 Default() 的值，
// 显式写出的零值（例如 timeout: 0）原样保留。
// 扩展名与内容不符时依次尝试其他格式。
func (m *fileManager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrTypeConfig, "failed to read config file", err)
	}

	config := Default()
	if err := decode(m.format, data, config); err != nil {
		parsed := false
		for _, f := range []Format{FormatYAML, FormatJSON, FormatTOML} {
			if f == m.format {
				continue
			}
			fallback := Default()
			if decode(f, data, fallback) == nil {
				config = fallback
				parsed = true
				break
			}
		}
		if !parsed {
			return nil, errors.Wrap(errors.ErrTypeConfig, fmt.Sprintf("failed to parse config as %s", m.format), err)
		}
	}

	return config, nil
}

// Save 保存配置文件（原子操作）
func (m *fileManager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := encode(m.format, config)
	if err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to marshal config", err)
	}

	return writeAtomic(m.configPath, data)
}

// CreateDefaultConfig 写入默认配置，YAML 与 TOML 带注释头
func (m *fileManager) CreateDefaultConfig() error {
	cfg := Default()
	cfg.Hints = []HintConfig{
		{Substring: "Create a review", Label: "Create Review"},
	}

	if m.format == FormatJSON {
		return m.Save(cfg)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := encode(m.format, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to marshal config", err)
	}

	header := `# pushnote configuration
# open_links: ask | auto | never
# timeout: seconds before git is stopped, 0 disables it
# hints are matched after the built-in pull/merge request phrases

`
	return writeAtomic(m.configPath, append([]byte(header), data...))
}

func decode(format Format, data []byte, config *Config) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, config)
	case FormatTOML:
		return toml.Unmarshal(data, config)
	case FormatYAML:
		return yaml.Unmarshal(data, config)
	default:
		return errors.New(errors.ErrTypeConfig, fmt.Sprintf("unknown format: %s", format))
	}
}

func encode(format Format, config *Config) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(config, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(config)
	default:
		return nil, errors.New(errors.ErrTypeConfig, fmt.Sprintf("unknown format: %s", format))
	}
}

// writeAtomic 先写入临时文件，然后重命名
func writeAtomic(path string, data []byte) error {
	// 确保目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to create config directory", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to write temp config file", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		// 清理临时文件
		os.Remove(tmpFile)
		return errors.Wrap(errors.ErrTypeConfig, "failed to save config file", err)
	}

	return nil
}

// LoadOrDefault 加载并校验配置，文件不存在时使用 Default()
func LoadOrDefault(m Manager) (*Config, error) {
	cfg, err := m.Load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
