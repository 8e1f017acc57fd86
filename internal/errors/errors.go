package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrTypeUnknown 未知错误
	ErrTypeUnknown ErrorType = iota
	// ErrTypeGit Git 命令相关错误
	ErrTypeGit
	// ErrTypeConfig 配置相关错误
	ErrTypeConfig
	// ErrTypeBrowser 打开链接失败
	ErrTypeBrowser
	// ErrTypeTimeout 超时错误
	ErrTypeTimeout
	// ErrTypeValidation 验证错误
	ErrTypeValidation
)

// String 返回错误类型名称，用于日志字段
func (t ErrorType) String() string {
	switch t {
	case ErrTypeGit:
		return "git"
	case ErrTypeConfig:
		return "config"
	case ErrTypeBrowser:
		return "browser"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// PushnoteError 统一错误结构
type PushnoteError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Retryable  bool
	Suggestion string
	// Details 命令失败时捕获的 stderr，原样保留
	Details string
}

// Error 实现 error 接口
func (e *PushnoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *PushnoteError) Unwrap() error {
	return e.Cause
}

// WithSuggestion 添加解决建议
func (e *PushnoteError) WithSuggestion(suggestion string) *PushnoteError {
	e.Suggestion = suggestion
	return e
}

// WithDetails 附加命令输出
func (e *PushnoteError) WithDetails(details string) *PushnoteError {
	e.Details = details
	return e
}

// IsRetryable 检查错误是否可重试
func (e *PushnoteError) IsRetryable() bool {
	return e.Retryable
}

// New 创建新的 PushnoteError
func New(errType ErrorType, message string) *PushnoteError {
	return &PushnoteError{
		Type:    errType,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(errType ErrorType, message string, cause error) *PushnoteError {
	return &PushnoteError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// WrapRetryable 包装可重试错误
func WrapRetryable(errType ErrorType, message string, cause error) *PushnoteError {
	return &PushnoteError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Retryable: true,
	}
}

// 预定义的常见错误
var (
	ErrNotGitRepository = New(ErrTypeGit, "not a git repository").WithSuggestion("Run pushnote inside a git working tree, or 'git init' to create one")
	ErrDetachedHead     = New(ErrTypeGit, "not on any branch (detached HEAD)").WithSuggestion("Check out a branch before pushing")
	ErrNoRemotes        = New(ErrTypeGit, "no remotes configured").WithSuggestion("Run: git remote add origin <url>")

	ErrInvalidConfig = New(ErrTypeConfig, "invalid configuration").WithSuggestion("Check the hints and open_links entries in your config file")

	ErrNoOpener = New(ErrTypeBrowser, "no program available to open links").WithSuggestion("Install xdg-utils or open the link manually")

	ErrInvalidInput = New(ErrTypeValidation, "invalid input")
)

// Is 检查是否为特定错误
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As 尝试转换为特定错误类型
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetType 获取错误类型
func GetType(err error) ErrorType {
	var pnErr *PushnoteError
	if errors.As(err, &pnErr) {
		return pnErr.Type
	}
	return ErrTypeUnknown
}

// IsRetryable 检查错误是否可重试
func IsRetryable(err error) bool {
	var pnErr *PushnoteError
	if errors.As(err, &pnErr) {
		return pnErr.IsRetryable()
	}
	return false
}

// GetSuggestion 获取错误建议
func GetSuggestion(err error) string {
	var pnErr *PushnoteError
	if errors.As(err, &pnErr) {
		return pnErr.Suggestion
	}
	return ""
}

// GetDetails 获取附带的命令输出
func GetDetails(err error) string {
	var pnErr *PushnoteError
	if errors.As(err, &pnErr) {
		return pnErr.Details
	}
	return ""
}

// FormatError 格式化错误输出
func FormatError(err error) string {
	var pnErr *PushnoteError
	if !errors.As(err, &pnErr) {
		return err.Error()
	}

	msg := pnErr.Error()
	if pnErr.Suggestion != "" {
		msg += fmt.Sprintf("\n💡 %s", pnErr.Suggestion)
	}

	return msg
}
