package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/penwyp/pushnote/internal/browser"
	"github.com/penwyp/pushnote/internal/config"
	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/git"
	"github.com/penwyp/pushnote/internal/logger"
	"github.com/penwyp/pushnote/internal/provider"
	"github.com/penwyp/pushnote/internal/remote"
	"github.com/penwyp/pushnote/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version holds the current version of pushnote
// This will be set at build time via ldflags
var version = "dev"

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("pushnote version %s", version)
}

// 将关键依赖抽象为可替换的函数以便测试时注入。
// 若在运行时未被替换，则使用默认实现。
var (
	runnerProvider    func(logger *zap.Logger) git.Runner = defaultRunnerProvider
	openerProvider    func() browser.Opener               = defaultOpenerProvider
	clipboardProvider func() func(text string) error      = defaultClipboardProvider
	isTerminal        func() bool                         = defaultIsTerminal
	runProgram        func(model tea.Model) error         = defaultRunProgram

	appLogger *zap.Logger
	appConfig *config.Config
)

func defaultRunnerProvider(logger *zap.Logger) git.Runner {
	return git.NewExecRunner("", logger)
}

func defaultOpenerProvider() browser.Opener {
	return browser.NewSystemOpener()
}

// defaultClipboardProvider 系统没有可用的剪贴板工具时返回 nil
func defaultClipboardProvider() func(text string) error {
	if clipboard.Unsupported {
		return nil
	}
	return clipboard.WriteAll
}

func defaultIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func defaultRunProgram(model tea.Model) error {
	_, err := tea.NewProgram(model).Run()
	return err
}

// ExitError 携带进程退出码的错误
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode 返回错误对应的进程退出码
func ExitCode(err error) int {
	if err == nil {
		return errors.ExitCodeSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.ExitCodeTimeout
	}
	if errors.GetType(err) == errors.ErrTypeConfig {
		return errors.ExitCodeConfigError
	}
	return errors.ExitCodeGenericError
}

// -------------------------------------------------

var rootCmd = &cobra.Command{
	Use:   "pushnote",
	Short: "Run git push/pull/fetch and summarize what the remote said",
	Long: `pushnote runs git push, pull or fetch and turns the captured output
into a one-line summary.

When the remote suggests a follow-up action, for example "Create a pull
request" on GitHub or "create a merge request" on GitLab, pushnote offers
the link as a single action that opens it in your browser. Otherwise the
full output is one key away.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

var (
	flagDebug  bool
	flagConfig string
	flagNoTUI  bool
	flagOpen   bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug output for troubleshooting")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/pushnote/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoTUI, "no-tui", false, "print a static summary instead of the interactive view")
	rootCmd.PersistentFlags().BoolVar(&flagOpen, "open", false, "open the suggested link immediately (open_links: auto)")

	rootCmd.AddCommand(
		newPushCommand(),
		newPullCommand(),
		newFetchCommand(),
		newClassifyCommand(),
		newRemotesCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
}

func Execute() error { return rootCmd.Execute() }

// setup 初始化日志与配置
func setup(cmd *cobra.Command, args []string) error {
	if err := initLogger(cmd, args); err != nil {
		return err
	}

	path := configPath()
	manager, err := config.NewManager(path)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadOrDefault(manager)
	if err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to load config "+path, err).
			WithSuggestion(errors.GetSuggestion(err))
	}
	if flagOpen {
		appConfig.OpenLinks = config.OpenLinksAuto
	}

	appLogger.Debug("Configuration loaded",
		zap.String("path", path),
		zap.String("open_links", string(appConfig.OpenLinks)),
		zap.Int("hints", len(appConfig.Hints)))
	return nil
}

// initLogger 只初始化日志，不读取配置
func initLogger(cmd *cobra.Command, args []string) error {
	var err error
	appLogger, err = logger.New(flagDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// 不读取配置
		PersistentPreRunE: initLogger,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), GetVersionString())
		},
	}
}

func newExecutor() *git.Executor {
	return git.NewExecutor(runnerProvider(appLogger), appLogger)
}

func newClassifier() *remote.Classifier {
	return remote.NewClassifier(appConfig.ClassifierHints()...)
}

func interactive() bool {
	return !flagNoTUI && isTerminal()
}

func operationTimeout() time.Duration {
	if appConfig == nil || appConfig.Timeout <= 0 {
		return 0
	}
	return time.Duration(appConfig.Timeout) * time.Second
}

// runOperation 执行远程操作、分类输出并展示结果
func runOperation(cmd *cobra.Command, label string, task ui.Task) error {
	ctx := cmd.Context()

	var (
		opCtx  context.Context
		cancel context.CancelFunc
	)
	if timeout := operationTimeout(); timeout > 0 {
		opCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		opCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var (
		completed *git.Completed
		err       error
	)
	if interactive() {
		loading := ui.NewLoadingModel(opCtx, label, task, ui.DefaultStyles())
		if err := runProgram(loading); err != nil {
			return err
		}
		completed, err = loading.Result()
	} else {
		completed, err = task(opCtx)
	}

	if err != nil {
		// 用户按 Ctrl+C 取消
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return reportFailure(cmd, err)
	}

	outcome := newClassifier().Classify(completed.Operation, completed.Output)
	appLogger.Debug("Output classified",
		zap.String("operation", completed.Operation.Kind()),
		zap.String("message", outcome.Message),
		zap.Stringer("style", outcome.Style))

	return present(cmd, outcome, headerFor(completed.Operation))
}

// reportFailure 打印失败信息并返回带退出码的错误
func reportFailure(cmd *cobra.Command, err error) error {
	handler := errors.NewErrorHandler()
	failure := handler.HandleGitError(err)
	appLogger.Debug("Remote operation failed", zap.Error(err), zap.Int("exit_code", failure.ExitCode), zap.Bool("retryable", failure.IsRetryable))

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), handler.FormatFailure(failure))
	return &ExitError{Code: failure.ExitCode, Err: err}
}

// present 交互模式展示提示框，否则打印静态摘要
func present(cmd *cobra.Command, outcome remote.Outcome, header string) error {
	styles := ui.DefaultStyles()

	if interactive() {
		toast := ui.NewToastModel(cmd.Context(), outcome, ui.ToastOptions{
			Header:   header,
			OpenMode: appConfig.OpenLinks,
			LogLines: appConfig.LogLines,
			Opener:   openerProvider(),
			Copy:     clipboardProvider(),
			Styles:   styles,
		})
		return runProgram(toast)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), ui.RenderOutcome(outcome, header, styles))

	link, ok := outcome.Style.(remote.WithActionLink)
	if !ok || appConfig.OpenLinks != config.OpenLinksAuto {
		return nil
	}
	if err := openerProvider().Open(cmd.Context(), link.URL); err != nil {
		// 链接已打印，打开失败只提示不改变退出码
		appLogger.Warn("Failed to open link", zap.String("url", link.URL), zap.Error(err))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errors.FormatError(err))
	}
	return nil
}

// headerFor 生成远程仓库描述，例如 "origin · GitHub user/repo"
func headerFor(op remote.Operation) string {
	switch op := op.(type) {
	case remote.Push:
		return provider.Describe(op.Remote.Name, op.Remote.URL)
	case remote.Pull:
		return provider.Describe(op.Remote.Name, op.Remote.URL)
	case remote.Fetch:
		if op.Remote != nil {
			return provider.Describe(op.Remote.Name, op.Remote.URL)
		}
		return "all remotes"
	}
	return ""
}
