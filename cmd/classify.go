package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/provider"
	"github.com/penwyp/pushnote/internal/remote"
	"github.com/penwyp/pushnote/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type classifyFlags struct {
	op         string
	branch     string
	remoteName string
	remoteURL  string
	stdoutFile string
	stderrFile string
	rebase     bool
	asJSON     bool
}

// outcomeJSON classify --json 的输出
type outcomeJSON struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Style     string `json:"style"`
	Label     string `json:"label,omitempty"`
	URL       string `json:"url,omitempty"`
}

func newClassifyCommand() *cobra.Command {
	var f classifyFlags

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Summarize previously captured git output",
		Long: `Classify output captured from an earlier git push, pull or fetch.

Without --stderr-file the captured stderr is read from standard input, so
the command can sit at the end of a pipe:

  git push 2>&1 >/dev/null | pushnote classify --branch feature --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := buildOperation(f)
			if err != nil {
				return err
			}

			out, err := readOutput(cmd.InOrStdin(), f)
			if err != nil {
				return err
			}

			outcome := newClassifier().Classify(op, out)
			appLogger.Debug("Output classified",
				zap.String("operation", op.Kind()),
				zap.Int("stdout_length", len(out.Stdout)),
				zap.Int("stderr_length", len(out.Stderr)),
				zap.Stringer("style", outcome.Style))

			if f.asJSON {
				return writeOutcomeJSON(cmd.OutOrStdout(), op, outcome)
			}
			header := provider.Describe(f.remoteName, f.remoteURL)
			_, err = fmt.Fprint(cmd.OutOrStdout(), ui.RenderOutcome(outcome, header, ui.DefaultStyles()))
			return err
		},
	}

	cmd.Flags().StringVar(&f.op, "op", "push", "operation that produced the output: push, pull or fetch")
	cmd.Flags().StringVar(&f.branch, "branch", "HEAD", "branch that was pushed")
	cmd.Flags().StringVar(&f.remoteName, "remote", "origin", "remote name")
	cmd.Flags().StringVar(&f.remoteURL, "url", "", "remote URL, used for the header only")
	cmd.Flags().StringVar(&f.stdoutFile, "stdout-file", "", "file with the captured stdout (- for stdin)")
	cmd.Flags().StringVar(&f.stderrFile, "stderr-file", "", "file with the captured stderr (- for stdin, the default)")
	cmd.Flags().BoolVar(&f.rebase, "rebase", false, "the pull used --rebase")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the outcome as JSON")
	return cmd
}

// buildOperation 由命令行参数构造操作描述
func buildOperation(f classifyFlags) (remote.Operation, error) {
	r := remote.Remote{Name: f.remoteName, URL: f.remoteURL}

	switch f.op {
	case "push":
		return remote.Push{Branch: f.branch, Remote: r}, nil
	case "pull":
		return remote.Pull{Remote: r, Rebase: f.rebase}, nil
	case "fetch":
		if f.remoteName == "" {
			return remote.Fetch{}, nil
		}
		return remote.Fetch{Remote: &r}, nil
	default:
		return nil, errors.Wrap(errors.ErrTypeValidation, fmt.Sprintf("unknown operation %q", f.op), errors.ErrInvalidInput).
			WithSuggestion("Use --op push, --op pull or --op fetch")
	}
}

// readOutput 读取捕获的输出；stdin 只能作为其中一个流
func readOutput(stdin io.Reader, f classifyFlags) (remote.Output, error) {
	stderrFile := f.stderrFile
	if stderrFile == "" && f.stdoutFile != "-" {
		stderrFile = "-"
	}
	if stderrFile == "-" && f.stdoutFile == "-" {
		return remote.Output{}, errors.Wrap(errors.ErrTypeValidation, "stdout and stderr cannot both be read from stdin", errors.ErrInvalidInput)
	}

	var out remote.Output
	var err error
	if out.Stdout, err = readSource(stdin, f.stdoutFile); err != nil {
		return remote.Output{}, err
	}
	if out.Stderr, err = readSource(stdin, stderrFile); err != nil {
		return remote.Output{}, err
	}
	return out, nil
}

func readSource(stdin io.Reader, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrTypeValidation, "failed to read stdin", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrTypeValidation, "failed to read "+path, err)
		}
		return string(data), nil
	}
}

func writeOutcomeJSON(w io.Writer, op remote.Operation, outcome remote.Outcome) error {
	payload := outcomeJSON{
		Operation: op.Kind(),
		Message:   outcome.Message,
		Style:     outcome.Style.String(),
	}
	if link, ok := outcome.Style.(remote.WithActionLink); ok {
		payload.Label = link.Label
		payload.URL = link.URL
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}
