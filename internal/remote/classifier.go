package remote

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// pushUpToDate git push 无变更时 stderr 的最后一行
	pushUpToDate = "Everything up-to-date\n"
	// remoteMarker 服务端消息以 "remote: " 开头的行
	remoteMarker = "\nremote: "
)

// pullUpToDate git pull 无变更时 stdout 的结尾，兼容旧版本 git 的写法
var pullUpToDate = []string{
	"Already up to date.\n",
	"Already up-to-date.\n",
}

// filesChangedPattern 匹配 diffstat 行，如 " 3 files changed, 10 insertions(+)"
var filesChangedPattern = regexp.MustCompile(`\d+ files? changed`)

// defaultHints 内置提示表。顺序即优先级：前面的条目可能是后面条目的子串。
var defaultHints = []Hint{
	{Substring: "Create a pull request", Label: "Create Pull Request"},
	{Substring: "Create pull request", Label: "Create Pull Request"},
	{Substring: "create a merge request", Label: "Create Merge Request"},
	{Substring: "View merge request", Label: "View Merge Request"},
}

// DefaultHints 返回内置提示表的副本
func DefaultHints() []Hint {
	hints := make([]Hint, len(defaultHints))
	copy(hints, defaultHints)
	return hints
}

// Classifier 将远程命令的输出归类为展示结果。
// 零值不可用，请使用 NewClassifier。创建后只读，可并发使用。
type Classifier struct {
	hints []Hint
}

// NewClassifier 创建分类器。extra 追加在内置提示之后，不会改变内置条目的优先级。
func NewClassifier(extra ...Hint) *Classifier {
	hints := make([]Hint, 0, len(defaultHints)+len(extra))
	hints = append(hints, defaultHints...)
	for _, h := range extra {
		if h.Substring == "" || h.Label == "" {
			continue
		}
		hints = append(hints, h)
	}
	return &Classifier{hints: hints}
}

// Hints 返回当前生效的提示表副本
func (c *Classifier) Hints() []Hint {
	hints := make([]Hint, len(c.hints))
	copy(hints, c.hints)
	return hints
}

var defaultClassifier = NewClassifier()

// Classify 使用内置提示表分类
func Classify(op Operation, out Output) Outcome {
	return defaultClassifier.Classify(op, out)
}

// Classify 总是返回一个可用的结果，没有错误路径。
func (c *Classifier) Classify(op Operation, out Output) Outcome {
	switch op := op.(type) {
	case Push:
		return c.classifyPush(op, out)
	case Pull:
		return classifyPull(op, out)
	case Fetch:
		return classifyFetch(op, out)
	default:
		// 不会出现；Operation 是封闭的
		return Outcome{Message: "Remote operation finished", Style: fullLogOrPlain(out)}
	}
}

func (c *Classifier) classifyPush(op Push, out Output) Outcome {
	if strings.HasSuffix(out.Stderr, pushUpToDate) {
		return Outcome{Message: "Push: Everything is up-to-date", Style: Plain{}}
	}

	outcome := Outcome{
		Message: fmt.Sprintf("Pushed %s to %s", op.Branch, op.Remote.Name),
		Style:   WithFullLog{Output: out},
	}

	if !strings.Contains(out.Stderr, remoteMarker) {
		return outcome
	}

	hint, ok := c.matchHint(out.Stderr)
	if !ok {
		return outcome
	}

	// 链接在整个 stderr 中查找，而不只是命中提示的那一行
	link, ok := FindLink(out.Stderr)
	if !ok {
		return outcome
	}

	outcome.Style = WithActionLink{Label: hint.Label, URL: link}
	return outcome
}

// matchHint 按表顺序做子串匹配，不按行锚定
func (c *Classifier) matchHint(text string) (Hint, bool) {
	for _, h := range c.hints {
		if strings.Contains(text, h.Substring) {
			return h, true
		}
	}
	return Hint{}, false
}

func classifyPull(op Pull, out Output) Outcome {
	for _, suffix := range pullUpToDate {
		if strings.HasSuffix(out.Stdout, suffix) {
			return Outcome{Message: "Pull: Already up to date", Style: Plain{}}
		}
	}

	// diffstat 优先于合并方式：merge 与 fast-forward 都会打印它
	name := op.Remote.Name
	var message string
	switch changed := filesChangedPattern.FindString(out.Stdout); {
	case changed != "":
		message = fmt.Sprintf("Pulled from %s: %s", name, changed)
	case strings.HasPrefix(out.Stdout, "Merge"):
		message = fmt.Sprintf("Merged from %s", name)
	case strings.Contains(out.Stdout, "Successfully rebased") || strings.Contains(out.Stderr, "Successfully rebased"):
		message = fmt.Sprintf("Rebased onto %s", name)
	default:
		message = fmt.Sprintf("Pulled from %s", name)
	}

	return Outcome{Message: message, Style: fullLogOrPlain(out)}
}

func classifyFetch(op Fetch, out Output) Outcome {
	if strings.TrimSpace(out.Stdout) == "" && strings.TrimSpace(out.Stderr) == "" {
		return Outcome{Message: "Fetch: Already up to date", Style: Plain{}}
	}

	message := "Fetched from all remotes"
	if op.Remote != nil {
		message = fmt.Sprintf("Fetched from %s", op.Remote.Name)
	}
	return Outcome{Message: message, Style: WithFullLog{Output: out}}
}

func fullLogOrPlain(out Output) Style {
	if out.IsEmpty() {
		return Plain{}
	}
	return WithFullLog{Output: out}
}
