package remote

import "fmt"

// Remote 远程仓库的展示信息
type Remote struct {
	Name string // 远程仓库名称，如 origin
	URL  string // 远程仓库地址（可选，仅用于展示）
}

// Operation 描述一次已完成的远程操作。
// 只有 Fetch、Pull、Push 三种实现，外部包无法扩展。
type Operation interface {
	isOperation()
	// Kind 返回操作名称，用于日志
	Kind() string
}

// Fetch git fetch，Remote 为 nil 表示抓取全部远程仓库
type Fetch struct {
	Remote *Remote
}

// Pull git pull
type Pull struct {
	Remote Remote
	Rebase bool
}

// Push git push，Branch 为被推送的本地分支
type Push struct {
	Branch string
	Remote Remote
}

func (Fetch) isOperation() {}
func (Pull) isOperation()  {}
func (Push) isOperation()  {}

func (Fetch) Kind() string { return "fetch" }
func (Pull) Kind() string  { return "pull" }
func (Push) Kind() string  { return "push" }

// Output 远程命令捕获的标准输出与标准错误。
// 分类器只读取，不做任何编码转换。
type Output struct {
	Stdout string
	Stderr string
}

// IsEmpty 两个流均为空
func (o Output) IsEmpty() bool {
	return o.Stdout == "" && o.Stderr == ""
}

// Style 展示样式，只有 Plain、WithFullLog、WithActionLink 三种
type Style interface {
	isStyle()
	fmt.Stringer
}

// Plain 仅展示摘要
type Plain struct{}

// WithFullLog 摘要加“查看完整输出”入口
type WithFullLog struct {
	Output Output
}

// WithActionLink 摘要加一个可点击的动作
type WithActionLink struct {
	Label string
	URL   string
}

func (Plain) isStyle()          {}
func (WithFullLog) isStyle()    {}
func (WithActionLink) isStyle() {}

func (Plain) String() string          { return "plain" }
func (WithFullLog) String() string    { return "full_log" }
func (WithActionLink) String() string { return "action_link" }

// Outcome 分类结果：一条摘要与唯一的展示样式
type Outcome struct {
	Message string
	Style   Style
}

// Hint 提示短语与动作标签的对应关系
type Hint struct {
	Substring string
	Label     string
}
