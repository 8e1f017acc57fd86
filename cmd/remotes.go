package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/git"
	"github.com/penwyp/pushnote/internal/provider"
	"github.com/spf13/cobra"
)

// RemoteRow remotes 表格中的一行
type RemoteRow struct {
	Name     string
	Provider string
	Repo     string
	URL      string
	Selected bool
}

// RemoteLister 列出远程仓库并按规则选出默认仓库
type RemoteLister interface {
	GetRemotes(ctx context.Context) ([]git.Remote, error)
	SelectRemote(remotes []git.Remote, preferredName string) (*git.Remote, error)
}

// remoteListerProvider 测试时可替换
var remoteListerProvider = func() RemoteLister {
	return git.NewRemoteManager(runnerProvider(appLogger))
}

func newRemotesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remotes",
		Short: "List remotes with their hosting provider",
		Long:  `List the configured git remotes, the hosting provider detected from each URL, and the remote push/pull/fetch would pick by default.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := remoteListerProvider()

			remotes, err := lister.GetRemotes(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrTypeGit, "failed to get git remotes", err)
			}
			if len(remotes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No git remotes found")
				return nil
			}

			// 选不出默认仓库（多个且没有 origin）时不标记
			var selected string
			if r, err := lister.SelectRemote(remotes, appConfig.DefaultRemote); err == nil {
				selected = r.Name
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), formatRemotesTable(buildRemoteRows(remotes, selected)))
			return nil
		},
	}
}

func buildRemoteRows(remotes []git.Remote, selected string) []RemoteRow {
	rows := make([]RemoteRow, 0, len(remotes))
	for _, r := range remotes {
		url := r.Descriptor().URL
		row := RemoteRow{Name: r.Name, Provider: "-", Repo: "-", URL: url, Selected: r.Name == selected}
		if info, err := provider.ParseRemoteURL(url); err == nil {
			row.Provider = info.DisplayName()
			row.Repo = info.Slug()
		}
		rows = append(rows, row)
	}
	return rows
}

// formatRemotesTable 格式化远程仓库表格
func formatRemotesTable(rows []RemoteRow) string {
	var sb strings.Builder

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, " \tRemote\tProvider\tRepository\tURL\n")
	for _, row := range rows {
		marker := " "
		if row.Selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, row.Name, row.Provider, row.Repo, row.URL)
	}
	w.Flush()

	// 对齐完成后再上色，转义序列不参与列宽计算
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	for i, row := range rows {
		if row.Selected {
			lines[i+1] = color.GreenString("%s", lines[i+1])
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
