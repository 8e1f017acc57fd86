package cmd

import (
	"fmt"
	"os"

	"github.com/penwyp/pushnote/internal/config"
	"github.com/penwyp/pushnote/internal/errors"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pushnote config file",
		// 配置文件无效时也要能重新生成
		PersistentPreRunE: initLogger,
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigPathCommand())
	return cmd
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long:  `Write a default config file. The format follows the file extension: .yaml/.yml, .toml or .json.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrTypeConfig, "config file already exists: "+path).
					WithSuggestion("Use --force to overwrite it")
			}

			manager, err := config.NewManager(path)
			if err != nil {
				return err
			}
			if err := manager.CreateDefaultConfig(); err != nil {
				return errors.Wrap(errors.ErrTypeConfig, "failed to create config", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", manager.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), configPath())
		},
	}
}
