package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"secquest_backend/internal/app"
	"secquest_backend/internal/config"

	"github.com/spf13/cobra"
)

// rootOptions 所有子命令共享的参数
type rootOptions struct {
	ConfigDir string
	Format    string // "json" | "text"
}

var validFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "progressctl",
		Short: "SecQuest 学习进度运维工具",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", "configs", "配置文件所在目录")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "输出格式 (json|text)")

	cmd.AddCommand(newRecalcCommand(opts))
	cmd.AddCommand(newRankCommand(opts))
	cmd.AddCommand(newLeaderboardCommand(opts))

	return cmd
}

// openApp 复用服务端的组装逻辑，调用方负责 Close
func openApp(opts *rootOptions) (*app.App, error) {
	cfg, err := config.LoadConfig(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.NewApp(cfg), nil
}

func withApp(opts *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	ctx := context.Background()
	defer a.Close(ctx)
	return fn(ctx, a)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
