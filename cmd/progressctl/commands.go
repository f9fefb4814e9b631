package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"secquest_backend/internal/app"
	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/spf13/cobra"
)

func newRecalcCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc-streaks",
		Short: "根据完成历史重算所有用户的连续学习天数",
		Long: `根据房间和实验的完成历史重建每个用户的连续学习记录。

与 POST /api/admin/streaks/recalculate 使用同一把任务锁，
已有任务运行时直接失败。单个用户失败不影响其他用户，失败列表会输出。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				summary, err := a.RecalcService().RecalculateAll(ctx)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				return printSummary(cmd.OutOrStdout(), summary)
			})
		},
	}
}

func newRankCommand(opts *rootOptions) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "查询用户在积分榜上的名次",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				rank, err := a.LeaderboardService().GetRank(ctx, userID)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"userId": userID, "rank": rank})
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %d rank %d\n", userID, rank)
				return err
			})
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "用户ID")
	return cmd
}

func newLeaderboardCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "输出积分排行榜",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				entries, err := a.LeaderboardService().GetLeaderboard(ctx, limit)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				return printLeaderboard(cmd.OutOrStdout(), entries)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", util.DefaultLeaderboardLimit, "返回数量")
	return cmd
}

func printSummary(w io.Writer, s *service.RecalcSummary) error {
	fmt.Fprintf(w, "total users:   %d\n", s.TotalUsers)
	fmt.Fprintf(w, "updated users: %d\n", s.UpdatedUsers)
	fmt.Fprintf(w, "duration:      %s\n", s.Duration)
	if len(s.Failures) == 0 {
		return nil
	}
	fmt.Fprintf(w, "failures:      %d\n", len(s.Failures))
	for _, f := range s.Failures {
		fmt.Fprintf(w, "  user %d: %s\n", f.UserID, f.Error)
	}
	return nil
}

func printLeaderboard(w io.Writer, entries []service.LeaderboardEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tNAME\tPOINTS\tLEVEL\tSTREAK")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\n", e.Rank, e.UserID, e.Name, e.Points, e.Level, e.CurrentStreak)
	}
	return tw.Flush()
}
