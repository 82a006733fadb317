package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/leaderboard"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result LeaderboardResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of entries to show")
	return cmd
}
