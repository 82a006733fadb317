package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player identity operations",
	}

	cmd.AddCommand(newPlayerGuestCmd())
	return cmd
}

func newPlayerGuestCmd() *cobra.Command {
	var avatar string

	cmd := &cobra.Command{
		Use:   "guest <username>",
		Short: "Create a guest identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			body := map[string]string{"username": args[0]}
			if avatar != "" {
				body["avatar"] = avatar
			}
			if err := client.Post("/api/v1/players/guest", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar identifier")
	return cmd
}
