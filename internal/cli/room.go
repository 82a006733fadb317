package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room operations",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		username string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			body := map[string]any{
				"name":     args[0],
				"username": username,
			}
			if duration > 0 {
				body["duration"] = duration
			}
			if err := client.Post("/api/v1/rooms", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Creator username (required)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Race duration in seconds")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Look up a room by its join code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			code := strings.ToUpper(args[0])
			if err := client.Get("/api/v1/rooms/"+code, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
