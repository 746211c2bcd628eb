package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFriendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Manage friendships",
	}
	cmd.AddCommand(
		newFriendsListCmd(),
		newFriendsRequestsCmd(),
		newFriendsSendCmd(),
		newFriendsAcceptCmd(),
		newFriendsRejectCmd(),
		newFriendsRemoveCmd(),
	)
	return cmd
}

func newFriendsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List confirmed friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			list, err := app.Friends.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No friends yet.")
				return nil
			}
			for _, f := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", f.Username, f.UserID)
			}
			return nil
		},
	}
}

func newFriendsRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending incoming requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			requests, err := app.Friends.RefreshPending(cmd.Context())
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending requests.")
				return nil
			}
			for _, r := range requests {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s from %s\n", r.ID, r.FromName)
			}
			return nil
		},
	}
}

func newFriendsSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <username>",
		Short: "Send a friend request by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			users, err := app.Backend.SearchUsers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, u := range users {
				if u.Username == args[0] {
					return app.Friends.Send(cmd.Context(), u.ID)
				}
			}
			return fmt.Errorf("no user named %q", args[0])
		},
	}
}

func newFriendsAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <request-id>",
		Short: "Accept a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if _, err := app.Friends.RefreshPending(cmd.Context()); err != nil {
				return err
			}
			for _, r := range app.Friends.Pending() {
				if r.ID == args[0] {
					return app.Friends.Accept(cmd.Context(), r)
				}
			}
			return fmt.Errorf("no pending request %q", args[0])
		},
	}
}

func newFriendsRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if _, err := app.Friends.RefreshPending(cmd.Context()); err != nil {
				return err
			}
			for _, r := range app.Friends.Pending() {
				if r.ID == args[0] {
					return app.Friends.Reject(cmd.Context(), r)
				}
			}
			return fmt.Errorf("no pending request %q", args[0])
		},
	}
}

func newFriendsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user-id>",
		Short: "End a friendship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			return app.Friends.Remove(cmd.Context(), args[0])
		},
	}
}
