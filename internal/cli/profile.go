package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinequiz/internal/domain"
)

func newProfileCmd() *cobra.Command {
	var userID, avatar string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show a profile, or update your avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}

			if avatar != "" {
				if err := app.Backend.UpdateAvatar(cmd.Context(), avatar); err != nil {
					return err
				}
				app.Notifier.Success("Avatar updated")
				return nil
			}

			var profile domain.Profile
			if userID != "" {
				profile, err = app.Backend.UserProfile(cmd.Context(), userID)
			} else {
				profile, err = app.Backend.Profile(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  (rank #%d, %d points, %d friends)\n",
				profile.User.Username, profile.GlobalRank, profile.TotalScore, profile.FriendsCount)
			for _, r := range profile.QuizHistory {
				fmt.Fprintf(out, "  %d/%d correct, %d points, %ds\n",
					r.CorrectCount, r.TotalQuestions, r.Score, r.TimeTaken)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "view another user's profile by ID")
	cmd.Flags().StringVar(&avatar, "avatar", "", "set a new avatar URL")
	return cmd
}
