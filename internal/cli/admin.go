package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cinequiz/internal/domain"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Quiz content and user administration",
	}
	cmd.AddCommand(newAdminDashboardCmd(), newAdminUsersCmd(), newAdminQuizCmd())
	return cmd
}

func newAdminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Aggregate counts and the user roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			dash, err := app.Backend.AdminDashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Users: %d   Quizzes: %d   Attempts: %d\n",
				dash.UserCount, dash.QuizCount, dash.AttemptCount)
			for _, u := range dash.Users {
				fmt.Fprintf(out, "  %-12s %-24s %s\n", u.ID, u.Username, u.Role)
			}
			return nil
		},
	}
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management",
	}

	del := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if err := app.Backend.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notifier.Info("User deleted")
			return nil
		},
	}

	var role string
	setRole := &cobra.Command{
		Use:   "role <user-id>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if role != "user" && role != "admin" {
				return fmt.Errorf("role must be user or admin, got %q", role)
			}
			if err := app.Backend.SetUserRole(cmd.Context(), args[0], role); err != nil {
				return err
			}
			app.Notifier.Success("Role updated to " + role)
			return nil
		},
	}
	setRole.Flags().StringVar(&role, "set", "", "new role (user|admin)")
	_ = setRole.MarkFlagRequired("set")

	cmd.AddCommand(del, setRole)
	return cmd
}

func newAdminQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz content management",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every quiz definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			quizzes, err := app.Backend.AllQuizzes(cmd.Context())
			if err != nil {
				return err
			}
			for _, q := range quizzes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s movie %-10s %-30s %d questions\n",
					q.ID, q.MovieID, q.Title, len(q.Questions))
			}
			return nil
		},
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a quiz from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			def, err := loadQuizDefinition(file)
			if err != nil {
				return err
			}
			created, err := app.Backend.CreateQuiz(cmd.Context(), def)
			if err != nil {
				return err
			}
			app.Notifier.Success("Quiz created: " + created.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "quiz definition YAML")
	_ = create.MarkFlagRequired("file")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <quiz-id>",
		Short: "Replace a quiz from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			def, err := loadQuizDefinition(updateFile)
			if err != nil {
				return err
			}
			if err := app.Backend.UpdateQuiz(cmd.Context(), args[0], def); err != nil {
				return err
			}
			app.Notifier.Success("Quiz updated")
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "quiz definition YAML")
	_ = update.MarkFlagRequired("file")

	del := &cobra.Command{
		Use:   "delete <quiz-id>",
		Short: "Delete a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if err := app.Backend.DeleteQuiz(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notifier.Info("Quiz deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func loadQuizDefinition(path string) (domain.QuizDefinition, error) {
	var def domain.QuizDefinition
	data, err := os.ReadFile(path)
	if err != nil {
		return def, err
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("parse quiz definition: %w", err)
	}
	if def.MovieID == "" || len(def.Questions) == 0 {
		return def, fmt.Errorf("quiz definition needs a movieId and at least one question")
	}
	for i, q := range def.Questions {
		if len(q.Choices) != 4 {
			return def, fmt.Errorf("question %d must have exactly 4 choices", i+1)
		}
		if q.CorrectChoiceIndex < 0 || q.CorrectChoiceIndex > 3 {
			return def, fmt.Errorf("question %d has an out-of-range correct index", i+1)
		}
	}
	return def, nil
}
