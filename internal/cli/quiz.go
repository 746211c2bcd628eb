package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cinequiz/internal/config"
	"cinequiz/internal/quiz"
)

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <movie-id>",
		Short: "Take the trivia quiz for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			return runQuiz(cmd, app, args[0])
		},
	}
}

func runQuiz(cmd *cobra.Command, app *App, movieID string) error {
	ctrl := quiz.New(movieID, app.Backend, app.Details, app.Log)
	ctrl.RevealDelay = config.Duration(app.Cfg.Quiz.RevealDelay, quiz.DefaultRevealDelay)

	// An interrupt mid-quiz is the unplanned-departure case: submit whatever
	// has been locked in so far, best effort, then leave.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctrl.Abandon(ctx)
		os.Exit(1)
	}()

	out := cmd.OutOrStdout()
	if err := ctrl.Load(cmd.Context()); err != nil {
		app.Notifier.Error("Could not load the quiz. Try again later.")
		return err
	}

	switch ctrl.State() {
	case quiz.StateAlreadyTaken:
		fmt.Fprintf(out, "You have already completed the quiz for %s.\n", ctrl.MovieTitle())
		fmt.Fprintln(out, "See your results with `cinequiz profile`.")
		return nil
	case quiz.StateNoQuestions:
		fmt.Fprintf(out, "No quiz available for %s yet.\n", ctrl.MovieTitle())
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "%s: ready to start?\n", ctrl.MovieTitle())
	fmt.Fprintln(out, "Once you start, leaving counts as an attempt and your score is submitted.")
	fmt.Fprint(out, "Start? [y/N] ")
	if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
		return nil
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	for ctrl.State() == quiz.StateInProgress {
		question, index, total := ctrl.Current()
		fmt.Fprintf(out, "\nQuestion %d of %d  (%ds elapsed)\n", index+1, total, int(ctrl.Elapsed().Seconds()))
		fmt.Fprintln(out, question.Text)
		for i, choice := range question.Choices {
			fmt.Fprintf(out, "  %d) %s\n", i+1, choice)
		}
		fmt.Fprint(out, "Answer (1-4, q to exit): ")

		if !scanner.Scan() {
			// stdin closed under us; same handling as a tab close
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ctrl.Abandon(ctx)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(input, "q") {
			if err := ctrl.RequestExit(); err != nil {
				return err
			}
			fmt.Fprint(out, "Exit quiz? Your score will be submitted anyway. [y/N] ")
			if scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				if err := ctrl.ConfirmExit(cmd.Context()); err != nil {
					app.Notifier.Error("Error submitting quiz.")
					return err
				}
				fmt.Fprintln(out, "Quiz exited. Partial results submitted.")
				return nil
			}
			if err := ctrl.CancelExit(); err != nil {
				return err
			}
			continue
		}

		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(question.Choices) {
			fmt.Fprintln(out, "Pick a number between 1 and", len(question.Choices))
			continue
		}

		correct, err := ctrl.SelectAnswer(choice - 1)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong. The answer was %q\n", question.Choices[question.CorrectChoiceIndex])
		}

		time.Sleep(ctrl.RevealDelay)
		if err := ctrl.RevealElapsed(cmd.Context()); err != nil {
			app.Notifier.Error("Error submitting quiz.")
			return err
		}
	}

	if ctrl.State() == quiz.StateFinished {
		result := ctrl.Result()
		fmt.Fprintln(out, "\nQuiz complete!")
		fmt.Fprintf(out, "  Points: %d\n", result.Score)
		fmt.Fprintf(out, "  Time:   %ds\n", result.TimeTaken)
		fmt.Fprintf(out, "  Rank:   #%d\n", result.Rank)
		fmt.Fprintf(out, "  Correct: %d/%d\n", result.CorrectCount, result.TotalQuestions)
	}
	return nil
}
