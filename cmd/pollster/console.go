package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pollster/internal/cli"
	"github.com/aretw0/pollster/internal/presentation/tui"
	"github.com/aretw0/pollster/pkg/adapters/console"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/runner"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Take the survey in the terminal",
	Long: `Runs a single user through the survey on stdin/stdout. Type a choice label or its
number; share a contact with "/contact <phone>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		userID, _ := cmd.Flags().GetString("user")
		if console.IsInteractive(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		term := console.New(os.Stdout)
		r := runner.NewRunner(term.Handler(app.Controller), term, app.Sink, app.RunnerOptions()...)

		// Greet before the first keystroke: an empty line is rejected and re-prompts the first question.
		if err := r.Dispatch(ctx, domain.Inbound{UserID: userID}); err != nil {
			return err
		}

		stdin := cli.NewInterruptibleReader(os.Stdin, ctx.Done())
		return cli.HandleExecutionError(r.Run(ctx, term.Read(ctx, stdin, userID)))
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringP("user", "u", "console", "User id for the terminal session")
}
