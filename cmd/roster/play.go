package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/poke-roster/internal/services/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Build a team interactively",
	Long: `Start an interactive session. Load a Pokémon, add it with four moves and
repeat until the team is complete. Type "help" for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := session.NewSession(&session.Config{Lookup: a.lookup})
	if err != nil {
		return err
	}
	defer sess.Close()

	renderer, err := newRenderer(cmd.OutOrStdout(), noColor)
	if err != nil {
		return err
	}

	return newREPL(sess, renderer, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
