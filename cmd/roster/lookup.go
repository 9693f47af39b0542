package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup"
	"github.com/KirkDiggler/poke-roster/internal/services/session"
)

var lookupRaw bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <name-or-id>...",
	Short: "Look up one or more Pokémon",
	Long:  `Look up Pokémon by name or numeric id and print their sprite, cry and moves.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupRaw, "raw", false, "Print the upstream JSON instead of the summary")
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	renderer, err := newRenderer(cmd.OutOrStdout(), noColor)
	if err != nil {
		return err
	}

	failed := 0
	for i, key := range args {
		output, err := a.lookup.Resolve(ctx, &lookup.ResolveInput{Key: key})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			if err := renderer.Status(session.ErrorStatus(err)); err != nil {
				return err
			}
			continue
		}

		slog.Debug("Resolved pokemon", "key", output.Key, "source", output.Source)

		if lookupRaw {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(output.Record.Raw())); err != nil {
				return err
			}
			continue
		}

		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := renderer.Creature(session.NewCreature(output.Record)); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(args))
	}
	return nil
}
