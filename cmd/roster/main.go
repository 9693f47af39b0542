// Package main is the entry point for the roster CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Build a team of Pokémon from the PokeAPI",
	Long: `Roster looks up Pokémon by name or id, lets you pick four moves for each
and keeps a team of up to six. Lookups are cached in memory and in a local store.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(playCmd)
}
