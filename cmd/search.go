package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"manifest-resolver/core/config"
	"manifest-resolver/core/logger"
	"manifest-resolver/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd searches items by display name in the local snapshot
var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search items by display name",
	Long:  `Lists up to 20 items whose display name contains the term (case-sensitive), in store order.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)
}

func runSearch(ctx context.Context, term string) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, _, err := openStore(ctx, cfg, logg, nil, nil)
	if err != nil {
		logg.Fatal("Snapshot unavailable", zap.Error(err))
	}

	results, err := search.NewService(store, cfg.Search, logg, nil).Search(ctx, term)
	if err != nil {
		logg.Fatal("Search failed", zap.String("term", term), zap.Error(err))
	}

	fmt.Printf("\n--- %d result(s) for %q ---\n", len(results), term)
	for _, r := range results {
		fmt.Printf("%-12d %-40s %s\n", r.Hash, r.DisplayProperties.Name, r.ItemTypeDisplayName)
	}
}
