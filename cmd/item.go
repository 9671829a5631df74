package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"manifest-resolver/core/config"
	"manifest-resolver/core/logger"
	"manifest-resolver/feature/item"
	"manifest-resolver/feature/item/models"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var itemJSON bool

// itemCmd hydrates a single item from the local snapshot
var itemCmd = &cobra.Command{
	Use:   "item [hash]",
	Short: "Hydrate an item from the local snapshot",
	Long:  `Resolves an item by its signed identifier and prints its stats, fixed perks and random perk columns.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runItem(cmd.Context(), args[0])
	},
}

func init() {
	itemCmd.Flags().BoolVar(&itemJSON, "json", false, "Print the hydrated item as JSON")
	RootCmd.AddCommand(itemCmd)
}

func runItem(ctx context.Context, hash string) {
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

	feature, err := item.NewFeature(store, cfg.Hydration, logg, nil)
	if err != nil {
		logg.Fatal("Failed to create item feature", zap.Error(err))
	}

	view, err := feature.Service().GetItemByHash(ctx, hash)
	if err != nil {
		logg.Fatal("Item hydration failed", zap.String("hash", hash), zap.Error(err))
	}

	if itemJSON {
		out, _ := json.MarshalIndent(view, "", "  ")
		fmt.Println(string(out))
		return
	}
	printItem(view)
}

func printItem(view *models.Item) {
	name := ""
	if view.DisplayProperties != nil {
		name = view.DisplayProperties.Name
	}

	fmt.Println("\n--- Item Detail View ---")
	fmt.Printf("Hash:           %d\n", view.Hash)
	fmt.Printf("Name:           %s\n", name)
	fmt.Printf("Type:           %s\n", view.ItemTypeDisplayName)
	if view.FlavorText != "" {
		fmt.Printf("Flavor:         %s\n", view.FlavorText)
	}

	if view.Stats != nil && len(view.Stats.Stats) > 0 {
		fmt.Println("\nStats:")
		for id, stat := range view.Stats.Stats {
			label := id
			if stat.DisplayProperties != nil && stat.DisplayProperties.Name != "" {
				label = stat.DisplayProperties.Name
			}
			fmt.Printf("- %-20s %v\n", label, stat.Value)
		}
	}

	if len(view.Perks) > 0 {
		fmt.Println("\nPerks:")
		for _, p := range view.Perks {
			fmt.Printf("- %s\n", p.DisplayProperties.Name)
		}
	}

	for i, column := range view.RandomPerkColumns {
		names := make([]string, len(column))
		for j, p := range column {
			names[j] = p.DisplayProperties.Name
		}
		fmt.Printf("Column %d:       %s\n", i+1, strings.Join(names, ", "))
	}
	fmt.Println("------------------------")
}
