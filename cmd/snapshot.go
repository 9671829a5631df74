package cmd

import (
	"fmt"
	"time"

	"manifest-resolver/core/config"
	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/storage"
	"manifest-resolver/feature/snapshot/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect and sync the definition snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// snapshotStatusCmd represents the snapshot status command
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local snapshot version and schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		opts, err := snapshotOptions(cfg, logg, nil)
		if err != nil {
			return err
		}
		snap, err := manifest.Open(cfg.Manifest, cfg.Database, opts)
		if err != nil {
			return err
		}
		defer snap.Close()

		report, err := checks.CheckSchema(snap.DB())
		if err != nil {
			return err
		}

		fmt.Println("\n--- Snapshot Status ---")
		fmt.Printf("Path:           %s\n", cfg.Manifest.DatabasePath())
		fmt.Printf("Version:        %s\n", snap.Version())
		fmt.Printf("Schema OK:      %v\n", report.Matched)
		for _, table := range manifest.Tables {
			t := report.Tables[string(table)]
			fmt.Printf("- %-34s %-6s rows=%d\n", table, t.Status, t.Rows)
			for _, col := range t.MissingColumns {
				fmt.Printf("    missing column: %s\n", col)
			}
			for _, m := range t.TypeMismatches {
				fmt.Printf("    type mismatch:  %s\n", m)
			}
		}
		for _, e := range report.Errors {
			fmt.Printf("Error: %s\n", e)
		}
		fmt.Println("-----------------------")
		return nil
	},
}

// snapshotPullCmd represents the snapshot pull command
var snapshotPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the published snapshot from object storage",
	Long:  `Compares the published version with the local one and downloads the snapshot when they differ. A running server watching the manifest dir swaps it in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		updated, version, err := manifest.Pull(ctx, client, cfg.Storage.Bucket, cfg.Manifest, cfg.Server.Locale, logg)
		if err != nil {
			return err
		}

		logg.Info("Snapshot pull finished",
			zap.Bool("updated", updated),
			zap.String("version", version),
			zap.Duration("duration", time.Since(startTime)))
		return nil
	},
}

// snapshotPublishedCmd represents the snapshot published command
var snapshotPublishedCmd = &cobra.Command{
	Use:   "published",
	Short: "List the snapshot artifacts in object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		report, err := checks.CheckPublished(cmd.Context(), client, cfg.Storage.Bucket, cfg.Manifest, cfg.Server.Locale)
		if err != nil {
			return err
		}

		fmt.Printf("\n--- Published (%s) ---\n", report.Locale)
		for _, obj := range report.Objects {
			fmt.Printf("%-50s %10d  %s\n", obj.Key, obj.Size, obj.LastModified.Format(time.RFC3339))
		}
		for _, key := range report.Missing {
			fmt.Printf("\033[31mmissing\033[0m %s\n", key)
		}
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotPullCmd)
	snapshotCmd.AddCommand(snapshotPublishedCmd)
	RootCmd.AddCommand(snapshotCmd)
}
