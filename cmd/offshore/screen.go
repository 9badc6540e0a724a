package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medetshatayev/offshore/internal/cli"
	"github.com/medetshatayev/offshore/internal/common"
	"github.com/medetshatayev/offshore/internal/engine"
	"github.com/medetshatayev/offshore/internal/export"
	"github.com/medetshatayev/offshore/internal/ingest"
	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/registry"
	"github.com/medetshatayev/offshore/internal/storage"
)

func screenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen a payment export file for offshore risk",
		Long: `Screen reads a CSV payment export, extracts deterministic offshore
signals, classifies every transaction via the configured LLM provider, and
writes annotated results plus a summary.`,
		RunE: runScreen,
	}

	cmd.Flags().StringP("input", "i", "", "input CSV file (required)")
	cmd.Flags().StringP("output", "o", "", "output CSV file (required)")
	cmd.Flags().String("stats", "", "optional statistics JSON file")
	cmd.Flags().StringP("direction", "d", "outgoing", "transaction direction in the file (incoming, outgoing)")
	cmd.Flags().Int64("min-amount", 0, "minimum amount in minor units; smaller payments are skipped")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runScreen(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	statsPath, _ := cmd.Flags().GetString("stats")
	direction, _ := cmd.Flags().GetString("direction")
	minAmount, _ := cmd.Flags().GetInt64("min-amount")

	ingested, err := ingest.ReadFile(inputPath, ingest.Options{
		Direction:      model.Direction(direction),
		MinAmountMinor: minAmount,
	}, logger)
	if err != nil {
		return err
	}
	if len(ingested.Transactions) == 0 {
		return common.NewUserError(
			fmt.Sprintf("no transactions to screen after filtering (%d rows filtered out)", ingested.FilteredOut),
			common.ErrNoTransactions)
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open reference database: %w", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate reference database: %w", err)
	}

	reg := registry.Load(ctx, store, registry.Config{
		SimilarityThreshold: viper.GetFloat64("matching.similarity_threshold"),
		MaxFuzzyLength:      viper.GetInt("matching.max_fuzzy_length"),
	}, logger)

	client, err := createOracleClient()
	if err != nil {
		return err
	}

	engCfg := engine.Config{
		GroupSize:           viper.GetInt("screening.group_size"),
		MaxConcurrentGroups: viper.GetInt("screening.max_concurrent_groups"),
		SemanticAttempts:    viper.GetInt("screening.semantic_attempts"),
		RateLimit:           viper.GetInt("oracle.rate_limit"),
	}

	groups := (len(ingested.Transactions) + 9) / 10
	if engCfg.GroupSize > 0 {
		groups = (len(ingested.Transactions) + engCfg.GroupSize - 1) / engCfg.GroupSize
	}
	bar := progressbar.NewOptions(groups,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Screening transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	engCfg.Progress = func(_, _ int) { _ = bar.Add(1) }

	eng := engine.New(client, reg, engCfg, logger)
	defer eng.Close()

	results, stats, err := eng.ClassifyFile(ctx, ingested.Transactions)
	if err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	// The engine only sees rows that survived ingest filtering.
	stats.FilteredOut = ingested.FilteredOut

	if err := export.WriteResultsFile(outputPath, results); err != nil {
		return err
	}
	if statsPath != "" {
		if err := export.WriteStatisticsFile(statsPath, stats); err != nil {
			return err
		}
	}

	fmt.Println(cli.RenderSummary(stats))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("results written to %s", outputPath)))

	return nil
}
