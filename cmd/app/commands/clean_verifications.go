package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	shieldUseCase "github.com/vaultshield/vaultshield/internal/shield/usecase"
)

// RunCleanVerifications removes verification records older than the given
// number of days. This is the retention path for the append-only log; with
// dryRun it only reports how many records would be removed.
func RunCleanVerifications(
	ctx context.Context,
	shield shieldUseCase.ShieldUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning verification records",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := shield.CleanVerifications(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean verification records: %w", err)
	}

	if format == "json" {
		if err := outputCleanJSON(writer, count, days, dryRun); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputCleanText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d verification record(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d verification record(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(writer io.Writer, count int64, days int, dryRun bool) error {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
