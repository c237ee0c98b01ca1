package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"momo-sms/internal/logger"
	"momo-sms/internal/parser"
	"momo-sms/internal/store"
	"momo-sms/internal/writer"
)

var (
	csvDir        string
	addressFilter string
	startDate     string
	workers       int
	noDB          bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [xml-file]",
	Short: "Parse an SMS backup file and store the extracted transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&csvDir, "csv", "o", "", "Also write a CSV file to this directory (created if not exists)")
	parseCmd.Flags().StringVarP(&addressFilter, "address", "a", "", "Filter by sender address (e.g., 'M-Money')")
	parseCmd.Flags().StringVarP(&startDate, "from", "f", "", "Filter messages from this date onwards (format: YYYY-MM-DD)")
	parseCmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of extraction workers")
	parseCmd.Flags().BoolVar(&noDB, "no-db", false, "Skip database persistence (CSV output only)")
	RootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.New(logLevel)

	p := parser.New(log)
	p.Address = addressFilter
	p.Workers = workers
	if startDate != "" {
		from, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}
		p.StartDate = from
	}

	transactions, err := p.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse SMS backup: %w", err)
	}

	parsed := 0
	for _, tx := range transactions {
		if tx.IsParsed {
			parsed++
		}
	}
	log.Info().
		Int("total", len(transactions)).
		Int("parsed", parsed).
		Msg("extraction finished")

	if !noDB {
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer st.Close()

		saved, skipped, err := st.SaveBatch(context.Background(), transactions)
		if err != nil {
			return fmt.Errorf("failed to store transactions: %w", err)
		}
		log.Info().
			Int("saved", saved).
			Int("skipped", skipped).
			Str("db", dbPath).
			Msg("stored transactions")
	}

	if csvDir != "" {
		if err := os.MkdirAll(csvDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		w := writer.New(csvDir)
		if err := w.Write(transactions); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	return nil
}
