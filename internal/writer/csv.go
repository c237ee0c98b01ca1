package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"momo-sms/internal/models"
)

var fieldnames = []string{
	"transaction_date", "transaction_type", "amount", "currency", "fee",
	"balance_after", "transaction_id", "sender_name", "receiver_name",
	"agent_name", "is_parsed", "confidence_score",
}

// Writer handles CSV file writing
type Writer struct {
	outputDir string
}

// New creates a new Writer instance
func New(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
	}
}

// Write writes transactions to transactions.csv in the output directory,
// sorted by transaction date. The file carries a UTF-8 BOM and uses a
// semicolon delimiter so spreadsheet imports pick the columns up without
// prompting.
func (w *Writer) Write(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
	})

	filename := filepath.Join(w.outputDir, "transactions.csv")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", filename, err)
	}
	defer file.Close()

	// Write BOM for UTF-8
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("error writing BOM to %s: %w", filename, err)
	}

	cw := csv.NewWriter(file)
	cw.Comma = ';'
	if err := writeRows(cw, sorted); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	fmt.Printf("Created %s with %d transactions.\n", filename, len(sorted))
	return nil
}

// WriteTo streams plain comma-separated CSV, used by the export endpoint.
func WriteTo(out io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(out)
	return writeRows(cw, transactions)
}

func writeRows(cw *csv.Writer, transactions []models.Transaction) error {
	if err := cw.Write(fieldnames); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range transactions {
		amount := ""
		if tx.Amount != nil {
			amount = tx.Amount.String()
		}
		balance := ""
		if tx.BalanceAfter != nil {
			balance = tx.BalanceAfter.String()
		}
		record := []string{
			tx.TransactionDate.Format(time.RFC3339),
			string(tx.TransactionType),
			amount,
			tx.Currency,
			tx.Fee.String(),
			balance,
			tx.TransactionID,
			tx.SenderName,
			tx.ReceiverName,
			tx.AgentName,
			strconv.FormatBool(tx.IsParsed),
			strconv.FormatFloat(tx.ConfidenceScore, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing writer: %w", err)
	}
	return nil
}
