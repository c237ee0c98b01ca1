package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"momo-sms/internal/extract"
	"momo-sms/internal/models"
)

// Parser reads SMS backup XML and drives the extraction engine over each
// message in document order.
type Parser struct {
	log zerolog.Logger

	// Filters applied before extraction. Zero values disable them.
	Address   string
	StartDate time.Time

	// Workers > 1 fans extraction out over a pool. Extraction is pure per
	// message, so the pool preserves nothing but the output index.
	Workers int
}

// New creates a new Parser instance
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log, Workers: 1}
}

// ParseFile reads and parses an SMS backup XML file
func (p *Parser) ParseFile(filePath string) ([]models.Transaction, error) {
	xmlFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	defer xmlFile.Close()

	return p.Parse(xmlFile)
}

// Parse decodes backup XML from r and extracts one transaction per
// message that survives the configured filters.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	var backup models.SMSBackup
	if err := xml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("error parsing XML: %w", err)
	}

	messages := p.filter(backup.SMS)
	p.log.Info().
		Int("messages", len(backup.SMS)).
		Int("selected", len(messages)).
		Msg("parsed SMS backup")

	return p.Extract(messages), nil
}

// filter applies the address and start-date filters.
func (p *Parser) filter(messages []models.SMS) []models.SMS {
	if p.Address == "" && p.StartDate.IsZero() {
		return messages
	}

	var selected []models.SMS
	for _, sms := range messages {
		if p.Address != "" && sms.Address != p.Address {
			continue
		}
		if !p.StartDate.IsZero() {
			when, resolved := extract.ResolveTimestamp(sms.Date)
			if resolved && when.Before(p.StartDate) {
				continue
			}
		}
		selected = append(selected, sms)
	}
	return selected
}

// Extract runs the assembler once per message. Output order equals input
// order regardless of worker count; re-running over the same input yields
// the same records.
func (p *Parser) Extract(messages []models.SMS) []models.Transaction {
	if len(messages) == 0 {
		return nil
	}
	if p.Workers <= 1 {
		transactions := make([]models.Transaction, len(messages))
		for i, sms := range messages {
			transactions[i] = extract.Assemble(sms)
		}
		return transactions
	}
	return p.extractConcurrent(messages)
}

func (p *Parser) extractConcurrent(messages []models.SMS) []models.Transaction {
	transactions := make([]models.Transaction, len(messages))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				transactions[i] = extract.Assemble(messages[i])
			}
		}()
	}

	for i := range messages {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return transactions
}
