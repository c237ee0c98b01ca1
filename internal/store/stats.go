package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats summarizes the transaction table over a trailing window.
type DashboardStats struct {
	TotalTransactions  int                `json:"total_transactions"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	AverageTransaction decimal.Decimal    `json:"average_transaction"`
	TransactionCounts  map[string]int     `json:"transaction_counts"`
	DailyVolume        []DailyVolume      `json:"daily_volume"`
	TopSenders         []CounterpartyStat `json:"top_senders"`
	TopReceivers       []CounterpartyStat `json:"top_receivers"`
}

// DailyVolume is transaction count and total amount for one calendar day.
type DailyVolume struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CounterpartyStat ranks one named counterparty by moved amount.
type CounterpartyStat struct {
	Name             string          `json:"name"`
	TransactionCount int             `json:"transaction_count"`
	Total            decimal.Decimal `json:"total"`
}

const topCounterparties = 10

// Stats aggregates the trailing days window. Sums are folded in Go with
// decimal arithmetic; sqlite would coerce the TEXT amounts to REAL.
func (s *Store) Stats(ctx context.Context, days int) (*DashboardStats, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_type, amount, sender_name, receiver_name, transaction_date
		FROM transactions
		WHERE transaction_date BETWEEN ? AND ?`,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying stats window: %w", err)
	}
	defer rows.Close()

	stats := &DashboardStats{
		TotalAmount:        decimal.Zero,
		AverageTransaction: decimal.Zero,
		TransactionCounts:  make(map[string]int),
	}
	daily := make(map[string]*DailyVolume)
	senders := make(map[string]*CounterpartyStat)
	receivers := make(map[string]*CounterpartyStat)

	for rows.Next() {
		var (
			txType   string
			amount   sql.NullString
			sender   sql.NullString
			receiver sql.NullString
			txDate   string
		)
		if err := rows.Scan(&txType, &amount, &sender, &receiver, &txDate); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}

		stats.TotalTransactions++
		stats.TransactionCounts[txType]++

		var value decimal.Decimal
		if amount.Valid {
			value, err = decimal.NewFromString(amount.String)
			if err != nil {
				return nil, fmt.Errorf("decoding stored amount: %w", err)
			}
			stats.TotalAmount = stats.TotalAmount.Add(value)
		}

		day := txDate
		if len(day) >= 10 {
			day = day[:10]
		}
		dv := daily[day]
		if dv == nil {
			dv = &DailyVolume{Date: day, Total: decimal.Zero}
			daily[day] = dv
		}
		dv.Count++
		dv.Total = dv.Total.Add(value)

		if sender.Valid && sender.String != "" {
			bump(senders, sender.String, value)
		}
		if receiver.Valid && receiver.String != "" {
			bump(receivers, receiver.String, value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading stats rows: %w", err)
	}

	if stats.TotalTransactions > 0 {
		stats.AverageTransaction = stats.TotalAmount.
			Div(decimal.NewFromInt(int64(stats.TotalTransactions))).Round(2)
	}

	for _, dv := range daily {
		stats.DailyVolume = append(stats.DailyVolume, *dv)
	}
	sort.Slice(stats.DailyVolume, func(i, j int) bool {
		return stats.DailyVolume[i].Date < stats.DailyVolume[j].Date
	})

	stats.TopSenders = rank(senders)
	stats.TopReceivers = rank(receivers)

	return stats, nil
}

func bump(m map[string]*CounterpartyStat, name string, value decimal.Decimal) {
	cs := m[name]
	if cs == nil {
		cs = &CounterpartyStat{Name: name, Total: decimal.Zero}
		m[name] = cs
	}
	cs.TransactionCount++
	cs.Total = cs.Total.Add(value)
}

func rank(m map[string]*CounterpartyStat) []CounterpartyStat {
	ranked := make([]CounterpartyStat, 0, len(m))
	for _, cs := range m {
		ranked = append(ranked, *cs)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topCounterparties {
		ranked = ranked[:topCounterparties]
	}
	return ranked
}
