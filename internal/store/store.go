package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"momo-sms/internal/models"
)

// ErrNotFound is returned when a requested transaction does not exist.
var ErrNotFound = errors.New("transaction not found")

// Store persists extracted transactions in SQLite. It owns deduplication:
// the extraction engine is pure and idempotent, so uniqueness of the
// provider transaction id and of the raw message signature is enforced
// here, not in the core.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save inserts one transaction. It returns the assigned row id and true
// when a row was written, or 0 and false when the message was already
// present (same provider transaction id or same raw message signature).
func (s *Store) Save(ctx context.Context, tx models.Transaction) (int64, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			uuid, address, body, sms_date, readable_date, sms_type, service_center,
			transaction_type, amount, currency, fee, balance_after, transaction_id,
			sender_name, sender_phone, receiver_name, receiver_phone, agent_name, agent_phone,
			transaction_date, date_resolved, is_parsed, confidence_score, parse_errors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), tx.Address, tx.Body, tx.SMSDate, tx.ReadableDate, tx.SMSType, tx.ServiceCenter,
		string(tx.TransactionType), decimalText(tx.Amount), tx.Currency, tx.Fee.String(), decimalText(tx.BalanceAfter),
		nullString(tx.TransactionID),
		nullString(tx.SenderName), nullString(tx.SenderPhone),
		nullString(tx.ReceiverName), nullString(tx.ReceiverPhone),
		nullString(tx.AgentName), nullString(tx.AgentPhone),
		tx.TransactionDate.UTC().Format(time.RFC3339), tx.DateResolved,
		tx.IsParsed, tx.ConfidenceScore, nullString(tx.ParseErrors),
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("checking insert result: %w", err)
	}
	if affected == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading insert id: %w", err)
	}
	return id, true, nil
}

// SaveBatch inserts a batch and reports how many rows were written and
// how many were skipped as duplicates.
func (s *Store) SaveBatch(ctx context.Context, txs []models.Transaction) (saved, skipped int, err error) {
	for _, tx := range txs {
		_, inserted, err := s.Save(ctx, tx)
		if err != nil {
			return saved, skipped, err
		}
		if inserted {
			saved++
		} else {
			skipped++
		}
	}
	return saved, skipped, nil
}

// Record is a stored transaction with its surrogate identifiers.
type Record struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	models.Transaction
}

// GetByID fetches one transaction by row id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectSQL+` WHERE id = ?`, id)
	return scanRecord(row)
}

// GetByTransactionID fetches one transaction by the provider-assigned
// reference id.
func (s *Store) GetByTransactionID(ctx context.Context, txID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectSQL+` WHERE transaction_id = ?`, txID)
	return scanRecord(row)
}

// Filter narrows List results. Zero values disable each criterion.
type Filter struct {
	Type      models.TransactionType
	Parsed    *bool
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Start     time.Time
	End       time.Time
	Offset    int
	Limit     int
}

// List returns transactions matching the filter, newest transaction date
// first.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		where = append(where, "transaction_type = ?")
		args = append(args, string(f.Type))
	}
	if f.Parsed != nil {
		where = append(where, "is_parsed = ?")
		args = append(args, *f.Parsed)
	}
	if f.MinAmount != nil {
		where = append(where, "CAST(amount AS REAL) >= ?")
		args = append(args, f.MinAmount.InexactFloat64())
	}
	if f.MaxAmount != nil {
		where = append(where, "CAST(amount AS REAL) <= ?")
		args = append(args, f.MaxAmount.InexactFloat64())
	}
	if !f.Start.IsZero() {
		where = append(where, "transaction_date >= ?")
		args = append(args, f.Start.UTC().Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		where = append(where, "transaction_date <= ?")
		args = append(args, f.End.UTC().Format(time.RFC3339))
	}

	query := selectSQL
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY transaction_date DESC, id DESC"

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	return s.queryRecords(ctx, query, args...)
}

// Search matches a term against body, counterparty names and transaction
// id, case-insensitively.
func (s *Store) Search(ctx context.Context, term string, offset, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + term + "%"
	query := selectSQL + `
		WHERE body LIKE ? COLLATE NOCASE
		   OR sender_name LIKE ? COLLATE NOCASE
		   OR receiver_name LIKE ? COLLATE NOCASE
		   OR transaction_id LIKE ?
		ORDER BY transaction_date DESC, id DESC
		LIMIT ? OFFSET ?`
	return s.queryRecords(ctx, query, like, like, like, like, limit, offset)
}

// Update applies a partial correction to a stored transaction. Nil fields
// are left untouched.
type Update struct {
	TransactionType *models.TransactionType
	Amount          *decimal.Decimal
	Fee             *decimal.Decimal
	BalanceAfter    *decimal.Decimal
	TransactionID   *string
	SenderName      *string
	ReceiverName    *string
	AgentName       *string
	IsParsed        *bool
}

// Update modifies the given transaction in place and bumps updated_at.
func (s *Store) Update(ctx context.Context, id int64, upd Update) (*Record, error) {
	var (
		set  []string
		args []any
	)
	if upd.TransactionType != nil {
		if !upd.TransactionType.Valid() {
			return nil, fmt.Errorf("invalid transaction type %q", *upd.TransactionType)
		}
		set = append(set, "transaction_type = ?")
		args = append(args, string(*upd.TransactionType))
	}
	if upd.Amount != nil {
		if upd.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative")
		}
		set = append(set, "amount = ?")
		args = append(args, upd.Amount.String())
	}
	if upd.Fee != nil {
		if upd.Fee.IsNegative() {
			return nil, fmt.Errorf("fee must not be negative")
		}
		set = append(set, "fee = ?")
		args = append(args, upd.Fee.String())
	}
	if upd.BalanceAfter != nil {
		if upd.BalanceAfter.IsNegative() {
			return nil, fmt.Errorf("balance must not be negative")
		}
		set = append(set, "balance_after = ?")
		args = append(args, upd.BalanceAfter.String())
	}
	if upd.TransactionID != nil {
		set = append(set, "transaction_id = ?")
		args = append(args, nullString(*upd.TransactionID))
	}
	if upd.SenderName != nil {
		set = append(set, "sender_name = ?")
		args = append(args, nullString(*upd.SenderName))
	}
	if upd.ReceiverName != nil {
		set = append(set, "receiver_name = ?")
		args = append(args, nullString(*upd.ReceiverName))
	}
	if upd.AgentName != nil {
		set = append(set, "agent_name = ?")
		args = append(args, nullString(*upd.AgentName))
	}
	if upd.IsParsed != nil {
		set = append(set, "is_parsed = ?")
		args = append(args, *upd.IsParsed)
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes one transaction by row id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of stored transactions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec          Record
		amount       sql.NullString
		balance      sql.NullString
		fee          string
		txID         sql.NullString
		senderName   sql.NullString
		senderPhone  sql.NullString
		receiverName sql.NullString
		receiverPh   sql.NullString
		agentName    sql.NullString
		agentPhone   sql.NullString
		parseErrors  sql.NullString
		txType       string
		txDate       string
		createdAt    string
		updatedAt    string
	)

	err := row.Scan(
		&rec.ID, &rec.UUID, &rec.Address, &rec.Body, &rec.SMSDate, &rec.ReadableDate,
		&rec.SMSType, &rec.ServiceCenter,
		&txType, &amount, &rec.Currency, &fee, &balance, &txID,
		&senderName, &senderPhone, &receiverName, &receiverPh, &agentName, &agentPhone,
		&txDate, &rec.DateResolved, &rec.IsParsed, &rec.ConfidenceScore, &parseErrors,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning transaction: %w", err)
	}

	rec.TransactionType = models.TransactionType(txType)
	if amount.Valid {
		d, err := decimal.NewFromString(amount.String)
		if err != nil {
			return nil, fmt.Errorf("decoding stored amount: %w", err)
		}
		rec.Amount = &d
	}
	rec.Fee, err = decimal.NewFromString(fee)
	if err != nil {
		return nil, fmt.Errorf("decoding stored fee: %w", err)
	}
	if balance.Valid {
		d, err := decimal.NewFromString(balance.String)
		if err != nil {
			return nil, fmt.Errorf("decoding stored balance: %w", err)
		}
		rec.BalanceAfter = &d
	}
	rec.TransactionID = txID.String
	rec.SenderName = senderName.String
	rec.SenderPhone = senderPhone.String
	rec.ReceiverName = receiverName.String
	rec.ReceiverPhone = receiverPh.String
	rec.AgentName = agentName.String
	rec.AgentPhone = agentPhone.String
	rec.ParseErrors = parseErrors.String

	if rec.TransactionDate, err = time.Parse(time.RFC3339, txDate); err != nil {
		return nil, fmt.Errorf("decoding transaction date: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("decoding created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("decoding updated_at: %w", err)
	}

	return &rec, nil
}

func decimalText(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const selectSQL = `
	SELECT id, uuid, address, body, sms_date, readable_date, sms_type,
	       COALESCE(service_center, ''),
	       transaction_type, amount, currency, fee, balance_after, transaction_id,
	       sender_name, sender_phone, receiver_name, receiver_phone, agent_name, agent_phone,
	       transaction_date, date_resolved, is_parsed, confidence_score, parse_errors,
	       created_at, updated_at
	FROM transactions`

const schemaSQL = `
-- transactions: one row per extracted SMS, raw envelope kept alongside
-- the extracted fields. Money columns are TEXT to preserve decimal
-- exactness; sqlite REAL would round.
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    body TEXT NOT NULL,
    sms_date TEXT NOT NULL,
    readable_date TEXT,
    sms_type INTEGER NOT NULL DEFAULT 1,
    service_center TEXT,
    transaction_type TEXT NOT NULL DEFAULT 'unknown',
    amount TEXT,
    currency TEXT NOT NULL DEFAULT 'RWF',
    fee TEXT NOT NULL DEFAULT '0',
    balance_after TEXT,
    transaction_id TEXT UNIQUE,
    sender_name TEXT,
    sender_phone TEXT,
    receiver_name TEXT,
    receiver_phone TEXT,
    agent_name TEXT,
    agent_phone TEXT,
    transaction_date TEXT NOT NULL,
    date_resolved BOOLEAN NOT NULL DEFAULT FALSE,
    is_parsed BOOLEAN NOT NULL DEFAULT FALSE,
    confidence_score REAL NOT NULL DEFAULT 0,
    parse_errors TEXT,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(transaction_type);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date);
CREATE INDEX IF NOT EXISTS idx_transactions_sender ON transactions(sender_name);
CREATE INDEX IF NOT EXISTS idx_transactions_receiver ON transactions(receiver_name);
-- Re-ingesting the same backup must be a no-op for messages without a
-- provider transaction id.
CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_signature
    ON transactions(address, sms_date, body);
`
