package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"momo-sms/internal/models"
	"momo-sms/internal/parser"
	"momo-sms/internal/store"
	"momo-sms/internal/writer"
)

// Upload bodies larger than this are rejected before parsing.
const maxUploadBytes = 32 << 20

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.Filter{
		Offset: intQuery(q.Get("skip"), 0),
		Limit:  intQuery(q.Get("limit"), 100),
	}

	if t := q.Get("type"); t != "" {
		txType := models.TransactionType(t)
		if !txType.Valid() {
			WriteError(w, http.StatusBadRequest, "Unknown transaction type: "+t)
			return
		}
		filter.Type = txType
	}
	if p := q.Get("parsed"); p != "" {
		parsed, err := strconv.ParseBool(p)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "parsed must be a boolean")
			return
		}
		filter.Parsed = &parsed
	}
	if v := q.Get("min_amount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "min_amount must be numeric")
			return
		}
		filter.MinAmount = &d
	}
	if v := q.Get("max_amount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "max_amount must be numeric")
			return
		}
		filter.MaxAmount = &d
	}
	if v := q.Get("start_date"); v != "" {
		t, err := parseDateQuery(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "start_date must be RFC3339 or YYYY-MM-DD")
			return
		}
		filter.Start = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := parseDateQuery(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "end_date must be RFC3339 or YYYY-MM-DD")
			return
		}
		filter.End = t
	}

	records, err := s.store.List(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": records,
		"count":        len(records),
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if tx.Body == "" {
		WriteError(w, http.StatusBadRequest, "body is required")
		return
	}
	if tx.TransactionType == "" {
		tx.TransactionType = models.TypeUnknown
	}
	if !tx.TransactionType.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown transaction type: "+string(tx.TransactionType))
		return
	}
	if tx.Amount != nil && tx.Amount.IsNegative() {
		WriteError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if tx.Fee.IsNegative() {
		WriteError(w, http.StatusBadRequest, "fee must not be negative")
		return
	}
	if tx.BalanceAfter != nil && tx.BalanceAfter.IsNegative() {
		WriteError(w, http.StatusBadRequest, "balance_after must not be negative")
		return
	}
	if tx.Currency == "" {
		tx.Currency = "RWF"
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now().UTC()
	}

	id, inserted, err := s.store.Save(r.Context(), tx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create transaction")
		WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	if !inserted {
		WriteError(w, http.StatusConflict, "Transaction already exists")
		return
	}

	record, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load created transaction")
		WriteError(w, http.StatusInternalServerError, "Failed to load created transaction")
		return
	}
	WriteJSON(w, http.StatusCreated, record)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	record, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to get transaction")
		WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var upd struct {
		TransactionType *models.TransactionType `json:"transaction_type"`
		Amount          *decimal.Decimal        `json:"amount"`
		Fee             *decimal.Decimal        `json:"fee"`
		BalanceAfter    *decimal.Decimal        `json:"balance_after"`
		TransactionID   *string                 `json:"transaction_id"`
		SenderName      *string                 `json:"sender_name"`
		ReceiverName    *string                 `json:"receiver_name"`
		AgentName       *string                 `json:"agent_name"`
		IsParsed        *bool                   `json:"is_parsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := s.store.Update(r.Context(), id, store.Update{
		TransactionType: upd.TransactionType,
		Amount:          upd.Amount,
		Fee:             upd.Fee,
		BalanceAfter:    upd.BalanceAfter,
		TransactionID:   upd.TransactionID,
		SenderName:      upd.SenderName,
		ReceiverName:    upd.ReceiverName,
		AgentName:       upd.AgentName,
		IsParsed:        upd.IsParsed,
	})
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	err = s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to delete transaction")
		WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Transaction deleted"})
}

// ingestXML accepts an SMS backup upload (multipart field "file" or a raw
// XML body), runs extraction and persists the batch.
func (s *Server) ingestXML(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var source io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart upload")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Multipart upload must carry a 'file' field")
			return
		}
		defer file.Close()
		source = file
	}

	p := parser.New(s.log)
	p.Workers = s.cfg.Workers
	p.Address = r.URL.Query().Get("address")

	transactions, err := p.Parse(source)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Could not parse backup XML: "+err.Error())
		return
	}

	parsed := 0
	for _, tx := range transactions {
		if tx.IsParsed {
			parsed++
		}
	}

	saved, skipped, err := s.store.SaveBatch(r.Context(), transactions)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to persist ingested batch")
		WriteError(w, http.StatusInternalServerError, "Failed to persist transactions")
		return
	}

	s.log.Info().
		Int("total", len(transactions)).
		Int("parsed", parsed).
		Int("saved", saved).
		Int("skipped", skipped).
		Msg("ingested SMS backup")

	WriteJSON(w, http.StatusOK, map[string]int{
		"total":   len(transactions),
		"parsed":  parsed,
		"saved":   saved,
		"skipped": skipped,
	})
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r.URL.Query().Get("days"), 30)

	stats, err := s.store.Stats(r.Context(), days)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to compute dashboard stats")
		WriteError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) searchTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		WriteError(w, http.StatusBadRequest, "q is required")
		return
	}

	records, err := s.store.Search(r.Context(), term,
		intQuery(q.Get("skip"), 0), intQuery(q.Get("limit"), 50))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to search transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to search transactions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"query":   term,
		"results": records,
		"count":   len(records),
	})
}

func (s *Server) exportTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	records, err := s.store.List(r.Context(), store.Filter{Limit: 1000})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to export transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	switch format {
	case "json":
		WriteJSON(w, http.StatusOK, records)
	case "csv":
		transactions := make([]models.Transaction, len(records))
		for i, rec := range records {
			transactions[i] = rec.Transaction
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")
		if err := writer.WriteTo(w, transactions); err != nil {
			s.log.Error().Err(err).Msg("Failed to stream CSV export")
		}
	default:
		WriteError(w, http.StatusBadRequest, "Unsupported format. Use 'json' or 'csv'.")
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, "Health check failed: "+err.Error())
		return
	}

	total, err := s.store.Count(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Health check failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "connected",
		"statistics": map[string]int{
			"total_transactions": total,
		},
	})
}

func intQuery(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseDateQuery(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
