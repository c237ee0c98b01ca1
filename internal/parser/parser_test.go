package parser

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"momo-sms/internal/logger"
	"momo-sms/internal/models"
)

const backupXML = `<?xml version="1.0" encoding="UTF-8"?>
<smses count="4">
  <sms address="M-Money" date="1706347200000" readable_date="27 Jan 2024 10:00:00 AM" type="1" service_center="+250788110381" body="You have received 1,600 RWF from Samuel Carter (250788123456) on your mobile money account. Fee was: 0 RWF. Your new balance: 50000 RWF. Financial Transaction Id: 12345." />
  <sms address="M-Money" date="1706433600000" readable_date="28 Jan 2024 10:00:00 AM" type="1" body="TxId: 73214484437. Your payment of 1,000 RWF to Jane Smith 12845 has been completed. Your new balance: 49000 RWF. Fee was 0 RWF." />
  <sms address="M-Money" date="1706520000000" readable_date="29 Jan 2024 10:00:00 AM" type="1" body="" />
  <sms address="AIRTEL" date="1706520000001" type="1" body="Promo message, not a transaction" />
</smses>`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return New(logger.NewWithWriter(&strings.Builder{}))
}

func TestParse(t *testing.T) {
	p := newTestParser(t)

	transactions, err := p.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(transactions) != 4 {
		t.Fatalf("Parse() returned %d transactions, want 4", len(transactions))
	}

	// Document order is preserved.
	if transactions[0].TransactionType != models.TypeReceived {
		t.Errorf("transactions[0].TransactionType = %v, want %v",
			transactions[0].TransactionType, models.TypeReceived)
	}
	if transactions[1].TransactionType != models.TypePayment {
		t.Errorf("transactions[1].TransactionType = %v, want %v",
			transactions[1].TransactionType, models.TypePayment)
	}

	// The empty-body message still yields a record, flagged unparsed.
	if transactions[2].IsParsed {
		t.Error("transactions[2].IsParsed = true, want false")
	}
	if transactions[2].ParseErrors == "" {
		t.Error("transactions[2].ParseErrors is empty, want an explanation")
	}

	// A non-transaction message is retained as unknown, not dropped.
	if transactions[3].TransactionType != models.TypeUnknown {
		t.Errorf("transactions[3].TransactionType = %v, want %v",
			transactions[3].TransactionType, models.TypeUnknown)
	}
}

func TestParseAddressFilter(t *testing.T) {
	p := newTestParser(t)
	p.Address = "M-Money"

	transactions, err := p.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("Parse() returned %d transactions, want 3 after address filter", len(transactions))
	}
	for i, tx := range transactions {
		if tx.Address != "M-Money" {
			t.Errorf("transactions[%d].Address = %q, want %q", i, tx.Address, "M-Money")
		}
	}
}

func TestParseStartDateFilter(t *testing.T) {
	p := newTestParser(t)
	p.StartDate = time.UnixMilli(1706433600000)

	transactions, err := p.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("Parse() returned %d transactions, want 3 after date filter", len(transactions))
	}
}

func TestParseMalformedXML(t *testing.T) {
	p := newTestParser(t)

	if _, err := p.Parse(strings.NewReader("<smses><sms")); err == nil {
		t.Fatal("Parse() error = nil for malformed XML, want error")
	}
}

func TestExtractConcurrentMatchesSequential(t *testing.T) {
	sequential := newTestParser(t)

	concurrent := newTestParser(t)
	concurrent.Workers = 4

	want, err := sequential.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := concurrent.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("concurrent extraction differs from sequential:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	p := newTestParser(t)

	first, err := p.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := p.Parse(strings.NewReader(backupXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parses of identical input differ")
	}
}
