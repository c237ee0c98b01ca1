package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "received with thousands separator",
			body:  "You have received 1,600 RWF from Samuel Carter (250788123456).",
			want:  "1600",
			found: true,
		},
		{
			name:  "payment phrasing wins over bare amount",
			body:  "TxId: 123. Your payment of 1,000 RWF to Jane Smith 12845 completed. Your new balance: 9,000 RWF.",
			want:  "1000",
			found: true,
		},
		{
			name:  "deposit phrasing",
			body:  "RWF 25,000 deposit of 25,000 RWF to your account",
			want:  "25000",
			found: true,
		},
		{
			name:  "currency-first fallback",
			body:  "RWF 700 moved",
			want:  "700",
			found: true,
		},
		{
			name:  "withdrawn amount",
			body:  "you have withdrawn 20000 RWF via agent",
			want:  "20000",
			found: true,
		},
		{
			name:  "decimal fraction kept exactly",
			body:  "payment of 1,234.56 RWF completed",
			want:  "1234.56",
			found: true,
		},
		{
			name:  "no amount",
			body:  "your PIN was changed",
			found: false,
		},
		{
			name:  "empty body",
			body:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Amount(tt.body)
			if found != tt.found {
				t.Fatalf("Amount() found = %v, want %v", found, tt.found)
			}
			if !found {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Amount() = %s, want %s", got, want)
			}
			if got.IsNegative() {
				t.Errorf("Amount() = %s, must not be negative", got)
			}
		})
	}
}

func TestFee(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "colon form",
			body:  "Fee was: 100 RWF",
			want:  "100",
			found: true,
		},
		{
			name:  "colon-less form",
			body:  "completed. Fee was 0 RWF. Your new balance: 50000 RWF",
			want:  "0",
			found: true,
		},
		{
			name:  "fee paid form",
			body:  "Fee paid: 20 RWF",
			want:  "20",
			found: true,
		},
		{
			name:  "absent",
			body:  "You have received 1,600 RWF",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Fee(tt.body)
			if found != tt.found {
				t.Fatalf("Fee() found = %v, want %v", found, tt.found)
			}
			if !found {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Fee() = %s, want %s", got, want)
			}
		})
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "new balance with colon",
			body:  "Fee was: 0 RWF. new balance: 50000 RWF",
			want:  "50000",
			found: true,
		},
		{
			name:  "your new balance",
			body:  "Your new balance: 1,000 RWF. Fee was 0 RWF.",
			want:  "1000",
			found: true,
		},
		{
			name:  "uppercase label",
			body:  "NEW BALANCE : 6400 RWF",
			want:  "6400",
			found: true,
		},
		{
			name:  "bare balance label",
			body:  "balance: 350 RWF",
			want:  "350",
			found: true,
		},
		{
			name:  "absent",
			body:  "You have received 1,600 RWF",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Balance(tt.body)
			if found != tt.found {
				t.Fatalf("Balance() found = %v, want %v", found, tt.found)
			}
			if !found {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Balance() = %s, want %s", got, want)
			}
		})
	}
}

func TestTransactionID(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "financial transaction id",
			body:  "Financial Transaction Id: 12345",
			want:  "12345",
			found: true,
		},
		{
			name:  "financial label not claimed by shorter label",
			body:  "Your transaction. Financial Transaction Id: 00076",
			want:  "00076",
			found: true,
		},
		{
			name:  "txid without space",
			body:  "*162*TxId:13913173274*S*Your payment of 2000 RWF",
			want:  "13913173274",
			found: true,
		},
		{
			name:  "external transaction id",
			body:  "External Transaction Id: 908765. Transaction Id: 111",
			want:  "908765",
			found: true,
		},
		{
			name:  "labels are case sensitive",
			body:  "TRANSACTION ID: 999",
			found: false,
		},
		{
			name:  "absent",
			body:  "deposit of 25,000 RWF to your account",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := TransactionID(tt.body)
			if found != tt.found {
				t.Fatalf("TransactionID() found = %v, want %v", found, tt.found)
			}
			if got != tt.want && tt.found {
				t.Errorf("TransactionID() = %q, want %q", got, tt.want)
			}
		})
	}
}
