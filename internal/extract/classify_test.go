package extract

import (
	"testing"

	"momo-sms/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.TransactionType
	}{
		{
			name: "received",
			body: "You have received 1,600 RWF from Samuel Carter (250788123456).",
			want: models.TypeReceived,
		},
		{
			name: "payment",
			body: "TxId: 123. Your payment of 1,000 RWF to Jane Smith 12845 has been completed.",
			want: models.TypePayment,
		},
		{
			name: "transfer out",
			body: "10000 RWF transferred to Jane Smith (250790777777) from your account",
			want: models.TypeSent,
		},
		{
			name: "withdrawal",
			body: "You have via agent: Agent Sophia (250790777777), withdrawn 20000 RWF",
			want: models.TypeWithdrawal,
		},
		{
			name: "deposit",
			body: "A bank deposit of 40000 RWF has been added to your mobile money account",
			want: models.TypeDeposit,
		},
		{
			name: "cash power beats payment",
			body: "Your payment of 10000 RWF to MTN Cash Power with token 1234-5678 was completed",
			want: models.TypeCashPower,
		},
		{
			name: "airtime beats payment",
			body: "Your payment of 2000 RWF to Airtime has been completed",
			want: models.TypeAirtime,
		},
		{
			name: "bill payment",
			body: "Your bill payment of 5000 RWF was completed",
			want: models.TypeBillPayment,
		},
		{
			name: "commission",
			body: "You have earned a commission of 1200 RWF this week",
			want: models.TypeCommission,
		},
		{
			name: "refund",
			body: "Your transaction of 700 RWF was reversed and refund issued",
			want: models.TypeRefund,
		},
		{
			name: "salary",
			body: "Your salary of 150000 RWF has been credited",
			want: models.TypeSalary,
		},
		{
			name: "keyword matching is case insensitive",
			body: "YOU HAVE RECEIVED 500 RWF",
			want: models.TypeReceived,
		},
		{
			name: "no keyword",
			body: "Your PIN was changed successfully.",
			want: models.TypeUnknown,
		},
		{
			name: "empty body",
			body: "",
			want: models.TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.body); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}
