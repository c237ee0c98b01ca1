package extract

import (
	"strings"

	"momo-sms/internal/models"
	"momo-sms/internal/utils"
)

// Classify assigns exactly one transaction type to an SMS body by keyword
// presence. Checks run from the most specific phrase to the most generic:
// a cash-power purchase also says "payment of", so the narrow products
// must claim the message first. No match is UNKNOWN, which is a valid
// outcome, not an error.
func Classify(body string) models.TransactionType {
	text := strings.ToLower(body)

	switch {
	case utils.Contains(text, "cash power", "cashpower"):
		return models.TypeCashPower
	case utils.Contains(text, "airtime"):
		return models.TypeAirtime
	case utils.Contains(text, "commission"):
		return models.TypeCommission
	case utils.Contains(text, "salary"):
		return models.TypeSalary
	case utils.Contains(text, "refund", "reversed", "reversal"):
		return models.TypeRefund
	case utils.Contains(text, "bill payment", "paid your bill"):
		return models.TypeBillPayment
	case utils.Contains(text, "withdrawn", "withdrawal"):
		return models.TypeWithdrawal
	case utils.Contains(text, "deposit"):
		return models.TypeDeposit
	case utils.Contains(text, "received"):
		return models.TypeReceived
	case utils.Contains(text, "transferred to", "sent to", "have sent"):
		return models.TypeSent
	case utils.Contains(text, "payment of", "paid to", "your payment"):
		return models.TypePayment
	}

	return models.TypeUnknown
}
