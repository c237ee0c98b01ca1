package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"momo-sms/internal/models"
)

// Field names used in the expected-field sets.
const (
	fieldAmount       = "amount"
	fieldFee          = "fee"
	fieldBalance      = "balance_after"
	fieldReference    = "transaction_id"
	fieldSenderName   = "sender_name"
	fieldReceiverName = "receiver_name"
	fieldAgentName    = "agent_name"
)

// expectedFields lists, per transaction type, the fields whose presence
// feeds the confidence score. A withdrawal names an agent, a payment
// names a receiver, an inbound transfer names a sender; fee only counts
// where the provider actually quotes one.
var expectedFields = map[models.TransactionType][]string{
	models.TypeReceived:    {fieldAmount, fieldBalance, fieldReference, fieldSenderName},
	models.TypeSent:        {fieldAmount, fieldFee, fieldBalance, fieldReference, fieldReceiverName},
	models.TypeWithdrawal:  {fieldAmount, fieldFee, fieldBalance, fieldReference, fieldAgentName},
	models.TypeDeposit:     {fieldAmount, fieldBalance, fieldReference},
	models.TypePayment:     {fieldAmount, fieldFee, fieldBalance, fieldReference, fieldReceiverName},
	models.TypeAirtime:     {fieldAmount, fieldFee, fieldBalance, fieldReference},
	models.TypeBillPayment: {fieldAmount, fieldFee, fieldBalance, fieldReference},
	models.TypeCashPower:   {fieldAmount, fieldFee, fieldBalance, fieldReference},
	models.TypeCommission:  {fieldAmount, fieldBalance, fieldReference},
	models.TypeRefund:      {fieldAmount, fieldBalance, fieldReference},
	models.TypeSalary:      {fieldAmount, fieldBalance, fieldReference, fieldSenderName},
	models.TypeUnknown:     {fieldAmount, fieldReference},
}

// Assemble builds one Transaction from one raw SMS. It never returns an
// error: the only fatal input is an empty body, which yields a minimal
// unknown record with ParseErrors set so downstream consumers can tell
// "not understood" from "does not exist".
func Assemble(sms models.SMS) models.Transaction {
	tx := models.Transaction{
		Address:         sms.Address,
		Body:            sms.Body,
		SMSDate:         sms.Date,
		ReadableDate:    sms.ReadableDate,
		SMSType:         sms.Type,
		ServiceCenter:   sms.ServiceCenter,
		TransactionType: models.TypeUnknown,
		Currency:        "RWF",
		Fee:             decimal.Zero,
	}
	tx.TransactionDate, tx.DateResolved = resolveDate(sms)

	body := sms.Body
	if strings.TrimSpace(body) == "" {
		tx.ParseErrors = "empty message body"
		return tx
	}

	// Phase one: classify. The type decides which party extractors apply
	// and which fields count toward confidence.
	tx.TransactionType = Classify(body)

	// Phase two: run the field extractors independently. A miss on one
	// never stops the others.
	got := make(map[string]bool)

	if amount, ok := Amount(body); ok {
		tx.Amount = &amount
		got[fieldAmount] = true
	}
	if fee, ok := Fee(body); ok {
		tx.Fee = fee
		got[fieldFee] = true
	}
	if balance, ok := Balance(body); ok {
		tx.BalanceAfter = &balance
		got[fieldBalance] = true
	}
	if ref, ok := TransactionID(body); ok {
		tx.TransactionID = ref
		got[fieldReference] = true
	}

	for _, field := range expectedFields[tx.TransactionType] {
		switch field {
		case fieldSenderName:
			if name, ok := SenderName(body); ok {
				tx.SenderName = name
				got[fieldSenderName] = true
			}
			if phone, ok := SenderPhone(body); ok {
				tx.SenderPhone = phone
			}
		case fieldReceiverName:
			if name, ok := ReceiverName(body); ok {
				tx.ReceiverName = name
				got[fieldReceiverName] = true
			}
			if phone, ok := ReceiverPhone(body); ok {
				tx.ReceiverPhone = phone
			}
		case fieldAgentName:
			if name, ok := AgentName(body); ok {
				tx.AgentName = name
				got[fieldAgentName] = true
			}
			if phone, ok := AgentPhone(body); ok {
				tx.AgentPhone = phone
			}
		}
	}

	expected := expectedFields[tx.TransactionType]
	extracted := 0
	for _, field := range expected {
		if got[field] {
			extracted++
		}
	}
	if len(expected) > 0 {
		tx.ConfidenceScore = float64(extracted) / float64(len(expected))
	}

	tx.IsParsed = tx.TransactionType != models.TypeUnknown && tx.Amount != nil

	return tx
}

// resolveDate prefers the epoch attribute, falls back to the readable
// date, and only then guesses the current time.
func resolveDate(sms models.SMS) (time.Time, bool) {
	if t, ok := ResolveTimestamp(sms.Date); ok {
		return t, true
	}
	if sms.ReadableDate != "" {
		if t, ok := ResolveTimestamp(sms.ReadableDate); ok {
			return t, true
		}
	}
	return now(), false
}
