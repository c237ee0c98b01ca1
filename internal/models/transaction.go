package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed vocabulary of mobile-money message kinds.
type TransactionType string

// TransactionType constants
const (
	TypeReceived    TransactionType = "received"
	TypeSent        TransactionType = "sent"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeDeposit     TransactionType = "deposit"
	TypePayment     TransactionType = "payment"
	TypeAirtime     TransactionType = "airtime"
	TypeBillPayment TransactionType = "bill_payment"
	TypeCashPower   TransactionType = "cash_power"
	TypeCommission  TransactionType = "commission"
	TypeRefund      TransactionType = "refund"
	TypeSalary      TransactionType = "salary"
	TypeUnknown     TransactionType = "unknown"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeReceived, TypeSent, TypeWithdrawal, TypeDeposit, TypePayment,
		TypeAirtime, TypeBillPayment, TypeCashPower, TypeCommission,
		TypeRefund, TypeSalary, TypeUnknown:
		return true
	}
	return false
}

// Transaction is the structured result of extracting one SMS body.
// It is built once per message and never mutated afterwards; corrections
// happen through store updates.
type Transaction struct {
	// Raw SMS envelope
	Address       string `json:"address"`
	Body          string `json:"body"`
	SMSDate       string `json:"sms_date"`
	ReadableDate  string `json:"readable_date,omitempty"`
	SMSType       int    `json:"sms_type"`
	ServiceCenter string `json:"service_center,omitempty"`

	// Extracted fields
	TransactionType TransactionType  `json:"transaction_type"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Currency        string           `json:"currency"`
	Fee             decimal.Decimal  `json:"fee"`
	BalanceAfter    *decimal.Decimal `json:"balance_after,omitempty"`
	TransactionID   string           `json:"transaction_id,omitempty"`
	SenderName      string           `json:"sender_name,omitempty"`
	SenderPhone     string           `json:"sender_phone,omitempty"`
	ReceiverName    string           `json:"receiver_name,omitempty"`
	ReceiverPhone   string           `json:"receiver_phone,omitempty"`
	AgentName       string           `json:"agent_name,omitempty"`
	AgentPhone      string           `json:"agent_phone,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
	DateResolved    bool             `json:"date_resolved"`

	// Extraction quality
	IsParsed        bool    `json:"is_parsed"`
	ConfidenceScore float64 `json:"confidence_score"`
	ParseErrors     string  `json:"parse_errors,omitempty"`
}
