package db_models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "pending"
	TxnStatusCompleted TransactionStatus = "completed"
	TxnStatusFailed    TransactionStatus = "failed"
	TxnStatusCancelled TransactionStatus = "cancelled"
	TxnStatusRefunded  TransactionStatus = "refunded"
	TxnStatusUnknown   TransactionStatus = "unknown"
)

// MapProviderStatus translates the status string carried in a bank callback
// into our own status set. Anything we do not recognize lands in "unknown"
// instead of being stored verbatim.
func MapProviderStatus(s string) TransactionStatus {
	switch TransactionStatus(s) {
	case TxnStatusCompleted, TxnStatusFailed, TxnStatusCancelled, TxnStatusRefunded:
		return TransactionStatus(s)
	default:
		return TxnStatusUnknown
	}
}

type KhqrTransaction struct {
	BaseModel
	SaleID *int64 `gorm:"index"` // nullable link to the external sale aggregate

	Amount       decimal.Decimal `gorm:"type:decimal(10,2)"`
	CurrencyCode string          `gorm:"size:3"` // ISO 4217 (e.g. "KHR","USD")

	// POS-side identity, assigned once before the first insert.
	ReferenceNumber string `gorm:"uniqueIndex"`

	// Identity assigned by the bank/PSP; unique once set.
	BankTransactionID *string `gorm:"uniqueIndex"`

	// The rendered KHQR payload if the bank returned one.
	KhqrString *string

	Status TransactionStatus `gorm:"index;default:pending"`

	// Last raw payload received from the bank, overwritten on each callback.
	ResponseData datatypes.JSON `gorm:"type:jsonb"`

	// QR validity deadline (unix seconds). Informational, never enforced here.
	ExpiresAt *int64
}
