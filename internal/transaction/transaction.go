package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrDuplicate       = errors.New("transaction already exists")
	ErrInvoiceNotFound = errors.New("referenced invoice not found")
)

// Transaction is an append-only payment record against an invoice. Status and
// type are free-form strings; the system does not constrain their values.
type Transaction struct {
	TransactionID string
	Date          time.Time
	Amount        decimal.Decimal
	Status        string
	Type          string
	InvoiceNumber string
}
