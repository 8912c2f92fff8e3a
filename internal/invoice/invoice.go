package invoice

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("invoice not found")
	ErrDuplicate      = errors.New("invoice already exists")
	ErrClientNotFound = errors.New("referenced client not found")
)

// Invoice is an append-only billing document. The invoice number is the
// natural primary key; the identification number references the billed client.
type Invoice struct {
	InvoiceNumber        string
	PlatformUsed         string
	BillingPeriod        string
	InvoicedAmount       decimal.Decimal
	PaidAmount           decimal.Decimal
	IdentificationNumber string
}
