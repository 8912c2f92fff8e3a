// Package importer implements the bulk-import pipeline: per-row required
// field validation, referential and duplicate checks against the store, and
// partial-failure aggregation. A failing row never aborts the batch.
package importer

import "fmt"

// Kind identifies the target table of an import batch.
type Kind string

const (
	KindClients      Kind = "clients"
	KindInvoices     Kind = "invoices"
	KindTransactions Kind = "transactions"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindClients, KindInvoices, KindTransactions:
		return Kind(s), nil
	}

	return "", fmt.Errorf("unknown import kind: %q", s)
}

// requiredFields lists, per kind, the fields every row must carry.
// The order matches the CSV column order the dashboard produces.
var requiredFields = map[Kind][]string{
	KindClients: {
		"identification_number", "client_name", "address", "apartment", "phone", "email",
	},
	KindInvoices: {
		"invoice_number", "platform_used", "billing_period", "invoiced_amount", "paid_amount", "identification_number",
	},
	KindTransactions: {
		"transaction_id", "transaction_date", "transaction_amount", "transaction_status", "transaction_type", "invoice_number",
	},
}

// RequiredFields returns the required field names for a kind, in declaration
// order. The returned slice must not be modified.
func RequiredFields(kind Kind) []string {
	return requiredFields[kind]
}
