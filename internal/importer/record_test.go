package importer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvalencia/ledgeradmin/internal/importer"
)

func validClientRecord() importer.Record {
	return importer.Record{
		"identification_number": "1",
		"client_name":           "A",
		"address":               "X",
		"apartment":             "1",
		"phone":                 "555",
		"email":                 "a@x.com",
	}
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		record  importer.Record
		kind    importer.Kind
		wantErr bool
	}

	tests := []testCase{
		{
			name:   "ClientAllFieldsPresent",
			record: validClientRecord(),
			kind:   importer.KindClients,
		},
		{
			name: "ClientFieldAbsent",
			record: importer.Record{
				"client_name": "B",
			},
			kind:    importer.KindClients,
			wantErr: true,
		},
		{
			name: "EmptyStringCountsAsMissing",
			record: func() importer.Record {
				rec := validClientRecord()
				rec["email"] = ""
				return rec
			}(),
			kind:    importer.KindClients,
			wantErr: true,
		},
		{
			name: "NullCountsAsMissing",
			record: func() importer.Record {
				rec := validClientRecord()
				rec["phone"] = nil
				return rec
			}(),
			kind:    importer.KindClients,
			wantErr: true,
		},
		{
			name: "NumericValuePresent",
			record: func() importer.Record {
				rec := validClientRecord()
				rec["identification_number"] = json.Number("1001")
				return rec
			}(),
			kind: importer.KindClients,
		},
		{
			name: "InvoiceAllFieldsPresent",
			record: importer.Record{
				"invoice_number":        "INV-001",
				"platform_used":         "web",
				"billing_period":        "2024-01",
				"invoiced_amount":       "150.00",
				"paid_amount":           "100.00",
				"identification_number": "1",
			},
			kind: importer.KindInvoices,
		},
		{
			name: "TransactionMissingInvoiceNumber",
			record: importer.Record{
				"transaction_id":     "TX-1",
				"transaction_date":   "2024-01-15",
				"transaction_amount": "10.00",
				"transaction_status": "completed",
				"transaction_type":   "payment",
			},
			kind:    importer.KindTransactions,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := importer.Validate(tt.record, tt.kind)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate_MessageEmbedsRow(t *testing.T) {
	err := importer.Validate(importer.Record{"client_name": "B"}, importer.KindClients)
	require.Error(t, err)

	// The message carries the full raw row but deliberately does not say
	// which fields are missing.
	assert.Equal(t, `Invalid row: {"client_name":"B"} - required fields are missing`, err.Error())
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"clients", "invoices", "transactions"} {
		kind, err := importer.ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, importer.Kind(s), kind)
	}

	_, err := importer.ParseKind("orders")
	assert.Error(t, err)
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t,
		[]string{"identification_number", "client_name", "address", "apartment", "phone", "email"},
		importer.RequiredFields(importer.KindClients),
	)
	assert.Len(t, importer.RequiredFields(importer.KindInvoices), 6)
	assert.Len(t, importer.RequiredFields(importer.KindTransactions), 6)
}
