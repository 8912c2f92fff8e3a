package importer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jvalencia/ledgeradmin/internal/client"
	"github.com/jvalencia/ledgeradmin/internal/importer"
	"github.com/jvalencia/ledgeradmin/internal/invoice"
	"github.com/jvalencia/ledgeradmin/internal/transaction"
)

type importMocks struct {
	clientRepo *client.MockRepository
	invRepo    *invoice.MockRepository
	txRepo     *transaction.MockRepository
}

// newImportService wires the orchestrator the same way main does: real
// services over mocked repositories, invoices checking clients and
// transactions checking invoices.
func newImportService(ctrl *gomock.Controller) (*importer.Service, importMocks) {
	mocks := importMocks{
		clientRepo: client.NewMockRepository(ctrl),
		invRepo:    invoice.NewMockRepository(ctrl),
		txRepo:     transaction.NewMockRepository(ctrl),
	}

	clientSvc := client.NewService(mocks.clientRepo)
	invoiceSvc := invoice.NewService(mocks.invRepo, clientSvc)
	txSvc := transaction.NewService(mocks.txRepo, invoiceSvc)

	return importer.NewService(clientSvc, invoiceSvc, txSvc), mocks
}

func clientRecord(id, name, email string) importer.Record {
	return importer.Record{
		"identification_number": id,
		"client_name":           name,
		"address":               "X",
		"apartment":             "1",
		"phone":                 "555",
		"email":                 email,
	}
}

func transactionRecord(id, invoiceNumber string) importer.Record {
	return importer.Record{
		"transaction_id":     id,
		"transaction_date":   "2024-01-15",
		"transaction_amount": "10.00",
		"transaction_status": "completed",
		"transaction_type":   "payment",
		"invoice_number":     invoiceNumber,
	}
}

func invoiceRecord(number, clientID, amount string) importer.Record {
	return importer.Record{
		"invoice_number":        number,
		"platform_used":         "web",
		"billing_period":        "2024-01",
		"invoiced_amount":       amount,
		"paid_amount":           "0.00",
		"identification_number": clientID,
	}
}

func expectClientInsert(m importMocks, id, email string) {
	m.clientRepo.EXPECT().EmailExists(gomock.Any(), email).Return(false, nil)
	m.clientRepo.EXPECT().ClientExists(gomock.Any(), id).Return(false, nil)
	m.clientRepo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil)
}

func TestImportBatch_AllRowsValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	expectClientInsert(mocks, "1", "a@x.com")
	expectClientInsert(mocks, "2", "b@x.com")

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		clientRecord("1", "A", "a@x.com"),
		clientRecord("2", "B", "b@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Nil(t, report.Errors)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.BatchID.String())
}

func TestImportBatch_InvalidRowSkippedBatchContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// Only the valid row ever reaches the store.
	expectClientInsert(mocks, "1", "a@x.com")

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		clientRecord("1", "A", "a@x.com"),
		importer.Record{"client_name": "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, `Invalid row: {"client_name":"B"} - required fields are missing`, report.Errors[0])
}

func TestImportBatch_DuplicateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	mocks.clientRepo.EXPECT().EmailExists(gomock.Any(), "dup@x.com").Return(true, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		clientRecord("1", "A", "dup@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Client with email dup@x.com already exists", report.Errors[0])
}

func TestImportBatch_DuplicateIdentificationNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	mocks.clientRepo.EXPECT().EmailExists(gomock.Any(), "a@x.com").Return(false, nil)
	mocks.clientRepo.EXPECT().ClientExists(gomock.Any(), "1").Return(true, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		clientRecord("1", "A", "a@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Client with ID 1 already exists", report.Errors[0])
}

func TestImportBatch_TransactionMissingInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// The invoice lookup fails; CreateTransaction must never be called.
	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-404").Return(false, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindTransactions, []any{
		transactionRecord("TX-1", "INV-404"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Invoice with number INV-404 does not exist", report.Errors[0])
}

func TestImportBatch_TransactionSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-001").Return(true, nil)
	mocks.txRepo.EXPECT().TransactionExists(gomock.Any(), "TX-1").Return(false, nil)
	mocks.txRepo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, "TX-1", tx.TransactionID)
			assert.Equal(t, "2024-01-15", tx.Date.Format("2006-01-02"))
			assert.True(t, tx.Amount.Equal(decimal.RequireFromString("10.00")))
			return nil
		})

	report, err := svc.ImportBatch(context.Background(), importer.KindTransactions, []any{
		transactionRecord("TX-1", "INV-001"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Nil(t, report.Errors)
}

func TestImportBatch_InvoiceMissingClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	mocks.clientRepo.EXPECT().ClientExists(gomock.Any(), "999").Return(false, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindInvoices, []any{
		invoiceRecord("INV-001", "999", "150.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Client with ID 999 does not exist", report.Errors[0])
}

func TestImportBatch_InvoiceBadAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// References and duplicates are checked first; only then is the bad
	// amount reported.
	mocks.clientRepo.EXPECT().ClientExists(gomock.Any(), "1").Return(true, nil)
	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-001").Return(false, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindInvoices, []any{
		invoiceRecord("INV-001", "1", "not-a-number"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Error processing row")
	assert.Contains(t, report.Errors[0], "invoiced_amount")
}

func TestImportBatch_BadAmountWithMissingClientReportsClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// A row can be wrong in two ways at once; the referential verdict wins
	// over the unparseable amount.
	mocks.clientRepo.EXPECT().ClientExists(gomock.Any(), "999").Return(false, nil)

	report, err := svc.ImportBatch(context.Background(), importer.KindInvoices, []any{
		invoiceRecord("INV-001", "999", "not-a-number"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Client with ID 999 does not exist", report.Errors[0])
}

func TestImportBatch_BadDateWithMissingInvoiceReportsInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-404").Return(false, nil)

	rec := transactionRecord("TX-1", "INV-404")
	rec["transaction_date"] = "15/01/2024"

	report, err := svc.ImportBatch(context.Background(), importer.KindTransactions, []any{rec})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Invoice with number INV-404 does not exist", report.Errors[0])
}

func TestImportBatch_StoreErrorDoesNotAbortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// Row 1 fails at insert time; row 2 still goes through.
	mocks.clientRepo.EXPECT().EmailExists(gomock.Any(), "a@x.com").Return(false, nil)
	mocks.clientRepo.EXPECT().ClientExists(gomock.Any(), "1").Return(false, nil)
	mocks.clientRepo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	expectClientInsert(mocks, "2", "b@x.com")

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		clientRecord("1", "A", "a@x.com"),
		clientRecord("2", "B", "b@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Error processing row")
	assert.Contains(t, report.Errors[0], "connection reset")
}

func TestImportBatch_RowOrderDoesNotChangeVerdicts(t *testing.T) {
	valid := clientRecord("1", "A", "a@x.com")
	invalid := importer.Record{"client_name": "B"}

	run := func(rows []any) *importer.Report {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mocks := newImportService(ctrl)
		expectClientInsert(mocks, "1", "a@x.com")

		report, err := svc.ImportBatch(context.Background(), importer.KindClients, rows)
		require.NoError(t, err)

		return report
	}

	first := run([]any{valid, invalid})
	second := run([]any{invalid, valid})

	assert.Equal(t, first.Imported, second.Imported)
	assert.Equal(t, first.Errors, second.Errors)
}

func TestImportBatch_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newImportService(ctrl)

	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Nil(t, report.Errors)
}

func TestImportBatch_NonObjectRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	expectClientInsert(mocks, "1", "a@x.com")

	// A JSON body can put anything in the data list; scalar rows fail
	// validation without sinking the batch.
	report, err := svc.ImportBatch(context.Background(), importer.KindClients, []any{
		json.Number("5"),
		clientRecord("1", "A", "a@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Invalid row: 5 - required fields are missing", report.Errors[0])
}

func TestImportBatch_FailedRowsSucceedOnResubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newImportService(ctrl)

	// First pass: TX-1 inserts, TX-2 references an invoice that is not
	// there yet.
	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-001").Return(true, nil)
	mocks.txRepo.EXPECT().TransactionExists(gomock.Any(), "TX-1").Return(false, nil)
	mocks.txRepo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-404").Return(false, nil)

	first, err := svc.ImportBatch(context.Background(), importer.KindTransactions, []any{
		transactionRecord("TX-1", "INV-001"),
		transactionRecord("TX-2", "INV-404"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)
	require.Len(t, first.Errors, 1)
	assert.Equal(t, "Invoice with number INV-404 does not exist", first.Errors[0])

	// The operator creates the missing invoice and resubmits only the
	// failed row; exactly that row imports.
	mocks.invRepo.EXPECT().InvoiceExists(gomock.Any(), "INV-404").Return(true, nil)
	mocks.txRepo.EXPECT().TransactionExists(gomock.Any(), "TX-2").Return(false, nil)
	mocks.txRepo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	second, err := svc.ImportBatch(context.Background(), importer.KindTransactions, []any{
		transactionRecord("TX-2", "INV-404"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Imported)
	assert.Nil(t, second.Errors)
	assert.NotEqual(t, first.BatchID, second.BatchID)
}

func TestImportBatch_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newImportService(ctrl)

	_, err := svc.ImportBatch(context.Background(), importer.Kind("orders"), nil)
	assert.Error(t, err)
}
