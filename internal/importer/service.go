package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jvalencia/ledgeradmin/internal/client"
	"github.com/jvalencia/ledgeradmin/internal/invoice"
	"github.com/jvalencia/ledgeradmin/internal/transaction"
)

type Service struct {
	clients      *client.Service
	invoices     *invoice.Service
	transactions *transaction.Service
}

func NewService(clients *client.Service, invoices *invoice.Service, transactions *transaction.Service) *Service {
	return &Service{
		clients:      clients,
		invoices:     invoices,
		transactions: transactions,
	}
}

// Report aggregates the outcome of one import batch. Errors is nil when every
// row succeeded; callers treat nil and empty identically.
type Report struct {
	BatchID  uuid.UUID
	Imported int
	Errors   []string
}

// ImportBatch runs the per-row pipeline over rows in input order: validate
// required fields, check references and duplicates, insert. Each row is
// independent; a failure appends one message and the batch keeps going. The
// batch is not atomic: rows inserted before a failure stay inserted. Rows are
// raw decoded JSON values; a row that is not an object fails validation like
// a row with every field missing.
func (s *Service) ImportBatch(ctx context.Context, kind Kind, rows []any) (*Report, error) {
	var importRow func(context.Context, Record) error

	switch kind {
	case KindClients:
		importRow = s.importClient
	case KindInvoices:
		importRow = s.importInvoice
	case KindTransactions:
		importRow = s.importTransaction
	default:
		return nil, fmt.Errorf("unknown import kind: %q", kind)
	}

	report := &Report{BatchID: uuid.New()}

	for _, row := range rows {
		rec, ok := asRecord(row)
		if !ok {
			report.Errors = append(report.Errors, invalidRow(row).Error())
			continue
		}

		if err := Validate(rec, kind); err != nil {
			report.Errors = append(report.Errors, err.Error())
			continue
		}

		if err := importRow(ctx, rec); err != nil {
			report.Errors = append(report.Errors, err.Error())
			continue
		}

		report.Imported++
	}

	slog.Info("import batch processed",
		"batch_id", report.BatchID,
		"kind", kind,
		"imported", report.Imported,
		"failed", len(report.Errors),
	)

	return report, nil
}

func (s *Service) importClient(ctx context.Context, rec Record) error {
	params := client.CreateParams{
		IdentificationNumber: fieldString(rec, "identification_number"),
		Name:                 fieldString(rec, "client_name"),
		Address:              fieldString(rec, "address"),
		Apartment:            fieldString(rec, "apartment"),
		Phone:                fieldString(rec, "phone"),
		Email:                fieldString(rec, "email"),
	}

	_, err := s.clients.Create(ctx, params)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrEmailTaken):
		return fmt.Errorf("Client with email %s already exists", params.Email)
	case errors.Is(err, client.ErrDuplicate):
		return fmt.Errorf("Client with ID %s already exists", params.IdentificationNumber)
	default:
		return processingError(rec, err)
	}
}

func (s *Service) importInvoice(ctx context.Context, rec Record) error {
	params := invoice.CreateParams{
		InvoiceNumber:        fieldString(rec, "invoice_number"),
		PlatformUsed:         fieldString(rec, "platform_used"),
		BillingPeriod:        fieldString(rec, "billing_period"),
		IdentificationNumber: fieldString(rec, "identification_number"),
	}

	var parseErr error
	if params.InvoicedAmount, parseErr = fieldDecimal(rec, "invoiced_amount"); parseErr == nil {
		params.PaidAmount, parseErr = fieldDecimal(rec, "paid_amount")
	}

	if parseErr != nil {
		// Referential and duplicate verdicts outrank a value the schema
		// rejects; run the same checks Create would have run.
		if found, err := s.clients.Exists(ctx, params.IdentificationNumber); err == nil && !found {
			return fmt.Errorf("Client with ID %s does not exist", params.IdentificationNumber)
		}

		if exists, err := s.invoices.Exists(ctx, params.InvoiceNumber); err == nil && exists {
			return fmt.Errorf("Invoice %s already exists", params.InvoiceNumber)
		}

		return processingError(rec, parseErr)
	}

	_, err := s.invoices.Create(ctx, params)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, invoice.ErrClientNotFound):
		return fmt.Errorf("Client with ID %s does not exist", params.IdentificationNumber)
	case errors.Is(err, invoice.ErrDuplicate):
		return fmt.Errorf("Invoice %s already exists", params.InvoiceNumber)
	default:
		return processingError(rec, err)
	}
}

func (s *Service) importTransaction(ctx context.Context, rec Record) error {
	params := transaction.CreateParams{
		TransactionID: fieldString(rec, "transaction_id"),
		Status:        fieldString(rec, "transaction_status"),
		Type:          fieldString(rec, "transaction_type"),
		InvoiceNumber: fieldString(rec, "invoice_number"),
	}

	var parseErr error
	if params.Date, parseErr = fieldDate(rec, "transaction_date"); parseErr == nil {
		params.Amount, parseErr = fieldDecimal(rec, "transaction_amount")
	}

	if parseErr != nil {
		if found, err := s.invoices.Exists(ctx, params.InvoiceNumber); err == nil && !found {
			return fmt.Errorf("Invoice with number %s does not exist", params.InvoiceNumber)
		}

		if exists, err := s.transactions.Exists(ctx, params.TransactionID); err == nil && exists {
			return fmt.Errorf("Transaction %s already exists", params.TransactionID)
		}

		return processingError(rec, parseErr)
	}

	_, err := s.transactions.Create(ctx, params)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, transaction.ErrInvoiceNotFound):
		return fmt.Errorf("Invoice with number %s does not exist", params.InvoiceNumber)
	case errors.Is(err, transaction.ErrDuplicate):
		return fmt.Errorf("Transaction %s already exists", params.TransactionID)
	default:
		return processingError(rec, err)
	}
}

// processingError covers store failures and values the target schema rejects
// (bad decimals, bad dates). The message embeds the full raw row.
func processingError(rec Record, err error) error {
	return fmt.Errorf("Error processing row %s: %v", formatValue(rec), err)
}
