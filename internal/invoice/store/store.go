package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jvalencia/ledgeradmin/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	if err := s.Scan(
		&inv.InvoiceNumber, &inv.PlatformUsed, &inv.BillingPeriod,
		&inv.InvoicedAmount, &inv.PaidAmount, &inv.IdentificationNumber,
	); err != nil {
		return nil, err
	}

	return &inv, nil
}

const selectInvoiceColumns = `invoice_number, platform_used, billing_period, invoiced_amount, paid_amount, identification_number`

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_number, platform_used, billing_period, invoiced_amount, paid_amount, identification_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING invoice_number
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.InvoiceNumber,
		inv.PlatformUsed,
		inv.BillingPeriod,
		inv.InvoicedAmount,
		inv.PaidAmount,
		inv.IdentificationNumber,
	).Scan(&inv.InvoiceNumber)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE invoice_number = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, invoiceNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices ORDER BY invoice_number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) InvoiceExists(ctx context.Context, invoiceNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, invoiceNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking invoice existence: %w", err)
	}

	return exists, nil
}
