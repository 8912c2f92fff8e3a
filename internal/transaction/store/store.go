package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jvalencia/ledgeradmin/internal/transaction"
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

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	if err := s.Scan(
		&tx.TransactionID, &tx.Date, &tx.Amount, &tx.Status, &tx.Type, &tx.InvoiceNumber,
	); err != nil {
		return nil, err
	}

	return &tx, nil
}

const selectTransactionColumns = `transaction_id, transaction_date, transaction_amount, transaction_status, transaction_type, invoice_number`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, transaction_date, transaction_amount, transaction_status, transaction_type, invoice_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.TransactionID,
		tx.Date,
		tx.Amount,
		tx.Status,
		tx.Type,
		tx.InvoiceNumber,
	).Scan(&tx.TransactionID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE transaction_id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions ORDER BY transaction_date ASC, transaction_id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) TransactionExists(ctx context.Context, transactionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, transactionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking transaction existence: %w", err)
	}

	return exists, nil
}
