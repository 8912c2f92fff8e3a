package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	TransactionExists(ctx context.Context, transactionID string) (bool, error)
}

// InvoiceDirectory answers whether an invoice exists, for the referential
// check against the parent entity.
type InvoiceDirectory interface {
	Exists(ctx context.Context, invoiceNumber string) (bool, error)
}

type Service struct {
	repo     Repository
	invoices InvoiceDirectory
}

func NewService(repo Repository, invoices InvoiceDirectory) *Service {
	return &Service{repo: repo, invoices: invoices}
}

type CreateParams struct {
	TransactionID string
	Date          time.Time
	Amount        decimal.Decimal
	Status        string
	Type          string
	InvoiceNumber string
}

// Create inserts a new transaction. The referenced invoice must exist at
// insert time and the transaction id must be free; both checks run before
// the insert.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	found, err := s.invoices.Exists(ctx, params.InvoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("checking referenced invoice: %w", err)
	}

	if !found {
		return nil, ErrInvoiceNotFound
	}

	exists, err := s.repo.TransactionExists(ctx, params.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("checking transaction id: %w", err)
	}

	if exists {
		return nil, ErrDuplicate
	}

	tx := &Transaction{
		TransactionID: params.TransactionID,
		Date:          params.Date,
		Amount:        params.Amount,
		Status:        params.Status,
		Type:          params.Type,
		InvoiceNumber: params.InvoiceNumber,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, transactionID)
}

func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *Service) Exists(ctx context.Context, transactionID string) (bool, error) {
	return s.repo.TransactionExists(ctx, transactionID)
}
