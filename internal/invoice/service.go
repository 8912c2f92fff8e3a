package invoice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, invoiceNumber string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	InvoiceExists(ctx context.Context, invoiceNumber string) (bool, error)
}

// ClientDirectory answers whether a client exists. It is the referential
// check against the parent entity; the store may or may not enforce the
// foreign key, so the check is always performed here.
type ClientDirectory interface {
	Exists(ctx context.Context, identificationNumber string) (bool, error)
}

type Service struct {
	repo    Repository
	clients ClientDirectory
}

func NewService(repo Repository, clients ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients}
}

type CreateParams struct {
	InvoiceNumber        string
	PlatformUsed         string
	BillingPeriod        string
	InvoicedAmount       decimal.Decimal
	PaidAmount           decimal.Decimal
	IdentificationNumber string
}

// Create inserts a new invoice. The referenced client must exist at insert
// time and the invoice number must be free; both checks run before the insert.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	found, err := s.clients.Exists(ctx, params.IdentificationNumber)
	if err != nil {
		return nil, fmt.Errorf("checking referenced client: %w", err)
	}

	if !found {
		return nil, ErrClientNotFound
	}

	exists, err := s.repo.InvoiceExists(ctx, params.InvoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("checking invoice number: %w", err)
	}

	if exists {
		return nil, ErrDuplicate
	}

	inv := &Invoice{
		InvoiceNumber:        params.InvoiceNumber,
		PlatformUsed:         params.PlatformUsed,
		BillingPeriod:        params.BillingPeriod,
		InvoicedAmount:       params.InvoicedAmount,
		PaidAmount:           params.PaidAmount,
		IdentificationNumber: params.IdentificationNumber,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, invoiceNumber string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, invoiceNumber)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) Exists(ctx context.Context, invoiceNumber string) (bool, error) {
	return s.repo.InvoiceExists(ctx, invoiceNumber)
}
