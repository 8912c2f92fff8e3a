package client

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, identificationNumber string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, identificationNumber string) error
	ClientExists(ctx context.Context, identificationNumber string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	IdentificationNumber string
	Name                 string
	Address              string
	Apartment            string
	Phone                string
	Email                string
}

// Create inserts a new client after checking both unique keys. The checks are
// best-effort; a concurrent insert between check and insert surfaces as a
// store error.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	taken, err := s.repo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	if taken {
		return nil, ErrEmailTaken
	}

	exists, err := s.repo.ClientExists(ctx, params.IdentificationNumber)
	if err != nil {
		return nil, fmt.Errorf("checking identification number: %w", err)
	}

	if exists {
		return nil, ErrDuplicate
	}

	c := &Client{
		IdentificationNumber: params.IdentificationNumber,
		Name:                 params.Name,
		Address:              params.Address,
		Apartment:            params.Apartment,
		Phone:                params.Phone,
		Email:                params.Email,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, identificationNumber string) (*Client, error) {
	return s.repo.GetClient(ctx, identificationNumber)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

// Update is a full replace keyed by identification number.
func (s *Service) Update(ctx context.Context, c *Client) error {
	return s.repo.UpdateClient(ctx, c)
}

// Delete removes the client immediately. There is no soft delete.
func (s *Service) Delete(ctx context.Context, identificationNumber string) error {
	return s.repo.DeleteClient(ctx, identificationNumber)
}

func (s *Service) Exists(ctx context.Context, identificationNumber string) (bool, error) {
	return s.repo.ClientExists(ctx, identificationNumber)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}
