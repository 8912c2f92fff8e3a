package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jvalencia/ledgeradmin/internal/client"
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

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	if err := s.Scan(
		&c.IdentificationNumber, &c.Name, &c.Address, &c.Apartment, &c.Phone, &c.Email,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectClientColumns = `identification_number, client_name, address, apartment, phone, email`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (identification_number, client_name, address, apartment, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING identification_number
	`

	err := s.db.QueryRowContext(ctx, query,
		c.IdentificationNumber,
		c.Name,
		c.Address,
		c.Apartment,
		c.Phone,
		c.Email,
	).Scan(&c.IdentificationNumber)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, identificationNumber string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE identification_number = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, identificationNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY identification_number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET client_name = $1, address = $2, apartment = $3, phone = $4, email = $5
		WHERE identification_number = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Name,
		c.Address,
		c.Apartment,
		c.Phone,
		c.Email,
		c.IdentificationNumber,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if affected == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, identificationNumber string) error {
	query := `DELETE FROM clients WHERE identification_number = $1`

	res, err := s.db.ExecContext(ctx, query, identificationNumber)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if affected == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) ClientExists(ctx context.Context, identificationNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE identification_number = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, identificationNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking client existence: %w", err)
	}

	return exists, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}
