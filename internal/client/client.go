package client

import "errors"

var (
	ErrNotFound   = errors.New("client not found")
	ErrDuplicate  = errors.New("client already exists")
	ErrEmailTaken = errors.New("email already registered")
)

// Client is a billed customer. The identification number is the natural
// primary key; email is additionally unique.
type Client struct {
	IdentificationNumber string
	Name                 string
	Address              string
	Apartment            string
	Phone                string
	Email                string
}
