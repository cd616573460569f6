package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller's role or ownership check fails.
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken is returned on registration with an email that is already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, malformed, and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmptyOrder is returned when an order is placed with no items.
	ErrEmptyOrder = errors.New("no order items")
	// ErrInvalidInput is returned for inputs that fail business validation.
	ErrInvalidInput = errors.New("invalid input")
)

// OutOfStockError reports an order item whose requested quantity exceeds the
// product's current stock.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.ProductName)
}
