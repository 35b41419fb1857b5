// Package domain provides domain-specific error definitions and utilities.
package domain

import "errors"

// Connection string resolution errors.
var (
	// ErrInvalidConnectionString indicates a user-supplied connection string
	// could not be resolved into a valid http/https endpoint.
	ErrInvalidConnectionString = errors.New("invalid connection configuration")
	// ErrInvalidArgument indicates a structurally invalid call argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
